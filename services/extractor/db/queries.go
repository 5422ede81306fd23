package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type UpsertRecordParams struct {
	Resource  string
	RecordKey string
	Payload   string
	LoadedAt  int64
}

const upsertRecord = `
INSERT INTO records (resource, record_key, payload, loaded_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (resource, record_key)
DO UPDATE SET payload = excluded.payload, loaded_at = excluded.loaded_at
`

func (q *Queries) UpsertRecord(ctx context.Context, arg UpsertRecordParams) error {
	_, err := q.db.ExecContext(ctx, upsertRecord,
		arg.Resource, arg.RecordKey, arg.Payload, arg.LoadedAt)
	return err
}

const countRecords = `SELECT COUNT(*) FROM records WHERE resource = ?`

func (q *Queries) CountRecords(ctx context.Context, resource string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countRecords, resource).Scan(&count)
	return count, err
}

const getCursor = `SELECT value FROM cursors WHERE resource = ?`

func (q *Queries) GetCursor(ctx context.Context, resource string) (string, error) {
	var value string
	err := q.db.QueryRowContext(ctx, getCursor, resource).Scan(&value)
	return value, err
}

type SetCursorParams struct {
	Resource  string
	Value     string
	UpdatedAt int64
}

const setCursor = `
INSERT INTO cursors (resource, value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT (resource)
DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

func (q *Queries) SetCursor(ctx context.Context, arg SetCursorParams) error {
	_, err := q.db.ExecContext(ctx, setCursor,
		arg.Resource, arg.Value, arg.UpdatedAt)
	return err
}

type Cursor struct {
	Resource  string
	Value     string
	UpdatedAt int64
}

const listCursors = `SELECT resource, value, updated_at FROM cursors ORDER BY resource`

func (q *Queries) ListCursors(ctx context.Context) ([]Cursor, error) {
	rows, err := q.db.QueryContext(ctx, listCursors)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Cursor
	for rows.Next() {
		var c Cursor
		if err := rows.Scan(&c.Resource, &c.Value, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
