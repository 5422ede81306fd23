// Package extractor drives extraction runs against the Merit Aktiva API:
// it pages windowed resources, lands raw records in sqlite and keeps the
// incremental cursors that let the next run skip already-seen data.
package extractor

import (
	"bytes"
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"aktiva-backend/lib/aktiva"
	"aktiva-backend/lib/datewindow"
	"aktiva-backend/lib/meritdate"
	"aktiva-backend/services/extractor/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/extractor")

type Options struct {
	// Start/End bound the extraction; both zero means the default range of
	// one year back until today.
	Start time.Time
	End   time.Time
	// Full ignores stored cursors and re-extracts the whole range.
	Full bool
}

type Stats struct {
	Resource string
	Pages    int
	Records  int
	Cursor   string
}

type Service struct {
	db     *sql.DB
	qry    *db.Queries
	client *aktiva.Client
}

func NewService(database *sql.DB, client *aktiva.Client) Service {
	return Service{
		db:     database,
		qry:    db.New(database),
		client: client,
	}
}

// ExtractAll runs every resource in the catalogue sequentially. A failing
// resource aborts that resource's run but not the others; the joined error
// reports all of them.
func (s Service) ExtractAll(ctx context.Context, opts Options) ([]Stats, error) {
	ctx, span := tracer.Start(ctx, "ExtractAll")
	defer span.End()

	var all []Stats
	var errlist []error
	for _, res := range aktiva.Resources {
		stats, err := s.ExtractResource(ctx, res, opts)
		if err != nil {
			slog.ErrorContext(ctx, "resource extraction failed",
				"resource", res.Name, "err", err)
			errlist = append(errlist, fmt.Errorf("%s: %w", res.Name, err))
			continue
		}
		all = append(all, stats)
	}
	return all, errors.Join(errlist...)
}

// ExtractResource runs one resource end to end. The paginator only advances
// once a page has been fetched and stored, so a transport or decode failure
// leaves the window unconsumed for the next attempt.
func (s Service) ExtractResource(ctx context.Context, res aktiva.Resource, opts Options) (Stats, error) {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("ExtractResource:%s", res.Name))
	defer span.End()
	span.SetAttributes(attribute.String("resource", res.Name))

	fail := func(err error) (Stats, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Stats{Resource: res.Name}, err
	}

	start, end := opts.Start, opts.End
	if start.IsZero() || end.IsZero() {
		start, end = meritdate.DefaultRange(time.Now())
	}

	stats := Stats{Resource: res.Name}

	if !res.Windowed() {
		raw, err := s.client.FetchPage(ctx, res.Path, res.Params)
		if err != nil {
			return fail(err)
		}
		count, _, err := s.storePage(ctx, res, raw)
		if err != nil {
			return fail(err)
		}
		stats.Pages = 1
		stats.Records = count
		return stats, nil
	}

	// the stored cursor is loaded even on a full run: it no longer picks the
	// resume point then, but it still guards the persisted value against
	// moving backwards when the full range is narrower than a previous run
	resumeFrom := start
	storedCursor := ""
	if res.Incremental != nil {
		value, err := s.qry.GetCursor(ctx, res.Name)
		if err != nil && err != sql.ErrNoRows {
			return fail(err)
		}
		if err == nil {
			normalized, err := meritdate.Normalize(value)
			if err != nil {
				return fail(fmt.Errorf("stored cursor of %s: %w", res.Name, err))
			}
			storedCursor = normalized
			if !opts.Full {
				resumeDate, err := meritdate.ParseCompact(normalized)
				if err != nil {
					return fail(fmt.Errorf("stored cursor of %s: %w", res.Name, err))
				}
				resumeFrom = resumeDate
			}
		}
	}

	paginator, err := datewindow.Resume(
		start, end,
		res.Window.IntervalDays, res.Window.DateType,
		resumeFrom,
	)
	if err != nil {
		return fail(err)
	}

	startParam := "PeriodStart"
	if res.Incremental != nil && res.Incremental.StartParam != "" {
		startParam = res.Incremental.StartParam
	}

	maxCursor := ""
	for paginator.HasNext() {
		window := paginator.Params()
		body := make(map[string]any, len(res.Params)+3)
		for k, v := range res.Params {
			body[k] = v
		}
		body[startParam] = window.PeriodStart
		body["PeriodEnd"] = window.PeriodEnd
		body["DateType"] = window.DateType

		raw, err := s.client.FetchPage(ctx, res.Path, body)
		if err != nil {
			return fail(err)
		}
		count, pageCursor, err := s.storePage(ctx, res, raw)
		if err != nil {
			return fail(err)
		}
		stats.Pages++
		stats.Records += count
		if pageCursor > maxCursor {
			maxCursor = pageCursor
		}

		slog.DebugContext(ctx, "window accepted",
			"resource", res.Name,
			"period_start", window.PeriodStart,
			"period_end", window.PeriodEnd,
			"records", count,
		)
		paginator.Advance()
	}

	if res.Incremental != nil {
		// compact dates compare lexicographically in date order
		next := maxCursor
		if next == "" || next < storedCursor {
			next = storedCursor
		}
		if next == "" {
			next = meritdate.FormatCompact(start)
		}
		err := s.qry.SetCursor(ctx, db.SetCursorParams{
			Resource:  res.Name,
			Value:     next,
			UpdatedAt: time.Now().Unix(),
		})
		if err != nil {
			return fail(err)
		}
		stats.Cursor = next
	}

	return stats, nil
}

// Cursors lists the stored incremental cursors per resource.
func (s Service) Cursors(ctx context.Context) ([]db.Cursor, error) {
	return s.qry.ListCursors(ctx)
}

// storePage lands one page of records transactionally and reports the
// greatest normalized cursor value seen in it.
func (s Service) storePage(ctx context.Context, res aktiva.Resource, raw []byte) (count int, maxCursor string, err error) {
	rows, err := decodeRows(raw)
	if err != nil {
		return 0, "", fmt.Errorf("decode %s page: %w", res.Name, err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, "", err
	}
	defer tx.Rollback()
	txqry := s.qry.WithTx(tx)

	loadedAt := time.Now().Unix()
	for _, row := range rows {
		payload, err := json.Marshal(row)
		if err != nil {
			return 0, "", err
		}
		err = txqry.UpsertRecord(ctx, db.UpsertRecordParams{
			Resource:  res.Name,
			RecordKey: recordKey(res, row, payload),
			Payload:   string(payload),
			LoadedAt:  loadedAt,
		})
		if err != nil {
			return 0, "", err
		}

		if res.Incremental != nil {
			cursor, err := rowCursor(res, row)
			if err != nil {
				return 0, "", err
			}
			if cursor > maxCursor {
				maxCursor = cursor
			}
		}
	}

	return len(rows), maxCursor, tx.Commit()
}

func rowCursor(res aktiva.Resource, row map[string]any) (string, error) {
	value, ok := row[res.Incremental.CursorField]
	if !ok || value == nil {
		return "", nil
	}
	text, ok := value.(string)
	if !ok {
		return "", fmt.Errorf(
			"cursor field %s of %s is %T, not a string",
			res.Incremental.CursorField, res.Name, value,
		)
	}
	normalized, err := meritdate.Normalize(text)
	if err != nil {
		return "", fmt.Errorf("cursor field %s of %s: %w",
			res.Incremental.CursorField, res.Name, err)
	}
	return normalized, nil
}

// decodeRows accepts both response shapes the vendor produces: a bare array
// of records, or a single object treated as one record.
func decodeRows(raw []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var rows []map[string]any
		if err := json.Unmarshal(trimmed, &rows); err != nil {
			return nil, err
		}
		return rows, nil
	}
	var row map[string]any
	if err := json.Unmarshal(trimmed, &row); err != nil {
		return nil, err
	}
	return []map[string]any{row}, nil
}

// recordKey derives the upsert key: the resource's primary key values when
// they are all present, a content hash otherwise.
func recordKey(res aktiva.Resource, row map[string]any, payload []byte) string {
	if len(res.PrimaryKey) > 0 {
		parts := make([]string, 0, len(res.PrimaryKey))
		for _, field := range res.PrimaryKey {
			value, ok := row[field]
			if !ok || value == nil {
				parts = nil
				break
			}
			parts = append(parts, fmt.Sprint(value))
		}
		if parts != nil {
			return strings.Join(parts, "|")
		}
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
