package sqliteutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDriverFor(t *testing.T) {
	cases := []struct {
		path   string
		expect string
	}{
		{path: ":memory:", expect: "sqlite"},
		{path: "aktiva.db", expect: "sqlite"},
		{path: "/var/data/aktiva.db", expect: "sqlite"},
		{path: "libsql://aktiva-company.turso.io", expect: "libsql"},
		{path: "wss://aktiva-company.turso.io", expect: "libsql"},
		{path: "https://aktiva-company.turso.io", expect: "libsql"},
	}
	for _, test := range cases {
		require.Equal(t, test.expect, DriverFor(test.path), test.path)
	}
}

func TestOpenDBAppliesSchema(t *testing.T) {
	schema := `CREATE TABLE cursors (resource TEXT NOT NULL PRIMARY KEY, value TEXT NOT NULL);`
	path := filepath.Join(t.TempDir(), "test.db")

	db, err := OpenDB(schema, path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO cursors (resource, value) VALUES ('a', '20230101')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening against an existing schema must not fail
	db, err = OpenDB(schema, path)
	require.NoError(t, err)
	defer db.Close()

	var value string
	err = db.QueryRow(`SELECT value FROM cursors WHERE resource = 'a'`).Scan(&value)
	require.NoError(t, err)
	require.Equal(t, "20230101", value)
}
