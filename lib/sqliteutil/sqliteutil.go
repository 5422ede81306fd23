package sqliteutil

import (
	"database/sql"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var remoteSchemes = []string{"libsql://", "wss://", "ws://", "https://", "http://"}

// DriverFor picks the sql driver for a database path: libsql and other
// remote URLs go through the libsql driver, everything else is treated as a
// local sqlite file (":memory:" works).
func DriverFor(path string) string {
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(path, scheme) {
			return "libsql"
		}
	}
	return "sqlite"
}

// OpenDB opens the database at `path` and applies `schema` to it, tolerating
// schemas that already exist.
func OpenDB(schema, path string) (*sql.DB, error) {
	driver := DriverFor(path)
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, err
	}

	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	if driver == "sqlite" && path != ":memory:" {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	_, err = db.Exec(schema)
	if err != nil && !strings.Contains(err.Error(), "already exists") {
		db.Close()
		return nil, err
	}
	return db, nil
}
