package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	"aktiva-backend/lib/sqliteutil"
	"aktiva-backend/lib/telemetry"
)

type ServiceParams struct {
	Name string
	// if unspecified, it will skip setting up a db
	DbSchema string
}

type ServiceResult struct {
	DB *sql.DB
}

func SetupService(t testing.TB, params ServiceParams) (ServiceResult, func()) {
	cleanup := telemetry.SetupForTesting(t, fmt.Sprintf("test:%s", params.Name))

	var database *sql.DB
	if params.DbSchema != "" {
		var err error
		database, err = sqliteutil.OpenDB(params.DbSchema, ":memory:")
		if err != nil {
			t.Fatal(err)
		}
	}

	return ServiceResult{DB: database}, func() {
		if database != nil {
			database.Close()
		}
		cleanup()
	}
}
