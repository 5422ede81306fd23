package commands

import (
	"database/sql"

	"aktiva-backend/lib/aktiva"
	"aktiva-backend/lib/configutil"
	"aktiva-backend/lib/serviceutil"
	"aktiva-backend/lib/sqliteutil"
	"aktiva-backend/services/extractor"
	extractordb "aktiva-backend/services/extractor/db"
)

type Config struct {
	ApiID  string `json:"api_id"`
	ApiKey string `json:"api_key"`
	// BaseUrl defaults to the hosted Merit Aktiva API.
	BaseUrl string `json:"base_url"`
	// Database defaults to aktiva.db in the working directory.
	Database string `json:"database"`
}

func openService(dbOverride string) (extractor.Service, *sql.DB) {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}

	client, err := aktiva.NewClient(aktiva.ClientOptions{
		BaseUrl: cfg.BaseUrl,
		Auth: aktiva.NewSigner(aktiva.Credentials{
			ApiID:  cfg.ApiID,
			ApiKey: []byte(cfg.ApiKey),
		}, nil),
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize aktiva client", err)
	}

	dbpath := cfg.Database
	if dbOverride != "" {
		dbpath = dbOverride
	}
	if dbpath == "" {
		dbpath = "aktiva.db"
	}
	database, err := sqliteutil.OpenDB(extractordb.Schema, dbpath)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	return extractor.NewService(database, client), database
}
