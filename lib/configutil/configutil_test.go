package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	ApiID   string `json:"api_id"`
	BaseUrl string `json:"base_url"`
	DbPath  string `json:"db_path"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	_, err := ReadConfig[testConfig](name)
	require.ErrorIs(t, err, os.ErrNotExist)

	err = os.WriteFile(name, []byte(`{
		// comments are allowed
		api_id: "company-1",
		base_url: "https://aktiva.merit.ee/api/",
	}`), 0600)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "company-1", config.ApiID)
	require.Equal(t, "https://aktiva.merit.ee/api/", config.BaseUrl)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "config.json5")

	err := os.WriteFile(name, []byte(`{api_id: "company-1", db_path: "aktiva.db"}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(
		filepath.Join(dir, "config.local.json5"),
		[]byte(`{api_id: "company-2"}`),
		0600,
	)
	require.NoError(t, err)

	config, err := ReadConfig[testConfig](name)
	require.NoError(t, err)
	require.Equal(t, "company-2", config.ApiID)
	require.Equal(t, "aktiva.db", config.DbPath)
}
