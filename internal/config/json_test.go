package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestParseJSON_FullConfig(t *testing.T) {
	path := writeTempJSON(t, `{
		"app": {"version": "0.9.0"},
		"server": {"http_address": "0.0.0.0:5050", "request_timeout": "45s"},
		"storage": {
			"db": {"dsn": "local.db"},
			"files": {"documents_path": "data/config_store.json"}
		},
		"registry": {"path": "schemas/registry.json"}
	}`)

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, "0.9.0", cfg.App.Version)
	assert.Equal(t, "0.0.0.0:5050", cfg.Server.HTTPAddress)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "local.db", cfg.Storage.DB.DSN)
	assert.Equal(t, "data/config_store.json", cfg.Storage.Files.DocumentsPath)
	assert.Equal(t, "schemas/registry.json", cfg.Registry.Path)
}

func TestParseJSON_NumericTimeout(t *testing.T) {
	path := writeTempJSON(t, `{"server": {"request_timeout": 1000000000}}`)

	cfg, err := parseJSON(path)

	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Server.RequestTimeout)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestParseJSON_InvalidJSON(t *testing.T) {
	path := writeTempJSON(t, `{not json`)
	_, err := parseJSON(path)
	require.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.applyDefaults()

	assert.Equal(t, defaultHTTPAddress, cfg.Server.HTTPAddress)
	assert.Equal(t, defaultRequestTimeout, cfg.Server.RequestTimeout)
	assert.Equal(t, defaultDocumentsPath, cfg.Storage.Files.DocumentsPath)
	assert.Equal(t, defaultRegistryPath, cfg.Registry.Path)
}

func TestApplyDefaults_DSNSuppressesFileStore(t *testing.T) {
	cfg := &StructuredConfig{}
	cfg.Storage.DB.DSN = "postgres://localhost/db"
	cfg.applyDefaults()

	assert.Empty(t, cfg.Storage.Files.DocumentsPath)
}
