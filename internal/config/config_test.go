package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericogr/fight-tracker/internal/constants"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadConfig_JSON(t *testing.T) {
	p := writeFile(t, "tracker.json", `{
		"server": {"address": ":9090", "shutdown_timeout_seconds": 3},
		"storage": {"driver": "Postgres", "postgres_url": "postgres://localhost/tracker"},
		"log": {"level": "debug"}
	}`)
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.ServerAddress)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, constants.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://localhost/tracker", cfg.Storage.PostgresURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_YAML(t *testing.T) {
	p := writeFile(t, "tracker.yaml", "storage:\n  driver: sqlite\n  sqlite_path: /tmp/fights.db\n")
	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/fights.db", cfg.Storage.SQLitePath)
	assert.Equal(t, ":8080", cfg.ServerAddress)
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	p := writeFile(t, "tracker.json", `{"server": {"address": ":9090"}}`)
	t.Setenv("TRACKER_ADDR", ":7070")
	t.Setenv("TRACKER_STORAGE_DRIVER", "postgres")
	t.Setenv("TRACKER_POSTGRES_URL", "postgres://db/tracker")
	t.Setenv("TRACKER_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := LoadConfig(p)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.ServerAddress)
	assert.Equal(t, constants.DriverPostgres, cfg.Storage.Driver)
	assert.Equal(t, "postgres://db/tracker", cfg.Storage.PostgresURL)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoadConfig_Validation(t *testing.T) {
	p := writeFile(t, "tracker.json", `{"storage": {"driver": "postgres"}}`)
	_, err := LoadConfig(p)
	assert.ErrorContains(t, err, "postgres_url")

	p = writeFile(t, "tracker.json", `{"storage": {"driver": "mongo"}}`)
	_, err = LoadConfig(p)
	assert.ErrorContains(t, err, "unknown storage.driver")

	p = writeFile(t, "tracker.json", `{not json`)
	_, err = LoadConfig(p)
	assert.ErrorContains(t, err, "failed to parse")
}
