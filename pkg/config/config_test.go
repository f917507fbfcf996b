package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitchd-io/stitchd/pkg/catalog/store"
)

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.Equal(t, "INFO", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, store.DatabaseTypeSQLite, cfg.Database.Type)
	assert.NotEmpty(t, cfg.Database.SQLite.Path)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, 10*time.Minute, cfg.Maintenance.Interval)
	assert.True(t, cfg.Maintenance.IsEnabled())
	assert.True(t, cfg.Maintenance.ShouldPruneEdges())
	assert.False(t, cfg.Maintenance.DryRun)
	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "localhost:4317", cfg.Telemetry.Endpoint)
	assert.Equal(t, 1.0, cfg.Telemetry.SampleRate)
}

func TestDefaultConfigValidates(t *testing.T) {
	cfg := GetDefaultConfig()
	require.NoError(t, Validate(cfg))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
logging:
  level: debug
  format: json
shutdown_timeout: 45s
database:
  type: sqlite
  sqlite:
    path: /tmp/stitchd-test/catalog.db
maintenance:
  interval: 5m
  dry_run: true
  prune_edges: false
api:
  port: 9999
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "DEBUG", cfg.Logging.Level) // normalized to uppercase
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 45*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "/tmp/stitchd-test/catalog.db", cfg.Database.SQLite.Path)
	assert.Equal(t, 5*time.Minute, cfg.Maintenance.Interval)
	assert.True(t, cfg.Maintenance.DryRun)
	assert.False(t, cfg.Maintenance.ShouldPruneEdges())
	assert.Equal(t, 9999, cfg.API.Port)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}

func TestLoadInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
logging:
  level: verbose
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoadPostgresRequiresHost(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
database:
  type: postgres
  postgres:
    database: stitchd
    user: stitchd
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host")
}

func TestSaveAndReloadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := GetDefaultConfig()
	cfg.Logging.Level = "WARN"
	cfg.Maintenance.Interval = 2 * time.Minute

	require.NoError(t, SaveConfig(cfg, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "WARN", loaded.Logging.Level)
	assert.Equal(t, 2*time.Minute, loaded.Maintenance.Interval)
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0600))

	t.Setenv("STITCHD_LOGGING_LEVEL", "ERROR")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "ERROR", cfg.Logging.Level)
}

func TestMaintenanceAccessors(t *testing.T) {
	var cfg MaintenanceConfig
	assert.True(t, cfg.IsEnabled())
	assert.True(t, cfg.ShouldPruneEdges())

	off := false
	cfg.Enabled = &off
	cfg.PruneEdges = &off
	assert.False(t, cfg.IsEnabled())
	assert.False(t, cfg.ShouldPruneEdges())
}
