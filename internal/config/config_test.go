package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "gases.db", cfg.Database.DSN)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "archive.zip", cfg.Ingest.Source)
	assert.Equal(t, 500, cfg.Ingest.BatchSize)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := `server:
  port: 9090
  mode: debug
database:
  driver: postgres
  dsn: postgres://u:p@localhost:5432/gases
ingest:
  batch_size: 50
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	t.Setenv("DATABASE_DSN", "postgres://u:p@db:5432/gases")
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/gases", cfg.Database.DSN)
	assert.Equal(t, 50, cfg.Ingest.BatchSize)
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{name: "unknown driver", yaml: "database:\n  driver: oracle\n"},
		{name: "zero batch", yaml: "ingest:\n  batch_size: 0\n"},
		{name: "bad port env", env: map[string]string{"SERVER_PORT": "eighty"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			dir := t.TempDir()
			if c.yaml != "" {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(c.yaml), 0o644))
			}
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig(dir)
			assert.Error(t, err)
		})
	}
}
