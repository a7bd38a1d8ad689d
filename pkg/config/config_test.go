package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, 5*time.Second, cfg.Search.QueryTimeout)
	assert.Equal(t, "postgres", cfg.Views.Sink)
	assert.Equal(t, 4, cfg.Views.Workers)
	assert.Equal(t, "@every 30s", cfg.Views.FlushSpec)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := []byte(`
server:
  port: "9000"
views:
  sink: redis
  workers: 2
search:
  query_timeout: 3s
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PORT", "7000")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "7000", cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "redis", cfg.Views.Sink)
	assert.Equal(t, 2, cfg.Views.Workers)
	assert.Equal(t, 3*time.Second, cfg.Search.QueryTimeout)
	assert.Contains(t, cfg.Database.DSN(), "host=db.internal")
}

func TestLoadRejectsUnknownSink(t *testing.T) {
	t.Setenv("VIEWS_SINK", "kafka")

	_, err := Load("")
	assert.ErrorContains(t, err, "views.sink")
}
