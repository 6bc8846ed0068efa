package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `
store:
  type: csv
  conf:
    base_path: /var/lib/orderlink
metrics:
  prometheus_enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Store.Type)
	assert.Equal(t, "/var/lib/orderlink", cfg.Store.Conf["base_path"])
	assert.True(t, cfg.Metrics.PrometheusEnabled)
	assert.Equal(t, "2112", cfg.Metrics.PrometheusPort)
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	data := `{"store": {"type": "sqlite", "conf": {"path": "orders.db"}}}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Store.Type)
	assert.Equal(t, "orders.db", cfg.Store.Conf["path"])
}

func TestLoadDefaultsBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics: {}\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "csv", cfg.Store.Type)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("config.toml")
	assert.Error(t, err)
}
