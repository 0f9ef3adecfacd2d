package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
api:
  addr: ":9090"
engine:
  scheduler: weighted
  allocator: pooled
  seed: 42
metrics:
  prometheus_addr: ":2112"
  sinks:
    - type: prometheus
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.API.Addr)
	assert.Equal(t, "weighted", cfg.Engine.Scheduler)
	assert.Equal(t, "pooled", cfg.Engine.Allocator)
	assert.Equal(t, int64(42), cfg.Engine.Seed)
	assert.Equal(t, ":2112", cfg.Metrics.PrometheusAddr)
	require.Len(t, cfg.Metrics.Sinks, 1)
	assert.Equal(t, "prometheus", cfg.Metrics.Sinks[0].Type)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"engine": {"scheduler": "fcfs"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "fcfs", cfg.Engine.Scheduler)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.yaml", "api: {}\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.API.Addr)
	assert.Equal(t, "fcfs", cfg.Engine.Scheduler)
	assert.Equal(t, "college_based", cfg.Engine.Allocator)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "api:\n  addr: \":8080\"\n")
	t.Setenv("REGSIM_API__ADDR", ":7070")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.API.Addr)
}

func TestLoadRejectsUnknownScheduler(t *testing.T) {
	path := writeConfig(t, "config.yaml", "engine:\n  scheduler: lifo\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "")
	_, err := Load(path)
	assert.Error(t, err)
}
