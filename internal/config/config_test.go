package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
	assert.Equal(t, "auto", cfg.Theme)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"server_url: http://inventory.lan:8000\ntheme: dark\nwatch_dir: /tmp/drop\nlog:\n  level: debug\n",
	), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://inventory.lan:8000", cfg.ServerURL)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "/tmp/drop", cfg.WatchDir)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: http://from-file:1\n"), 0o600))

	t.Setenv("DIYFINDER_SERVER_URL", "http://from-env:2")
	t.Setenv("DIYFINDER_THEME", "light")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://from-env:2", cfg.ServerURL)
	assert.Equal(t, "light", cfg.Theme)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server_url: [unclosed"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	want := Default()
	want.ServerURL = "http://garage.lan:9000"
	want.WatchDir = "/photos/inbox"
	require.NoError(t, want.Save(path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLogFileFallback(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultLogPath(), cfg.LogFile())

	cfg.Log.File = "/var/log/diyfinder.log"
	assert.Equal(t, "/var/log/diyfinder.log", cfg.LogFile())
}
