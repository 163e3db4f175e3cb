package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, time.Second, cfg.Delays.Load)
	assert.Equal(t, 1500*time.Millisecond, cfg.Delays.Save)
	assert.Equal(t, 1500*time.Millisecond, cfg.Delays.Convert)
	assert.Equal(t, 500*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, BackendFile, cfg.Prefs.Backend)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "sellerconsole", cfg.Telemetry.Service)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SELLERCONSOLE_LEADS_URL", "http://leads.local")
	t.Setenv("SELLERCONSOLE_DELAYS_SAVE", "20ms")
	t.Setenv("SELLERCONSOLE_PREFS_BACKEND", "Redis")

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "http://leads.local", cfg.Leads.URL)
	assert.Equal(t, 20*time.Millisecond, cfg.Delays.Save)
	assert.Equal(t, BackendRedis, cfg.Prefs.Backend)
}

func TestLoad_ConfigFileAndDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sellerconsole.yaml"), []byte(`
leads:
  file: ./leads.json
search:
  debounce: 250ms
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SELLERCONSOLE_LOG_LEVEL=debug\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("SELLERCONSOLE_LOG_LEVEL") })

	cfg, err := Load(New())
	require.NoError(t, err)
	assert.Equal(t, "./leads.json", cfg.Leads.File)
	assert.Equal(t, 250*time.Millisecond, cfg.Search.Debounce)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"ok", func(*Config) {}, false},
		{"unknown backend", func(c *Config) { c.Prefs.Backend = "sqlite" }, true},
		{"redis without addr", func(c *Config) { c.Prefs.Backend = BackendRedis; c.Prefs.RedisAddr = "" }, true},
		{"negative delay", func(c *Config) { c.Delays.Save = -time.Second }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Config{
				Prefs: PrefsConfig{Backend: BackendFile, RedisAddr: "localhost:6379"},
				Log:   LogConfig{Level: "info"},
			}
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
