package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the user config dir at an empty temp dir and clears CRUX_*
// variables the test touches.
func isolate(t *testing.T, keys ...string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, GetDefaults(), cfg)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
general:
  default_limit: 250
ui:
  theme: catppuccin
  mouse_enabled: false
data:
  max_column_width: 80
`), 0o600))

	cfg, err := Load(LoadOptions{ConfigFile: path, EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.General.DefaultLimit)
	assert.Equal(t, "catppuccin", cfg.UI.Theme)
	assert.False(t, cfg.UI.MouseEnabled)
	assert.Equal(t, 80, cfg.Data.MaxColumnWidth)
	assert.Equal(t, 12, cfg.Data.MinColumnWidth)
	assert.Equal(t, 10, cfg.General.RecentLimit)
}

func TestLoad_SearchPath(t *testing.T) {
	dir := isolate(t)
	appDir := filepath.Join(dir, AppName)
	require.NoError(t, os.MkdirAll(appDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(appDir, "config.yaml"), []byte("general:\n  recent_limit: 3\n"), 0o600))

	cfg, err := Load(LoadOptions{EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.General.RecentLimit)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ui:\n  mouse_enabled: true\n"), 0o600))

	t.Setenv("CRUX_UI_MOUSE_ENABLED", "false")
	t.Setenv("CRUX_LOG_LEVEL", "debug")

	cfg, err := Load(LoadOptions{ConfigFile: path, EnvFile: filepath.Join(dir, "missing.env")})
	require.NoError(t, err)
	assert.False(t, cfg.UI.MouseEnabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t, "CRUX_GENERAL_DEFAULT_LIMIT")
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CRUX_GENERAL_DEFAULT_LIMIT=42\n"), 0o600))

	cfg, err := Load(LoadOptions{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 42, cfg.General.DefaultLimit)
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("general: [unclosed\n"), 0o600))

	_, err := Load(LoadOptions{ConfigFile: path, EnvFile: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data:\n  min_column_width: 30\n  max_column_width: 20\n"), 0o600))

	_, err := Load(LoadOptions{ConfigFile: path, EnvFile: filepath.Join(dir, "missing.env")})
	assert.ErrorContains(t, err, "max_column_width")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"zero limit", func(c *Config) { c.General.DefaultLimit = 0 }, false},
		{"tiny cells", func(c *Config) { c.Data.MaxCellDisplayLength = 3 }, false},
		{"sidebar too wide", func(c *Config) { c.UI.SidebarWidthRatio = 100 }, false},
		{"zero min width", func(c *Config) { c.Data.MinColumnWidth = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
