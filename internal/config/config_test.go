package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withConfigDir points the package globals at a temporary directory
func withConfigDir(t *testing.T) string {
	t.Helper()

	origDir, origFile, origLog, origKeys, origExport := ConfigDir, ConfigFile, LogFile, KeybindsFile, ExportDir
	t.Cleanup(func() {
		ConfigDir, ConfigFile, LogFile, KeybindsFile, ExportDir = origDir, origFile, origLog, origKeys, origExport
	})

	dir := filepath.Join(t.TempDir(), ".ollaterm")
	require.NoError(t, InitializeAt(dir))
	return dir
}

func TestInitializeAt_CreatesDirectory(t *testing.T) {
	dir := withConfigDir(t)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), ConfigFile)
	assert.Equal(t, filepath.Join(dir, "keybinds.jsonc"), KeybindsFile)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	withConfigDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, 3*time.Second, cfg.MessageTimeout)
	assert.Equal(t, time.Duration(0), cfg.RequestTimeout, "no request timeout by default")
	assert.Equal(t, "python", cfg.Highlight.Language)
	assert.Equal(t, []string{"def ", "class ", "import "}, cfg.Highlight.Keywords)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	withConfigDir(t)

	content := `
backend_url: http://runtime.internal:9000/
request_timeout: 45s
highlight:
  language: javascript
  keywords: ["function ", "const "]
`
	require.NoError(t, os.WriteFile(ConfigFile, []byte(content), FilePermissions))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://runtime.internal:9000", cfg.BackendURL, "trailing slash trimmed")
	assert.Equal(t, 45*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "javascript", cfg.Highlight.Language)
	assert.Equal(t, "monokai", cfg.Highlight.Style, "unset fields keep defaults")
	assert.Equal(t, []string{"function ", "const "}, cfg.Highlight.Keywords)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	withConfigDir(t)

	require.NoError(t, os.WriteFile(ConfigFile, []byte("backend_url: http://from-file:1\n"), FilePermissions))
	t.Setenv("OLLATERM_BACKEND_URL", "https://from-env:2")
	t.Setenv("OLLATERM_MESSAGE_TIMEOUT", "5s")
	t.Setenv("OLLATERM_HIGHLIGHT_STYLE", "dracula")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://from-env:2", cfg.BackendURL)
	assert.Equal(t, 5*time.Second, cfg.MessageTimeout)
	assert.Equal(t, "dracula", cfg.Highlight.Style)
}

func TestLoad_InvalidYAML(t *testing.T) {
	withConfigDir(t)
	require.NoError(t, os.WriteFile(ConfigFile, []byte("backend_url: [unclosed"), FilePermissions))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "defaults", mutate: func(c *Config) {}, wantErr: false},
		{name: "empty backend", mutate: func(c *Config) { c.BackendURL = "" }, wantErr: true},
		{name: "no scheme", mutate: func(c *Config) { c.BackendURL = "localhost:8000" }, wantErr: true},
		{name: "negative timeout", mutate: func(c *Config) { c.RequestTimeout = -time.Second }, wantErr: true},
		{name: "zero message timeout is defaulted", mutate: func(c *Config) { c.MessageTimeout = 0 }, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Greater(t, cfg.MessageTimeout, time.Duration(0))
		})
	}
}

func TestSaveAndReload(t *testing.T) {
	withConfigDir(t)

	cfg := Default()
	cfg.BackendURL = "http://saved:8000"
	cfg.RequestTimeout = 10 * time.Second
	require.NoError(t, cfg.Save(ConfigFile))

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://saved:8000", loaded.BackendURL)
	assert.Equal(t, 10*time.Second, loaded.RequestTimeout)
}

func TestGetExportPath(t *testing.T) {
	dir := withConfigDir(t)
	cfg := Default()
	cfg.ExportDir = ""

	path, err := cfg.GetExportPath("history.html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "exports", "history.html"), path)

	abs := filepath.Join(t.TempDir(), "out.html")
	path, err = cfg.GetExportPath(abs)
	require.NoError(t, err)
	assert.Equal(t, abs, path)
}
