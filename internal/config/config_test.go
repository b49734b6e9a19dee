package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().APIBaseURL, cfg.APIBaseURL)
	assert.Equal(t, 30, cfg.StatsDays)
	assert.Equal(t, "light", cfg.Theme)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api_base_url: https://crops.example.com
theme: dark
stats_days: 7
timeout_seconds: 15
logging:
  debug_mode: true
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://crops.example.com", cfg.APIBaseURL)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, 7, cfg.StatsDays)
	assert.Equal(t, 15, cfg.TimeoutSeconds)
	assert.True(t, cfg.Logging.DebugMode)
}

func TestEnvOverridesWin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: https://file.example.com\n"), 0644))

	t.Setenv("FIELDSCOPE_API_URL", "https://env.example.com")
	t.Setenv("FIELDSCOPE_DARK_MODE", "1")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.APIBaseURL = "https://saved.example.com"
	cfg.StatsDays = 14
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := LoadFrom(path)
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com", loaded.APIBaseURL)
	assert.Equal(t, 14, loaded.StatsDays)
}

func TestLoadFromRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: [unclosed"), 0644))

	_, err := LoadFrom(path)
	assert.Error(t, err)
}

func TestEnvOverridesSurviveUnreadableFile(t *testing.T) {
	// A directory is unreadable as a file, without being absent.
	path := t.TempDir()
	t.Setenv("FIELDSCOPE_API_URL", "https://env.example.com")

	cfg, err := LoadFrom(path)
	assert.Error(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
}

func TestEnvOverridesSurviveBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_base_url: [unclosed"), 0644))
	t.Setenv("FIELDSCOPE_API_URL", "https://env.example.com")

	cfg, err := LoadFrom(path)
	assert.Error(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIBaseURL)
}
