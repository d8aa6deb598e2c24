package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.BaseURL)
}

func TestLoadConfigFromFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app_port: \"9090\"\nbase_url: https://example.test/api\n"), 0o600))
	t.Setenv("TETRA_RELAY_CONFIG", path)
	t.Setenv("APP_PORT", "7070")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.AppPort, "environment overrides the file")
	assert.Equal(t, "https://example.test/api", cfg.BaseURL)
}

func TestLoadConfigBadFile(t *testing.T) {
	t.Setenv("TETRA_RELAY_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := LoadConfig()
	assert.Error(t, err)
}
