package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 3001, cfg.Server.Port)
	assert.True(t, cfg.Sources.GNews.Enabled)
	assert.True(t, cfg.Sources.Reddit.Enabled)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.False(t, cfg.ModelEnabled())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
sources:
  youtube:
    enabled: false
llm:
  provider: anthropic
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.False(t, cfg.Sources.YouTube.Enabled)
	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	// Untouched sections keep defaults.
	assert.True(t, cfg.Sources.GNews.Enabled)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "4000")
	t.Setenv("GNEWS_API_KEY", "gnews-key")
	t.Setenv("OPENAI_API_KEY", "sk-123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "gnews-key", cfg.Sources.GNews.APIKey)
	assert.Equal(t, "sk-123", cfg.LLM.APIKey)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.True(t, cfg.ModelEnabled())
}

func TestAnthropicKeyWinsWhenSet(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-123")
	t.Setenv("ANTHROPIC_API_KEY", "ak-456")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, "ak-456", cfg.LLM.APIKey)
}

func TestModelEnabledRejectsPlaceholder(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "your_openai_api_key_here")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.ModelEnabled())
}
