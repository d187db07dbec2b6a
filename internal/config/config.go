package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Sources SourcesConfig `yaml:"sources"`
	LLM     LLMConfig     `yaml:"llm"`
	Debug   bool          `yaml:"debug"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

// SourcesConfig holds configuration for all data sources.
type SourcesConfig struct {
	GNews      GNewsConfig      `yaml:"gnews"`
	MediaStack MediaStackConfig `yaml:"mediastack"`
	YouTube    YouTubeConfig    `yaml:"youtube"`
	Reddit     RedditConfig     `yaml:"reddit"`
	Google     GoogleConfig     `yaml:"google_trends"`
	Social     SocialConfig     `yaml:"social_trends"`
}

// GNewsConfig for the GNews headline source.
type GNewsConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

// MediaStackConfig for the MediaStack headline source.
type MediaStackConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

// YouTubeConfig for the YouTube trending source.
type YouTubeConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
}

// RedditConfig for the subreddit source.
type RedditConfig struct {
	Enabled bool `yaml:"enabled"`
}

// GoogleConfig for the search-trend source.
type GoogleConfig struct {
	Enabled bool `yaml:"enabled"`
}

// SocialConfig for the Twitter/X trend mirror source.
type SocialConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LLMConfig configures the optional model-assisted analysis.
type LLMConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Provider string `yaml:"provider"` // "openai" or "anthropic"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url"` // custom endpoint (optional)
}

// Default returns a Config with sensible defaults. Every credential-free
// source is enabled; keyed sources are enabled too and skip themselves at
// fetch time when no key is configured.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 3001},
		Sources: SourcesConfig{
			GNews:      GNewsConfig{Enabled: true},
			MediaStack: MediaStackConfig{Enabled: true},
			YouTube:    YouTubeConfig{Enabled: true},
			Reddit:     RedditConfig{Enabled: true},
			Google:     GoogleConfig{Enabled: true},
			Social:     SocialConfig{Enabled: true},
		},
		LLM: LLMConfig{Provider: "openai"},
	}
}

// Load reads configuration from an optional YAML file, a .env file if one
// exists, and environment variable overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	// Missing .env is fine; real env vars still apply below.
	_ = godotenv.Load()

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides overrides config values with environment variables.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("GNEWS_API_KEY"); v != "" {
		cfg.Sources.GNews.APIKey = v
	}
	if v := os.Getenv("MEDIASTACK_API_KEY"); v != "" {
		cfg.Sources.MediaStack.APIKey = v
	}
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		cfg.Sources.YouTube.APIKey = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
		cfg.LLM.Enabled = true
		cfg.LLM.Provider = "openai"
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
		cfg.LLM.Enabled = true
		cfg.LLM.Provider = "anthropic"
	}
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Debug = v == "1" || v == "true"
	}
}

// ModelEnabled reports whether model-assisted analysis should run: the
// feature must be on and the key must be real, not a template placeholder.
func (c *Config) ModelEnabled() bool {
	key := c.LLM.APIKey
	return c.LLM.Enabled && key != "" && !isPlaceholder(key)
}

func isPlaceholder(key string) bool {
	return len(key) >= 5 && key[:5] == "your_"
}
