// Package config loads and saves ada's TOML configuration, with an
// environment overlay applied on top of the file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config holds all ada configuration.
type Config struct {
	Advisor    AdvisorConfig    `toml:"advisor"`
	Server     ServerConfig     `toml:"server"`
	LLM        LLMConfig        `toml:"llm"`
	Cache      CacheConfig      `toml:"cache"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// AdvisorConfig points the client commands at an /ask endpoint.
type AdvisorConfig struct {
	Endpoint       string `toml:"endpoint" env:"ADA_ENDPOINT"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// ServerConfig holds settings for `ada serve`.
type ServerConfig struct {
	Addr           string   `toml:"addr" env:"ADA_SERVER_ADDR"`
	AllowedOrigins []string `toml:"allowed_origins"`
	HistorySize    int      `toml:"history_size"`
}

// LLMConfig holds chat-completions settings for the in-process advisor.
type LLMConfig struct {
	BaseURL      string  `toml:"base_url" env:"ADA_LLM_BASE_URL"`
	Model        string  `toml:"model" env:"ADA_LLM_MODEL"`
	Provider     string  `toml:"provider"`
	MaxTokens    int     `toml:"max_tokens"`
	Temperature  float64 `toml:"temperature"`
	TopP         float64 `toml:"top_p"`
	SystemPrompt string  `toml:"system_prompt,omitempty"`
	APIKey       string  `toml:"api_key,omitempty"`
}

// CacheConfig controls the answer cache.
type CacheConfig struct {
	Enabled  bool   `toml:"enabled" env:"ADA_CACHE_ENABLED"`
	TTLHours int    `toml:"ttl_hours"`
	Path     string `toml:"path,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme" env:"ADA_THEME"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Advisor: AdvisorConfig{
			Endpoint:       "http://127.0.0.1:8000/ask",
			TimeoutSeconds: 60,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8000",
			AllowedOrigins: []string{"http://localhost:5173"},
			HistorySize:    100,
		},
		LLM: LLMConfig{
			BaseURL:     "https://router.huggingface.co/v1",
			Model:       "google/gemma-2-2b-it",
			Provider:    "nebius",
			MaxTokens:   512,
			Temperature: 0.3,
			TopP:        0.9,
		},
		Cache: CacheConfig{
			Enabled:  true,
			TTLHours: 24,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// Timeout returns the advisor request timeout.
func (c Config) Timeout() time.Duration {
	if c.Advisor.TimeoutSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.Advisor.TimeoutSeconds) * time.Second
}

// CacheTTL returns how long cached answers stay valid. Zero means forever.
func (c Config) CacheTTL() time.Duration {
	if c.Cache.TTLHours <= 0 {
		return 0
	}
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "ada")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "ada")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist, then
// applies ADA_* environment overrides.
func Load() (Config, error) {
	cfg, err := loadFile()
	if err != nil {
		return cfg, err
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// LoadFile reads only the config file, without environment overrides.
// Commands that write the config back use it so env values are not persisted.
func LoadFile() (Config, error) {
	return loadFile()
}

func loadFile() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}

// MaskKey shortens a secret for display, keeping the first and last four characters.
func MaskKey(key string) string {
	if len(key) > 12 {
		return key[:4] + "..." + key[len(key)-4:]
	}
	if key == "" {
		return ""
	}
	return "****"
}
