// Package config holds all configuration for the ECHO AI terminal client.
// Configuration is layered: built-in defaults, then ~/.echoai/config.yaml,
// then environment variables (highest precedence). A .env file in the
// working directory is folded into the environment before overrides apply.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment override variables.
const (
	EnvAPIBaseURL = "ECHOAI_API_URL"
	EnvAPITimeout = "ECHOAI_TIMEOUT"
	EnvLogLevel   = "ECHOAI_LOG_LEVEL"
	EnvDarkMode   = "ECHOAI_DARK_MODE"
)

// Config holds all client configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Chat    ChatConfig    `yaml:"chat"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the backend connection.
type APIConfig struct {
	// BaseURL of the memory backend. Defaults to the local dev server.
	BaseURL string `yaml:"base_url"`

	// Timeout is the fixed overall per-request timeout.
	Timeout Duration `yaml:"timeout"`
}

// ChatConfig configures chat dispatch behavior.
type ChatConfig struct {
	// DefaultService is the persona selected when the chat opens.
	DefaultService string `yaml:"default_service"`

	// PreferredProvider is passed to the smart-fallback endpoint; the server
	// orders its provider chain starting from this one.
	PreferredProvider string `yaml:"preferred_provider"`

	// SmartFallback enables the provider-fallback endpoint when the persona
	// endpoint fails. When disabled a failed send goes straight to the
	// placeholder reply.
	SmartFallback bool `yaml:"smart_fallback"`
}

// UIConfig configures the TUI.
type UIConfig struct {
	DarkMode bool `yaml:"dark_mode"`

	// Markdown enables glamour rendering of assistant replies.
	Markdown bool `yaml:"markdown"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`   // empty = stderr
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
			Timeout: Duration(10 * time.Second),
		},
		Chat: ChatConfig{
			DefaultService:    "memory_companion",
			PreferredProvider: "gemini",
			SmartFallback:     true,
		},
		UI: UIConfig{
			DarkMode: false,
			Markdown: true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns the default config file location (~/.echoai/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".echoai", "config.yaml")
	}
	return filepath.Join(home, ".echoai", "config.yaml")
}

// Load reads configuration from path, applying defaults for anything unset
// and environment overrides on top. A missing file is not an error.
func Load(path string) (*Config, error) {
	// Fold a local .env into the environment; absence is fine.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPITimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvAPITimeout, v, err)
		}
		c.API.Timeout = Duration(d)
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if os.Getenv(EnvDarkMode) == "1" {
		c.UI.DarkMode = true
	}
	return nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %v", c.API.Timeout)
	}
	if c.Chat.DefaultService == "" {
		return fmt.Errorf("chat.default_service must not be empty")
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
