package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/ttodiocomunicaciones-ux/Mundo-AI-News/internal/model"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// AIConfig selects and configures the generative provider.
type AIConfig struct {
	Provider string `yaml:"provider"` // "gemini" or "openai"
	Model    string `yaml:"model"`
	APIKey   string `yaml:"api_key"`
	// ImageModel overrides the model used for illustration requests.
	ImageModel string `yaml:"image_model,omitempty"`
}

// NewsAPIConfig configures the structured headline provider.
type NewsAPIConfig struct {
	APIKey   string `yaml:"api_key"`
	PageSize int    `yaml:"page_size"`
}

// GoogleNewsConfig configures the keyless RSS headline provider.
type GoogleNewsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	RefreshInterval string           `yaml:"refresh_interval"`
	HistoryCap      int              `yaml:"history_cap"`
	Language        string           `yaml:"language"`
	DefaultCategory string           `yaml:"default_category"`
	AI              *AIConfig        `yaml:"ai,omitempty"`
	NewsAPI         *NewsAPIConfig   `yaml:"newsapi,omitempty"`
	GoogleNews      GoogleNewsConfig `yaml:"googlenews"`
}

// AIKey returns the generative provider key from config or environment.
// Which env var applies depends on the configured provider.
func (c *Config) AIKey() string {
	if c.AI != nil && c.AI.APIKey != "" {
		return c.AI.APIKey
	}
	if c.AI != nil && c.AI.Provider == "openai" {
		return os.Getenv("OPENAI_API_KEY")
	}
	return os.Getenv("GEMINI_API_KEY")
}

// NewsAPIKey returns the structured provider key from config or environment.
// Empty means the provider is unavailable, not an error.
func (c *Config) NewsAPIKey() string {
	if c.NewsAPI != nil && c.NewsAPI.APIKey != "" {
		return c.NewsAPI.APIKey
	}
	return os.Getenv("NEWSAPI_KEY")
}

// NewsAPIPageSize returns the headline page size, defaulting to 10.
func (c *Config) NewsAPIPageSize() int {
	if c.NewsAPI == nil || c.NewsAPI.PageSize <= 0 {
		return 10
	}
	return c.NewsAPI.PageSize
}

func (c *Config) RefreshDuration() time.Duration {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil || d <= 0 {
		return time.Hour
	}
	return d
}

// Cap returns the history retention cap, defaulting to 50 records.
func (c *Config) Cap() int {
	if c.HistoryCap <= 0 {
		return 50
	}
	return c.HistoryCap
}

// StartCategory returns the configured startup section, falling back to
// Mundo for unknown values.
func (c *Config) StartCategory() model.Category {
	cat := model.Category(c.DefaultCategory)
	if cat.Valid() {
		return cat
	}
	return model.CategoryWorld
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "mundonews", "config.yaml")
}

func HistoryPath() string {
	return filepath.Join(xdg.CacheHome, "mundonews", "history.db")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

func Load(path string) (*Config, error) {
	defaults, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Write defaults to config path on first run
			if err := writeDefaults(path); err != nil {
				// Non-fatal: just use embedded defaults
				return defaults, nil
			}
			return defaults, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	if cfg.AI != nil {
		switch cfg.AI.Provider {
		case "", "gemini", "openai":
		default:
			return fmt.Errorf("unknown AI provider: %q (valid: gemini, openai)", cfg.AI.Provider)
		}
	}
	if cfg.DefaultCategory != "" && !model.Category(cfg.DefaultCategory).Valid() {
		return fmt.Errorf("unknown default_category: %q", cfg.DefaultCategory)
	}
	if cfg.HistoryCap < 0 {
		return fmt.Errorf("history_cap must not be negative")
	}
	return nil
}
