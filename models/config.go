package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "config.yaml"

// Config is the single YAML configuration file for the pipeline.
type Config struct {
	DBPath  string         `yaml:"db_path"`
	Workers int            `yaml:"workers"`
	Sources []SourceConfig `yaml:"sources"`
	Models  []ModelConfig  `yaml:"models"`
	Scoring ScoringConfig  `yaml:"scoring"`
}

// SourceConfig describes one news outlet: where its article lists live and
// how to pull title/body/date out of a detail page. Selector fields are CSS
// selectors; empty detail selectors fall back to readability extraction.
type SourceConfig struct {
	Name          string   `yaml:"name"`
	Topic         string   `yaml:"topic"`
	ListURL       string   `yaml:"list_url"`
	Pages         int      `yaml:"pages"`
	LinkSelector  string   `yaml:"link_selector"`
	URLPattern    string   `yaml:"url_pattern"`
	TitleSelector string   `yaml:"title_selector"`
	BodySelector  string   `yaml:"body_selector"`
	DateSelector  string   `yaml:"date_selector"`
	DateLayouts   []string `yaml:"date_layouts"`
	Denylist      []string `yaml:"denylist"`
	DelayMillis   int      `yaml:"delay_millis"`
}

// ModelConfig describes one sentiment model: which provider serves it and
// how its native label vocabulary maps onto the canonical labels. The label
// map is the only place model-specific vocabulary is known.
type ModelConfig struct {
	Name          string            `yaml:"name"`
	Provider      string            `yaml:"provider"`
	Endpoint      string            `yaml:"endpoint"`
	Model         string            `yaml:"model"`
	APIKey        string            `yaml:"api_key"`
	APIKeyEnv     string            `yaml:"api_key_env"`
	MaxInputRunes int               `yaml:"max_input_runes"`
	Labels        map[string]string `yaml:"labels"`
}

// ScoringConfig bounds the scoring loop: batch size, retry ceiling, request
// rate and per-call timeout.
type ScoringConfig struct {
	BatchSize      int     `yaml:"batch_size"`
	MaxRetries     int     `yaml:"max_retries"`
	RatePerSecond  float64 `yaml:"rate_per_second"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
}

// LoadConfig reads the YAML config, applies defaults and resolves API keys
// from the environment where api_key_env is set.
func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()
	cfg.resolveSecrets()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DBPath == "" {
		c.DBPath = "mbg-insight.db"
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	if c.Scoring.BatchSize <= 0 {
		c.Scoring.BatchSize = 32
	}
	if c.Scoring.MaxRetries <= 0 {
		c.Scoring.MaxRetries = 3
	}
	if c.Scoring.RatePerSecond <= 0 {
		c.Scoring.RatePerSecond = 4
	}
	if c.Scoring.TimeoutSeconds <= 0 {
		c.Scoring.TimeoutSeconds = 30
	}
	for i := range c.Models {
		if c.Models[i].MaxInputRunes <= 0 {
			c.Models[i].MaxInputRunes = 512
		}
	}
}

func (c *Config) resolveSecrets() {
	for i := range c.Models {
		m := &c.Models[i]
		if m.APIKey == "" && m.APIKeyEnv != "" {
			m.APIKey = os.Getenv(m.APIKeyEnv)
		}
	}
}

// ModelByName returns the config block for a model, or an error naming the
// configured alternatives.
func (c *Config) ModelByName(name string) (*ModelConfig, error) {
	names := make([]string, 0, len(c.Models))
	for i := range c.Models {
		if c.Models[i].Name == name {
			return &c.Models[i], nil
		}
		names = append(names, c.Models[i].Name)
	}
	return nil, fmt.Errorf("unknown model %q (configured: %v)", name, names)
}
