// Package config loads and validates jdparse configuration from viper.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jdparse/jdparse/internal/llm"
)

// Provider holds the per-backend settings injected into a client.
type Provider struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout" validate:"gt=0"`
}

// Progress configures the progress tracker lifecycle.
type Progress struct {
	// MaxAge bounds how long an abandoned job's counters survive before a
	// sweep removes them.
	MaxAge time.Duration `mapstructure:"max_age" validate:"gt=0"`
}

// Batch configures batch job execution.
type Batch struct {
	Workers   int     `mapstructure:"workers" validate:"gte=1"`
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
}

// Config is the full application configuration.
type Config struct {
	// Order is the provider fallback priority, tried front to back.
	Order     []string            `mapstructure:"provider_order" validate:"min=1,dive,oneof=ollama gemini openai anthropic"`
	Providers map[string]Provider `mapstructure:"providers" validate:"dive"`
	Progress  Progress            `mapstructure:"progress"`
	Batch     Batch               `mapstructure:"batch"`
}

// SetDefaults installs defaults on the given viper instance. The local model
// leads the fallback order and gets the generous timeout a cold local model
// needs; the cloud backends get a tight one.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("provider_order", llm.DefaultOrder())
	v.SetDefault("providers.ollama.timeout", 600*time.Second)
	v.SetDefault("providers.ollama.model", "mistral:7b")
	v.SetDefault("providers.gemini.timeout", 60*time.Second)
	v.SetDefault("providers.gemini.model", "gemini-2.5-flash")
	v.SetDefault("providers.openai.timeout", 60*time.Second)
	v.SetDefault("providers.anthropic.timeout", 60*time.Second)
	v.SetDefault("progress.max_age", time.Hour)
	v.SetDefault("batch.workers", 1)
	v.SetDefault("batch.rate_limit", 0)
}

// Load unmarshals and validates the configuration.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// BuildProviders instantiates the fallback chain in configured priority
// order.
func (c *Config) BuildProviders() ([]llm.Provider, error) {
	providers := make([]llm.Provider, 0, len(c.Order))
	for _, name := range c.Order {
		pc := c.Providers[name]
		p, err := llm.NewProvider(name, llm.ProviderConfig{
			APIKey:  pc.APIKey,
			BaseURL: pc.BaseURL,
			Model:   pc.Model,
			Timeout: pc.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("build provider %s: %w", name, err)
		}
		providers = append(providers, p)
	}
	return providers, nil
}
