// Package config loads roadtrip's layered configuration: embedded defaults,
// the user's YAML file, then ROADTRIP_* environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the merged configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Search  SearchConfig  `yaml:"search"`
	Storage StorageConfig `yaml:"storage"`
	UI      UIConfig      `yaml:"ui"`
	Log     LogConfig     `yaml:"log"`
}

// APIConfig configures the backend client.
type APIConfig struct {
	BaseURL   string        `yaml:"base_url"`
	Timeout   time.Duration `yaml:"timeout"`
	RateLimit float64       `yaml:"rate_limit"`
	Burst     int           `yaml:"burst"`
}

// SearchConfig configures the debounced place search.
type SearchConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	MinQueryLength int           `yaml:"min_query_length"`
	MaxResults     int           `yaml:"max_results"`
}

// StorageConfig locates persisted credentials.
type StorageConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
}

// UIConfig configures the interactive search.
type UIConfig struct {
	KeyMode string `yaml:"key_mode"`
	NoColor bool   `yaml:"no_color"`
}

// LogConfig configures log output.
type LogConfig struct {
	File string `yaml:"file"`
}

// KeyModes accepted by ui.key_mode.
var KeyModes = []string{"default", "emacs", "vim", "function"}

// Validate rejects values the client cannot work with.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.API.RateLimit < 0 {
		return fmt.Errorf("api.rate_limit must not be negative, got %v", c.API.RateLimit)
	}
	if c.API.RateLimit > 0 && c.API.Burst < 1 {
		return fmt.Errorf("api.burst must be at least 1 when api.rate_limit is set")
	}
	if c.Search.Debounce <= 0 {
		return fmt.Errorf("search.debounce must be positive, got %s", c.Search.Debounce)
	}
	if c.Search.MinQueryLength < 0 {
		return fmt.Errorf("search.min_query_length must not be negative")
	}
	if c.Search.MaxResults < 0 {
		return fmt.Errorf("search.max_results must not be negative")
	}
	for _, m := range KeyModes {
		if c.UI.KeyMode == m {
			return nil
		}
	}
	return fmt.Errorf("ui.key_mode %q is not one of %v", c.UI.KeyMode, KeyModes)
}
