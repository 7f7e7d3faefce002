package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oakwood-commons/roadtrip/pkg/settings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "ROADTRIP_"

// Loader merges the configuration layers. The zero value reads the real
// embedded defaults and process environment.
type Loader struct {
	defaultConfig func() (Config, error)
	lookupEnv     func(string) (string, bool)
}

// Load returns defaults overlaid with the file at path (if non-empty) and
// then the environment. The result is validated.
func Load(path string) (Config, error) {
	return Loader{}.Load(path)
}

func (l Loader) Load(path string) (Config, error) {
	defaults := l.defaultConfig
	if defaults == nil {
		defaults = Defaults
	}
	cfg, err := defaults()
	if err != nil {
		return cfg, fmt.Errorf("load default config: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		// Decoding onto the defaults keeps every key the file omits.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("decode config %s: %w", path, err)
		}
	}

	lookup := l.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if err := applyEnv(&cfg, lookup); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ResolvePath returns the config file to load: explicit if set, else the
// XDG location when it exists, else empty.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	var candidate string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		candidate = filepath.Join(xdg, settings.CliBinaryName, "config.yaml")
	} else if home, err := os.UserHomeDir(); err == nil {
		candidate = filepath.Join(home, ".config", settings.CliBinaryName, "config.yaml")
	}
	if candidate == "" {
		return ""
	}
	if _, err := os.Stat(candidate); err != nil {
		return ""
	}
	return candidate
}

// DefaultLogFile returns $XDG_STATE_HOME/roadtrip/roadtrip.log, falling back
// to ~/.local/state.
func DefaultLogFile() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, settings.CliBinaryName, settings.CliBinaryName+".log")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), settings.CliBinaryName+".log")
	}
	return filepath.Join(home, ".local", "state", settings.CliBinaryName, settings.CliBinaryName+".log")
}

type envBinding struct {
	name  string
	apply func(cfg *Config, v string) error
}

var envBindings = []envBinding{
	{"API_URL", func(c *Config, v string) error { c.API.BaseURL = v; return nil }},
	{"API_TIMEOUT", func(c *Config, v string) error { return parseDuration(v, &c.API.Timeout) }},
	{"API_RATE_LIMIT", func(c *Config, v string) error { return parseFloat(v, &c.API.RateLimit) }},
	{"API_BURST", func(c *Config, v string) error { return parseInt(v, &c.API.Burst) }},
	{"SEARCH_DEBOUNCE", func(c *Config, v string) error { return parseDuration(v, &c.Search.Debounce) }},
	{"SEARCH_MIN_QUERY_LENGTH", func(c *Config, v string) error { return parseInt(v, &c.Search.MinQueryLength) }},
	{"SEARCH_MAX_RESULTS", func(c *Config, v string) error { return parseInt(v, &c.Search.MaxResults) }},
	{"CREDENTIALS_FILE", func(c *Config, v string) error { c.Storage.CredentialsFile = v; return nil }},
	{"KEY_MODE", func(c *Config, v string) error { c.UI.KeyMode = v; return nil }},
	{"NO_COLOR", func(c *Config, v string) error { return parseBool(v, &c.UI.NoColor) }},
	{"LOG_FILE", func(c *Config, v string) error { c.Log.File = v; return nil }},
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, b := range envBindings {
		v, ok := lookup(EnvPrefix + b.name)
		if !ok {
			continue
		}
		if err := b.apply(cfg, v); err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, b.name, err)
		}
	}
	// NO_COLOR is honoured regardless of value, see https://no-color.org.
	if _, ok := lookup("NO_COLOR"); ok {
		cfg.UI.NoColor = true
	}
	return nil
}

func parseDuration(v string, out *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*out = d
	return nil
}

func parseInt(v string, out *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*out = n
	return nil
}

func parseFloat(v string, out *float64) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	*out = f
	return nil
}

func parseBool(v string, out *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*out = b
	return nil
}
