package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/sirupsen/logrus"
	yamlv3 "gopkg.in/yaml.v3"
)

// envPrefix is the prefix of environment overrides. A double underscore
// separates nested keys: ACCESSBLOCK_BIONIC__API_KEY -> bionic.api_key.
const envPrefix = "ACCESSBLOCK_"

var colourPattern = regexp.MustCompile(`(?i)^#[a-f0-9]{6}$`)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ACCESSBLOCK_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// A configured scheme list replaces the defaults instead of merging index by index.
	if k.Exists("schemes") {
		cfg.Schemes = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(key, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d: %w", c.Server.Port, ErrInvalidPort)
	}

	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Path == "" {
			return ErrMissingPath
		}
	case DriverDynamoDB:
		if c.Database.Table == "" {
			return ErrMissingTable
		}
	default:
		return fmt.Errorf("database.driver %q: %w", c.Database.Driver, ErrInvalidDriver)
	}

	if c.Bionic.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if c.Bionic.RequestsPerMinute < 0 {
		return ErrInvalidRate
	}
	if c.Bionic.Timeout < 0 || c.Database.HistoryRetention < 0 {
		return ErrInvalidTimeout
	}

	for _, s := range c.Schemes {
		if s.ID < 2 || s.ID > 4 {
			return fmt.Errorf("scheme %d: %w", s.ID, ErrInvalidSchemeID)
		}
		if !ValidColour(s.Background) {
			return fmt.Errorf("scheme %d background %q: %w", s.ID, s.Background, ErrInvalidColour)
		}
		// Foreground is optional; pages keep their own text colours when empty.
		if s.Foreground != "" && !ValidColour(s.Foreground) {
			return fmt.Errorf("scheme %d foreground %q: %w", s.ID, s.Foreground, ErrInvalidColour)
		}
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level %q: %w", c.Log.Level, ErrInvalidLogLevel)
	}

	return nil
}

// ValidColour reports whether s is a #rrggbb hex colour.
func ValidColour(s string) bool {
	return colourPattern.MatchString(s)
}
