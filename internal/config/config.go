package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/symburst/internal/symbols"
)

// DefaultPath is where the config file is looked up by default.
const DefaultPath = ".symburst.yml"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SYMBURST_*).
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

	// Overlay environment variables: SYMBURST_PORT -> port, etc.
	if err := k.Load(env.Provider("SYMBURST_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SYMBURST_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log levels.
var validLogLevels = map[LogLevel]bool{
	LogDebug: true,
	LogInfo:  true,
	LogWarn:  true,
	LogError: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if len(c.TypeSet()) == 0 && len(c.Types) > 0 {
		return fmt.Errorf("invalid types %v: must be among t, d, b", c.Types)
	}

	if c.Radius <= 0 {
		return fmt.Errorf("radius must be positive")
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}

	return nil
}

// TypeSet returns the configured initial type filter.
func (c *Config) TypeSet() symbols.TypeSet {
	return symbols.ParseTypeSet(c.Types...)
}

// DatabasePath returns the SQLite file holding imported datasets.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "symburst.db")
}
