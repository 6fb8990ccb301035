// Package config handles cffkit's global configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents configuration stored in ~/.config/cffkit/config.yml.
type Config struct {
	ResolverURL string `yaml:"resolver_url,omitempty"`
	Mailto      string `yaml:"mailto,omitempty"`
	IndexRoot   string `yaml:"index_root,omitempty"`
	IndexDir    string `yaml:"index_dir,omitempty"`
	Strict      bool   `yaml:"strict,omitempty"`

	// Deprecated: renamed to resolver_url. Accepted on load, never saved.
	Resolver string `yaml:"resolver,omitempty"`
}

const (
	// ConfigDir is the directory name under XDG_CONFIG_HOME.
	ConfigDir = "cffkit"
	// ConfigFile is the config file name.
	ConfigFile = "config.yml"
	// SystemConfigPath is the machine-wide fallback location.
	SystemConfigPath = "/etc/cffkit/config.yml"
	// EnvConfigPath names the environment variable that overrides the
	// config search path entirely.
	EnvConfigPath = "CFF_CONFIG"
	// DefaultResolverURL is the DOI handle endpoint used when none is
	// configured.
	DefaultResolverURL = "https://doi.org/api/handles"
)

// configCache caches the loaded config.
var configCache *Config

// Path returns the path to the user config file. Respects $CFF_CONFIG,
// then $XDG_CONFIG_HOME, defaults to ~/.config/cffkit/config.yml.
func Path() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return ExpandPath(p)
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, ConfigDir, ConfigFile)
}

// Load returns the global configuration, reading the user config file or,
// when that is absent, the system one. A missing file is not an error: it
// yields an empty config. The result is cached.
func Load() (*Config, error) {
	if configCache != nil {
		return configCache, nil
	}

	for _, path := range []string{Path(), SystemConfigPath} {
		if path == "" {
			continue
		}
		cfg, err := LoadFrom(path)
		if err == nil {
			configCache = cfg
			return cfg, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	configCache = cfg
	return cfg, nil
}

// LoadFrom reads one config file. Unknown keys are errors; the legacy
// resolver key is migrated to resolver_url with a warning.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if cfg.Resolver != "" {
		if cfg.ResolverURL == "" {
			cfg.ResolverURL = cfg.Resolver
		}
		fmt.Fprintf(os.Stderr, "warning: %s: config key \"resolver\" is deprecated, use \"resolver_url\"\n", path)
		cfg.Resolver = ""
	}

	cfg.IndexRoot = ExpandPath(cfg.IndexRoot)
	cfg.IndexDir = ExpandPath(cfg.IndexDir)

	return &cfg, nil
}

// ResetCache clears the cached config. Useful for testing.
func ResetCache() {
	configCache = nil
}

// Save writes the config to path, creating parent directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Dump renders the config as YAML.
func (c *Config) Dump() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("encoding config: %w", err)
	}
	return string(data), nil
}

// Keys lists the settable configuration keys.
func Keys() []string {
	return []string{"resolver-url", "mailto", "index-root", "index-dir", "strict"}
}

// Get returns the value for a kebab-case key name.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "resolver-url":
		return c.ResolverURL, nil
	case "mailto":
		return c.Mailto, nil
	case "index-root":
		return c.IndexRoot, nil
	case "index-dir":
		return c.IndexDir, nil
	case "strict":
		return strconv.FormatBool(c.Strict), nil
	}
	return "", fmt.Errorf("unknown configuration key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
}

// Set stores a value under a kebab-case key name.
func (c *Config) Set(key, value string) error {
	switch key {
	case "resolver-url":
		c.ResolverURL = value
	case "mailto":
		c.Mailto = value
	case "index-root":
		c.IndexRoot = ExpandPath(value)
	case "index-dir":
		c.IndexDir = ExpandPath(value)
	case "strict":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("strict wants true or false, got %q", value)
		}
		c.Strict = b
	default:
		return fmt.Errorf("unknown configuration key: %s (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return nil
}

// ResolverURL returns the configured DOI handle endpoint, or the default.
func ResolverURL() string {
	cfg, _ := Load()
	if cfg == nil || cfg.ResolverURL == "" {
		return DefaultResolverURL
	}
	return cfg.ResolverURL
}

// Mailto returns the contact address sent with resolver requests.
func Mailto() string {
	cfg, _ := Load()
	if cfg == nil {
		return ""
	}
	return cfg.Mailto
}

// Strict reports whether strict validation is configured on.
func Strict() bool {
	cfg, _ := Load()
	return cfg != nil && cfg.Strict
}

// IndexDir returns the directory index data lives in: the configured one,
// else $XDG_DATA_HOME/cffkit, else ~/.local/share/cffkit.
func IndexDir() string {
	cfg, _ := Load()
	if cfg != nil && cfg.IndexDir != "" {
		return cfg.IndexDir
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, ConfigDir)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
