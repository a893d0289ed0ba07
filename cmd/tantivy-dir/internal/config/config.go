// Package config provides the configuration file for the tantivy-dir CLI.
//
// The file lives under os.UserConfigDir()/tantivy-dir/config.yaml unless
// TANTIVY_DIR_CONFIG_DIR or --config points elsewhere:
//
//	root: /var/lib/search/index
//	watch_interval: 250ms
//	log_level: debug
//	output: json
//
// A missing file is not an error; every field has a usable default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "tantivy-dir"

	// configFile is the configuration filename.
	configFile = "config.yaml"

	// EnvConfigDir overrides the configuration directory.
	EnvConfigDir = "TANTIVY_DIR_CONFIG_DIR"
)

// Config holds the CLI settings.
type Config struct {
	// Root is the index directory used when --root is not given.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`

	// WatchInterval is the poll interval of the metadata watcher,
	// as a Go duration string.
	WatchInterval string `json:"watch_interval,omitempty" yaml:"watch_interval,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty"`

	// Output is the default output format (yaml, json, raw).
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// path is the file the config was loaded from.
	path string
}

// setters maps the keys accepted by Set to their validation and
// assignment.
var setters = map[string]func(*Config, string) error{
	"root": func(c *Config, v string) error {
		c.Root = v
		return nil
	},
	"watch_interval": func(c *Config, v string) error {
		if _, err := parseInterval(v); err != nil {
			return err
		}
		c.WatchInterval = v
		return nil
	},
	"log_level": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "debug", "info", "warn", "warning", "error":
		default:
			return fmt.Errorf("invalid log_level %q", v)
		}
		c.LogLevel = v
		return nil
	},
	"output": func(c *Config, v string) error {
		switch v {
		case "yaml", "json", "raw":
		default:
			return fmt.Errorf("invalid output %q", v)
		}
		c.Output = v
		return nil
	},
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, configFile), nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, configFile), nil
}

// Load loads the configuration from path, or from DefaultPath if path
// is empty.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.path = path
	if _, err := cfg.Interval(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Path returns the config file path.
func (c *Config) Path() string {
	return c.path
}

// Interval returns the parsed watch interval, or zero if unset.
func (c *Config) Interval() (time.Duration, error) {
	return parseInterval(c.WatchInterval)
}

func parseInterval(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid watch_interval %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid watch_interval %q: must be positive", s)
	}
	return d, nil
}

// Keys returns the keys accepted by Set, sorted.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set validates and assigns one key. It does not save.
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}
	return set(c, value)
}

// Save writes the configuration back to its path.
func (c *Config) Save() error {
	if c.path == "" {
		return errors.New("config has no path")
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
