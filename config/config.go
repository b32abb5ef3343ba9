// Package config loads interpreter settings from a YAML file.
//
// A configuration file looks like:
//
//	verbose: false
//	typecheck: true
//	color: auto
//	std: true
//	prelude:
//	  - lib/bool.lc
//	history: ~/.lambda_history
//
// Relative prelude paths are resolved against the directory of the file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// EnvVar names the environment variable that points at a configuration file.
const EnvVar = "LAMBDA_CONFIG"

type Config struct {
	// Verbose reports every assignment and reduction step.
	Verbose bool `yaml:"verbose"`
	// TypeCheck checks each program before it is evaluated.
	TypeCheck bool `yaml:"typecheck"`
	// Color is one of auto, always or never.
	Color string `yaml:"color"`
	// Std loads the standard library at startup.
	Std bool `yaml:"std"`
	// Prelude lists files evaluated at startup, in order.
	Prelude []string `yaml:"prelude,omitempty"`
	// History is the REPL history file. Empty disables history.
	History string `yaml:"history"`
}

func Default() *Config {
	return &Config{
		Color:   ColorAuto,
		History: "~/.lambda_history",
	}
}

// Load reads and validates the configuration file at path. Settings the
// file leaves out keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for i, file := range cfg.Prelude {
		if !filepath.IsAbs(file) && !strings.HasPrefix(file, "~") {
			cfg.Prelude[i] = filepath.Join(dir, file)
		}
	}
	return cfg, nil
}

// Parse decodes configuration content. path is only used in messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Discover loads the file named by $LAMBDA_CONFIG, or else
// $HOME/.lambda.yaml when it exists. With neither it returns the defaults.
func Discover() (*Config, error) {
	if path := os.Getenv(EnvVar); path != "" {
		return Load(path)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	path := filepath.Join(home, ".lambda.yaml")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Load(path)
}

func (c *Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("color: unknown mode %q (want auto, always or never)", c.Color)
	}
	for i, file := range c.Prelude {
		if strings.TrimSpace(file) == "" {
			return fmt.Errorf("prelude[%d]: empty path", i)
		}
	}
	return nil
}

// Colorize reports whether output should be colored, given whether the
// output is a terminal.
func (c *Config) Colorize(terminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return terminal
}

// HistoryPath returns the history file with a leading ~ expanded.
func (c *Config) HistoryPath() string {
	return ExpandHome(c.History)
}

// ExpandHome replaces a leading ~ in path by the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
