// Package config layers reconkit configuration: code defaults first, then
// the kit config file, then RECONKIT_* environment variables. Command flags
// go on top of all three, applied by the command layer.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/araultra/reconkit/pkg/catalog"
	"github.com/araultra/reconkit/pkg/kit"
)

// Config is the resolved tool configuration.
type Config struct {
	// KitRoot is the kit home directory. Empty means ~/.reconkit.
	KitRoot string `yaml:"kit_root" env:"KIT_ROOT"`
	// ProjectDir is the default project tree audited when no flag is given.
	ProjectDir string `yaml:"project_dir" env:"PROJECT_DIR"`
	// Manifest overrides the manifest path. Empty means requirements.txt in
	// the project root.
	Manifest string `yaml:"manifest" env:"MANIFEST"`
	// BinDir overrides the binary directory. Empty means the kit bin.
	BinDir string `yaml:"bin_dir" env:"BIN_DIR"`
	// BrewBin names the Homebrew executable.
	BrewBin string `yaml:"brew_bin" env:"BREW_BIN"`
	// PipBin overrides pip selection. Empty means the kit venv pip when the
	// venv exists, pip3 otherwise.
	PipBin string `yaml:"pip_bin" env:"PIP_BIN"`
	// Extensions are the project file extensions scanned for references.
	Extensions []string `yaml:"extensions" env:"EXTENSIONS" envSeparator:","`
	// Log controls logger verbosity and encoding.
	Log LogConfig `yaml:"log" envPrefix:"LOG_"`
	// Tools are user catalog entries, overlaid on the builtin allow-list
	// by name.
	Tools []catalog.Tool `yaml:"tools"`
}

// LogConfig mirrors the log package configuration.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() Config {
	return Config{
		BrewBin:    "brew",
		Extensions: []string{".py"},
		Log: LogConfig{
			Level:  "progress",
			Format: "console",
		},
	}
}

// DefaultPath returns the kit config file location, ~/.reconkit/config.yaml.
// It is independent of the KitRoot field on purpose: the config file is
// where KitRoot gets set.
func DefaultPath() (string, error) {
	root, err := kit.DefaultRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "config.yaml"), nil
}

// Load builds the configuration. An explicit path must exist; the default
// path is optional. A .env file in the working directory is loaded first as
// a development convenience.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return Config{}, fmt.Errorf("load .env file: %w", err)
		}
	}

	cfg := Defaults()

	explicit := path != ""
	if !explicit {
		def, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = def
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case explicit || !os.IsNotExist(err):
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "RECONKIT_"}); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects malformed user catalog entries before they reach the
// installers.
func (c Config) Validate() error {
	for _, t := range c.Tools {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("config tools: %w", err)
		}
	}
	return nil
}

// MergedTools overlays the user entries on the builtin allow-list.
func (c Config) MergedTools() []catalog.Tool {
	return catalog.Merge(catalog.Tools(), c.Tools)
}
