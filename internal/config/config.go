// Package config loads dnacount settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dendrascience/dnacount/count"
	"github.com/dendrascience/dnacount/internal/logger"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".dnacount.yaml"

// Config holds the run settings. Every field can also be set by a flag.
type Config struct {
	// Suffix selects input files by name
	Suffix string `yaml:"suffix"`

	// Recursive descends into subdirectories of the input directory
	Recursive bool `yaml:"recursive"`

	// MaxWorkers bounds concurrent scans (0 = one goroutine per file, all at once)
	MaxWorkers int `yaml:"max_workers"`

	// Timeout limits a single file scan (0 = no limit)
	Timeout time.Duration `yaml:"timeout"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// HistoryDB is the SQLite database runs are recorded in ("" = disabled)
	HistoryDB string `yaml:"history_db"`

	// Strict turns a partial total into a failing exit status
	Strict bool `yaml:"strict"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Suffix:     count.DefaultSuffix,
		Recursive:  false,
		MaxWorkers: 0,
		Timeout:    0,
		LogLevel:   "info",
		HistoryDB:  "",
		Strict:     false,
	}
}

// LoadConfig loads configuration from path, merged over the defaults.
// A missing file is not an error and yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// timeout is parsed by hand so "30s" style durations work
	type yamlConfig struct {
		Suffix     *string `yaml:"suffix"`
		Recursive  *bool   `yaml:"recursive"`
		MaxWorkers *int    `yaml:"max_workers"`
		Timeout    string  `yaml:"timeout"`
		LogLevel   string  `yaml:"log_level"`
		HistoryDB  *string `yaml:"history_db"`
		Strict     *bool   `yaml:"strict"`
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yc.Suffix != nil {
		cfg.Suffix = *yc.Suffix
	}
	if yc.Recursive != nil {
		cfg.Recursive = *yc.Recursive
	}
	if yc.MaxWorkers != nil {
		cfg.MaxWorkers = *yc.MaxWorkers
	}
	if yc.Timeout != "" {
		timeout, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", yc.Timeout, err)
		}
		cfg.Timeout = timeout
	}
	if yc.LogLevel != "" {
		cfg.LogLevel = yc.LogLevel
	}
	if yc.HistoryDB != nil {
		cfg.HistoryDB = *yc.HistoryDB
	}
	if yc.Strict != nil {
		cfg.Strict = *yc.Strict
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	var errs []error
	if !strings.HasPrefix(c.Suffix, ".") || len(c.Suffix) < 2 {
		errs = append(errs, fmt.Errorf("suffix %q must start with '.' and name an extension", c.Suffix))
	}
	if c.MaxWorkers < 0 {
		errs = append(errs, fmt.Errorf("max_workers must be >= 0, got %d", c.MaxWorkers))
	}
	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout must be >= 0, got %s", c.Timeout))
	}
	if !logger.ValidLevel(c.LogLevel) {
		errs = append(errs, fmt.Errorf("unknown log_level %q", c.LogLevel))
	}
	return errors.Join(errs...)
}
