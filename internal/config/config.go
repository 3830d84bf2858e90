package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds settings that can live in a file. The log URL is not one of
// them: it is always given on the command line.
type Config struct {
	UserAgent   string `yaml:"user_agent"`
	LogLevel    string `yaml:"log_level"`
	LogEncoding string `yaml:"log_encoding"`
	// PreviewRows is how many parsed rows are echoed at debug level.
	PreviewRows int  `yaml:"preview_rows"`
	Progress    bool `yaml:"progress"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		UserAgent:   "logreport",
		LogLevel:    "info",
		LogEncoding: "console",
		PreviewRows: 5,
	}
}

// Load reads a YAML file. Keys missing from the file keep their defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result. Unknown keys
// are rejected so typos do not pass silently.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerated fields and bounds.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: invalid log_level %q (want debug, info, warn or error)", c.LogLevel)
	}
	switch strings.ToLower(c.LogEncoding) {
	case "console", "json":
	default:
		return fmt.Errorf("config: invalid log_encoding %q (want console or json)", c.LogEncoding)
	}
	if c.PreviewRows < 0 {
		return fmt.Errorf("config: preview_rows must not be negative, got %d", c.PreviewRows)
	}
	return nil
}
