package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the CLI looks for a config file when -config is not given.
const DefaultPath = "~/.minischeme.yaml"

// Config models the CLI settings.
type Config struct {
	Prompt             string `yaml:"prompt"`
	ContinuationPrompt string `yaml:"continuation_prompt"`
	HistoryFile        string `yaml:"history_file"`
	Color              bool   `yaml:"color"`
	MaxDepth           int    `yaml:"max_depth"`
	LogLevel           string `yaml:"log_level"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Prompt:             "> ",
		ContinuationPrompt: ".. ",
		HistoryFile:        "~/.minischeme_history",
		Color:              true,
		MaxDepth:           10000,
		LogLevel:           "warn",
	}
}

// Load reads the config file at path on top of the defaults.
// A missing file is not an error when allowMissing is set.
func Load(path string, allowMissing bool) (*Config, error) {
	cfg := Default()
	abs, err := ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		if allowMissing && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer file.Close()

	if err := Decode(file, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	return cfg, nil
}

// Decode reads YAML from r into cfg. Unknown keys are rejected.
func Decode(r io.Reader, cfg *Config) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return cfg.Validate()
}

// Validate checks the values that have a restricted range.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", name)
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
