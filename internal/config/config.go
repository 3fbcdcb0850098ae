// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/propensive/digression/internal/errors"
)

// ColorMode controls ANSI color in rendered output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

var validColorModes = map[string]bool{
	string(ColorAuto):   true,
	string(ColorAlways): true,
	string(ColorNever):  true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Config represents the general configuration for digression
type Config struct {
	LogLevel    string    `json:"log_level,omitempty"`
	Color       ColorMode `json:"color,omitempty"`
	HistoryPath string    `json:"history_path,omitempty"`
	DaemonPort  string    `json:"daemon_port,omitempty"`
	// CrashReporting enables opt-in anonymous crash reporting.
	// Set via crash_reporting = true in config or DIGRESSION_CRASH_REPORTING=true.
	CrashReporting bool `json:"crash_reporting,omitempty"`
	// CrashEndpoint is a custom HTTPS URL that receives JSON crash reports.
	// Set via crash_endpoint in config or DIGRESSION_CRASH_ENDPOINT.
	CrashEndpoint string `json:"crash_endpoint,omitempty"`
	// CrashSentryDSN is a Sentry Data Source Name for crash reporting.
	// Set via crash_sentry_dsn in config or DIGRESSION_SENTRY_DSN.
	CrashSentryDSN string `json:"crash_sentry_dsn,omitempty"`
}

var defaultConfig = &Config{
	LogLevel:    "info",
	Color:       ColorAuto,
	HistoryPath: filepath.Join(os.ExpandEnv("$HOME"), ".digression", "history.db"),
	DaemonPort:  "8537",
}

// GetConfigPath returns the directory holding digression's configuration.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.WrapConfigError("failed to resolve home directory", err)
	}
	return filepath.Join(home, ".digression"), nil
}

// GetGeneralConfigPath returns the path to the general configuration file
func GetGeneralConfigPath() (string, error) {
	configDir, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.json"), nil
}

// LoadConfig loads the general configuration from disk (JSON format)
func LoadConfig() (*Config, error) {
	configPath, err := GetGeneralConfigPath()
	if err != nil {
		return nil, err
	}

	// If file doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.WrapConfigError("failed to read config file", err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, errors.WrapConfigError("failed to parse config file", err)
	}

	return config, nil
}

// Load loads the configuration from the environment on top of the config
// file, then validates the result.
func Load() (*Config, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}

	cfg.LogLevel = getEnv("DIGRESSION_LOG_LEVEL", cfg.LogLevel)
	cfg.Color = ColorMode(getEnv("DIGRESSION_COLOR", string(cfg.Color)))
	cfg.HistoryPath = getEnv("DIGRESSION_HISTORY_PATH", cfg.HistoryPath)
	cfg.DaemonPort = getEnv("DIGRESSION_DAEMON_PORT", cfg.DaemonPort)
	cfg.CrashEndpoint = getEnv("DIGRESSION_CRASH_ENDPOINT", cfg.CrashEndpoint)
	cfg.CrashSentryDSN = getEnv("DIGRESSION_SENTRY_DSN", cfg.CrashSentryDSN)

	// DIGRESSION_CRASH_REPORTING is a boolean env var; parse it explicitly.
	switch strings.ToLower(os.Getenv("DIGRESSION_CRASH_REPORTING")) {
	case "1", "true", "yes":
		cfg.CrashReporting = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig saves the configuration to disk (JSON format)
func SaveConfig(config *Config) error {
	configPath, err := GetGeneralConfigPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return errors.WrapConfigError("failed to create config directory", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return errors.WrapConfigError("failed to marshal config", err)
	}

	// Write with restricted permissions (owner only)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return errors.WrapConfigError("failed to write config file", err)
	}

	return nil
}

func (c *Config) Validate() error {
	if c.LogLevel != "" && !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("%w: invalid log level %q", errors.ErrConfigError, c.LogLevel)
	}
	if c.Color != "" && !validColorModes[string(c.Color)] {
		return fmt.Errorf("%w: invalid color mode %q", errors.ErrConfigError, c.Color)
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{LogLevel: %s, Color: %s, HistoryPath: %s, DaemonPort: %s}",
		c.LogLevel, c.Color, c.HistoryPath, c.DaemonPort,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func DefaultConfig() *Config {
	return &Config{
		LogLevel:    defaultConfig.LogLevel,
		Color:       defaultConfig.Color,
		HistoryPath: defaultConfig.HistoryPath,
		DaemonPort:  defaultConfig.DaemonPort,
	}
}
