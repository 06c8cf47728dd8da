// Package config loads reviewlens configuration: optional .env overrides
// and the bank app registry.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variable names honored by the CLI.
const (
	EnvDBPath   = "REVIEWLENS_DB"
	EnvLogLevel = "REVIEWLENS_LOG_LEVEL"
)

// LoadEnv loads a .env file from the working directory if one exists.
// Variables already set in the environment win over file values. A
// missing file is not an error.
func LoadEnv() error {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load()
}

// DBPathOverride returns the database path from the environment, or ""
// when unset.
func DBPathOverride() string {
	return os.Getenv(EnvDBPath)
}

// LogLevel returns the configured log level name, defaulting to "info".
func LogLevel() string {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		return lvl
	}
	return "info"
}

// Dir returns the reviewlens config directory, respecting
// XDG_CONFIG_HOME. Defaults to ~/.config/reviewlens.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "reviewlens"), nil
}
