package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings read from the environment. Command-line flags
// override individual fields after FromEnv.
type Config struct {
	// DBPath is the result log location. Empty means DefaultDBPath.
	DBPath string `env:"QUIZBOX_DB"`

	// ExportDir receives exported result files.
	ExportDir string `env:"QUIZBOX_EXPORT_DIR" envDefault:"."`

	// Dataset preselects a dataset id or file for the TUI.
	Dataset string `env:"QUIZBOX_DATASET"`

	// NoHistory disables the result log.
	NoHistory bool `env:"QUIZBOX_NO_HISTORY"`

	// HistoryKeep caps the stored results; 0 keeps everything.
	HistoryKeep int `env:"QUIZBOX_HISTORY_KEEP" envDefault:"500"`
}

// FromEnv loads configuration from environment variables.
func FromEnv() (Config, error) {
	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.HistoryKeep < 0 {
		return Config{}, fmt.Errorf("parse env: QUIZBOX_HISTORY_KEEP must not be negative, got %d", c.HistoryKeep)
	}
	return c, nil
}

// ResolveDBPath returns DBPath, falling back to DefaultDBPath, and makes
// sure the parent directory exists.
func (c Config) ResolveDBPath() (string, error) {
	if c.DBPath != "" {
		return c.DBPath, EnsureDir(c.DBPath)
	}
	return DefaultDBPath()
}

// DefaultDBPath resolves the database file path:
// 1. $XDG_DATA_HOME/quizbox/quizbox.db
// 2. ~/.local/share/quizbox/quizbox.db
func DefaultDBPath() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizbox", "quizbox.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
