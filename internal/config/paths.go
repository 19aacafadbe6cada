package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	configDirName  = ".pokedex"
	configFileName = "config.yaml"
	stateFileName  = "state.json"
	logDirName     = "logs"
	logFileName    = "pokedex.log"
)

// GetConfigDir returns the pokedex configuration directory: $POKEDEX_HOME,
// or ~/.pokedex.
func GetConfigDir() (string, error) {
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, configDirName), nil
}

// EnsureLogDir creates the parent directory of the configured log file. It
// does nothing when no file is configured.
func (c *Config) EnsureLogDir() error {
	if c.Logging.File == "" {
		return nil
	}
	logDir := filepath.Dir(c.Logging.File)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory %q: %w", logDir, err)
	}
	return nil
}
