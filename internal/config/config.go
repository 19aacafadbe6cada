package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/pokedex/internal/dex"
	"github.com/rshade/pokedex/internal/pokeapi"
)

// ErrInvalidConfig is returned when a configuration value is out of range or
// cannot be parsed.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrConfigExists is returned by WriteDefault when the file is already there.
var ErrConfigExists = errors.New("configuration file already exists, use --force to overwrite")

// Defaults.
const (
	DefaultErrorDisplay   = 2 * time.Second
	DefaultAnomalyDisplay = 3 * time.Second
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "console"
)

// Environment variable names.
const (
	EnvHome      = "POKEDEX_HOME"
	EnvAPIURL    = "POKEDEX_API_URL"
	EnvMaxID     = "POKEDEX_MAX_ID"
	EnvStateFile = "POKEDEX_STATE_FILE"
	EnvLogLevel  = "POKEDEX_LOG_LEVEL"
	EnvLogFormat = "POKEDEX_LOG_FORMAT"
)

// Config is the on-disk configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Dex     DexConfig     `yaml:"dex"`
	State   StateConfig   `yaml:"state"`
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`

	configPath string
}

// APIConfig locates the upstream API.
type APIConfig struct {
	BaseURL        string        `yaml:"base_url"`
	CryURLTemplate string        `yaml:"cry_url_template"`
	Timeout        time.Duration `yaml:"timeout"`
}

// DexConfig controls the viewer.
type DexConfig struct {
	MaxID          int           `yaml:"max_id"`
	AnomalyChance  float64       `yaml:"anomaly_chance"`
	ErrorDisplay   time.Duration `yaml:"error_display"`
	AnomalyDisplay time.Duration `yaml:"anomaly_display"`
}

// StateConfig locates the durable key-value store.
type StateConfig struct {
	File     string `yaml:"file"`
	Disabled bool   `yaml:"disabled"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
	// Caller adds the source file and line to every event.
	Caller bool `yaml:"caller"`
}

// MetricsConfig controls the Prometheus endpoint. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the built-in configuration rooted at the config directory.
func Default() *Config {
	dir, err := GetConfigDir()
	if err != nil {
		dir = ".pokedex"
	}
	return &Config{
		API: APIConfig{
			BaseURL:        pokeapi.DefaultBaseURL,
			CryURLTemplate: dex.DefaultCryURLTemplate,
			Timeout:        pokeapi.DefaultTimeout,
		},
		Dex: DexConfig{
			MaxID:          dex.DefaultMaxID,
			AnomalyChance:  dex.DefaultAnomalyChance,
			ErrorDisplay:   DefaultErrorDisplay,
			AnomalyDisplay: DefaultAnomalyDisplay,
		},
		State: StateConfig{
			File: filepath.Join(dir, stateFileName),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			File:   filepath.Join(dir, logDirName, logFileName),
		},
		configPath: filepath.Join(dir, configFileName),
	}
}

// Load builds a Config from defaults, the YAML file at path (the default
// location when empty) and environment overrides, then validates it. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		cfg.configPath = path
	}

	if _, err := os.Stat(cfg.configPath); err == nil {
		if mergeErr := ShallowMergeYAML(cfg, cfg.configPath); mergeErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, mergeErr)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("cannot access config path %s: %w", cfg.configPath, err)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overlays POKEDEX_* environment variables.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvMaxID); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, EnvMaxID, v)
		}
		c.Dex.MaxID = n
	}
	if v := os.Getenv(EnvStateFile); v != "" {
		c.State.File = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate reports the first out-of-range value.
func (c *Config) Validate() error {
	switch {
	case c.API.BaseURL == "":
		return fmt.Errorf("%w: api.base_url is empty", ErrInvalidConfig)
	case c.API.Timeout <= 0:
		return fmt.Errorf("%w: api.timeout must be positive, got %s", ErrInvalidConfig, c.API.Timeout)
	case c.Dex.MaxID < 1:
		return fmt.Errorf("%w: dex.max_id must be at least 1, got %d", ErrInvalidConfig, c.Dex.MaxID)
	case c.Dex.AnomalyChance < 0 || c.Dex.AnomalyChance > 1:
		return fmt.Errorf("%w: dex.anomaly_chance must be within [0, 1], got %g", ErrInvalidConfig, c.Dex.AnomalyChance)
	case c.Dex.ErrorDisplay <= 0 || c.Dex.AnomalyDisplay <= 0:
		return fmt.Errorf("%w: dex display durations must be positive", ErrInvalidConfig)
	case c.Logging.Format != "" && c.Logging.Format != "console" && c.Logging.Format != "json":
		return fmt.Errorf("%w: logging.format must be console or json, got %q", ErrInvalidConfig, c.Logging.Format)
	}
	return nil
}

// ConfigPath returns the file this configuration is read from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the file Save writes to.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling configuration: %w", err)
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(c.configPath), 0o750); mkdirErr != nil {
		return fmt.Errorf("creating config directory: %w", mkdirErr)
	}
	if writeErr := os.WriteFile(c.configPath, data, 0o600); writeErr != nil {
		return fmt.Errorf("writing configuration: %w", writeErr)
	}
	return nil
}

// WriteDefault saves the default configuration to path (the default location
// when empty). It refuses to overwrite an existing file unless force is set.
func WriteDefault(path string, force bool) (string, error) {
	cfg := Default()
	if path != "" {
		cfg.configPath = path
	}

	if !force {
		_, err := os.Stat(cfg.configPath)
		if err == nil {
			return cfg.configPath, ErrConfigExists
		}
		if !os.IsNotExist(err) {
			return cfg.configPath, fmt.Errorf("cannot access config path %s: %w", cfg.configPath, err)
		}
	}

	return cfg.configPath, cfg.Save()
}
