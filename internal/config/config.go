package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/constants"
)

// Config holds runtime settings. Values are resolved in order: defaults,
// optional YAML file, environment variables, then command-line flags
// (applied by the caller).
type Config struct {
	// DB is a SQLite file path, a postgres:// URL, or "keyring"
	DB          string `yaml:"db"`
	UserID      string `yaml:"user_id"`
	WindowDays  int    `yaml:"window_days"`
	Concurrency int    `yaml:"concurrency"`
	Debug       bool   `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DB:          constants.DefaultConfigPath,
		UserID:      constants.DefaultUserID,
		WindowDays:  constants.DefaultWindowDays,
		Concurrency: constants.DefaultConcurrency,
	}
}

// Load builds a Config from defaults, the YAML file at path (or at
// HABITUAL_CONFIG_PATH when path is empty) and environment overrides.
// A missing file is only an error when a path was given explicitly.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(constants.EnvConfigPath)
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if db := os.Getenv(constants.EnvDB); db != "" {
		cfg.DB = db
	}
	if user := os.Getenv(constants.EnvUser); user != "" {
		cfg.UserID = user
	}
	if days := os.Getenv(constants.EnvWindowDays); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", constants.EnvWindowDays, err)
		}
		cfg.WindowDays = n
	}
	if debug := os.Getenv(constants.EnvDebug); debug != "" {
		b, err := strconv.ParseBool(debug)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", constants.EnvDebug, err)
		}
		cfg.Debug = b
	}

	return cfg, cfg.Validate()
}

func loadFromFile(path string, cfg *Config) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(expanded)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DB) == "" {
		return errors.New("db must not be empty")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id must not be empty")
	}
	if c.WindowDays < 0 {
		return fmt.Errorf("window_days must not be negative, got %d", c.WindowDays)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// IsPostgres reports whether DB names a PostgreSQL database, directly or
// through the keyring.
func (c Config) IsPostgres() bool {
	return c.DB == constants.DBFromKeyring ||
		strings.HasPrefix(c.DB, "postgres://") || strings.HasPrefix(c.DB, "postgresql://")
}

// DataDir is the directory holding logs and, for SQLite, the database file.
func (c Config) DataDir() (string, error) {
	if c.IsPostgres() {
		return ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	}
	path, err := ExpandPath(c.DB)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
