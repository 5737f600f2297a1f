// Package config loads the crm TOML configuration.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/spachava753/crm/contacts"
	"github.com/spachava753/crm/mail"
)

// Default configuration values used when a field is missing in TOML.
const (
	DefaultConfigPath = "crm.toml"
	DefaultSQLitePath = "crm.db"
	DefaultRedisURL   = "redis://127.0.0.1:6379/0"

	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config is the root configuration.
type Config struct {
	Log     LogConfig     `toml:"log"`
	Storage StorageConfig `toml:"storage"`
	SQLite  SQLiteConfig  `toml:"sqlite"`
	Redis   RedisConfig   `toml:"redis"`
	Mail    MailConfig    `toml:"mail"`
}

// LogConfig holds logging level and format (level=info, format=console).
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// StorageConfig selects the storage driver and namespace.
type StorageConfig struct {
	Driver    string `toml:"driver"`
	Namespace string `toml:"namespace"`
}

// SQLiteConfig holds the database file path.
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// RedisConfig holds the Redis connection URL.
type RedisConfig struct {
	URL string `toml:"url"`
}

// MailConfig holds the simulated sender address.
type MailConfig struct {
	From string `toml:"from"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		Storage: StorageConfig{
			Driver:    DriverSQLite,
			Namespace: contacts.DefaultNamespace,
		},
		SQLite: SQLiteConfig{Path: DefaultSQLitePath},
		Redis:  RedisConfig{URL: DefaultRedisURL},
		Mail:   MailConfig{From: mail.DefaultFrom},
	}
}

// Load reads the TOML file at path over the defaults. A missing file yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = DefaultConfigPath
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decoding %s failed: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects an unknown driver or an empty namespace.
func (c Config) Validate() error {
	switch strings.ToLower(c.Storage.Driver) {
	case DriverSQLite:
		if strings.TrimSpace(c.SQLite.Path) == "" {
			return fmt.Errorf("config: sqlite.path is required")
		}
	case DriverRedis:
		if strings.TrimSpace(c.Redis.URL) == "" {
			return fmt.Errorf("config: redis.url is required")
		}
	default:
		return fmt.Errorf("config: unsupported storage driver %q", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.Namespace) == "" {
		return fmt.Errorf("config: storage.namespace is required")
	}
	return nil
}
