// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Storage backend names accepted by STORAGE_BACKEND.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)

// Config holds application configuration values loaded from file or
// environment variables.
type Config struct {
	SaveEnabled    bool   `mapstructure:"SAVE_ENABLED"`
	StorageBackend string `mapstructure:"STORAGE_BACKEND"`
	SQLitePath     string `mapstructure:"SQLITE_PATH"`
	PostgresDSN    string `mapstructure:"POSTGRES_DSN"`
	RedisURL       string `mapstructure:"REDIS_URL"`
	PageSize       int    `mapstructure:"PAGE_SIZE"`
	SeedDemoData   bool   `mapstructure:"SEED_DEMO_DATA"`
	Env            string `mapstructure:"APP_ENV"`
}

// LoadConfig loads application configuration from file and environment
// variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AutomaticEnv()

	// The config file is optional; env vars and defaults cover everything.
	_ = viper.ReadInConfig()

	viper.SetDefault("SAVE_ENABLED", false)
	viper.SetDefault("STORAGE_BACKEND", StorageMemory)
	viper.SetDefault("SQLITE_PATH", "grandline.db")
	viper.SetDefault("POSTGRES_DSN", "")
	viper.SetDefault("REDIS_URL", "localhost:6379")
	viper.SetDefault("PAGE_SIZE", 5)
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("APP_ENV", "development")

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate ensures that configuration values are present and consistent.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case StorageMemory, StorageSQLite, StoragePostgres, StorageRedis:
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}

	if c.StorageBackend == StorageSQLite && c.SQLitePath == "" {
		return errors.New("SQLITE_PATH is required for the sqlite backend")
	}
	if c.StorageBackend == StoragePostgres && c.PostgresDSN == "" {
		return errors.New("POSTGRES_DSN is required for the postgres backend")
	}
	if c.StorageBackend == StorageRedis && c.RedisURL == "" {
		return errors.New("REDIS_URL is required for the redis backend")
	}

	if c.PageSize <= 0 {
		return errors.New("PAGE_SIZE must be positive")
	}

	return nil
}
