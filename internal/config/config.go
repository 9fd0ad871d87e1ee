package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Store drivers understood by StoreConfig.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config groups the application settings read from the environment.
type Config struct {
	App      AppConfig
	Store    StoreConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig holds general application settings.
type AppConfig struct {
	Env      string // development -> console logs; anything else -> JSON
	LogLevel string
	Port     string // listen address passed to fiber, e.g. ":8080"
}

// StoreConfig selects and configures the product store.
type StoreConfig struct {
	Driver     string
	SQLitePath string
	DSN        string // postgres connection string
}

// RabbitMQConfig configures product event publishing. An empty URL disables it.
type RabbitMQConfig struct {
	URL string
}

// Load reads the configuration from environment variables, falling back to
// defaults for anything unset.
func Load() (*Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (*Config, error) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("SQLITE_PATH", "inventory.db")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=inventory port=5432 sslmode=disable")
	v.SetDefault("RABBITMQ_URL", "")
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: strings.ToLower(v.GetString("LOG_LEVEL")),
			Port:     v.GetString("APP_PORT"),
		},
		Store: StoreConfig{
			Driver:     strings.ToLower(v.GetString("STORE_DRIVER")),
			SQLitePath: v.GetString("SQLITE_PATH"),
			DSN:        v.GetString("DATABASE_DSN"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
	}

	switch cfg.Store.Driver {
	case DriverMemory, DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
	return cfg, nil
}
