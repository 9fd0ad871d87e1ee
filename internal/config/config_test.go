package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":8080", cfg.App.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "inventory.db", cfg.Store.SQLitePath)
	assert.Empty(t, cfg.RabbitMQ.URL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("RABBITMQ_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.App.Port)
	assert.Equal(t, DriverMemory, cfg.Store.Driver)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQ.URL)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongodb")

	_, err := Load()

	assert.ErrorContains(t, err, "unknown STORE_DRIVER")
}
