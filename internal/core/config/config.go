// Package config loads application configuration from the environment.
package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	// DatabaseURL is the PostgreSQL connection string
	DatabaseURL string

	// Port the HTTP server listens on
	Port string

	// AppEnv: "development" or "production"
	AppEnv string

	// LogLevel: debug, info, warn, error
	LogLevel string

	// DBMaxConns limits the pgx pool size
	DBMaxConns int32

	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration
}

// IsDevelopment reports whether the app runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	viper.SetDefault("DATABASE_URL", "postgres://localhost:5432/quipu?sslmode=disable")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SHUTDOWN_TIMEOUT", "15s")

	viper.AutomaticEnv()

	shutdownTimeout, err := time.ParseDuration(viper.GetString("SHUTDOWN_TIMEOUT"))
	if err != nil {
		shutdownTimeout = 15 * time.Second
	}

	return &Config{
		DatabaseURL:     viper.GetString("DATABASE_URL"),
		Port:            viper.GetString("PORT"),
		AppEnv:          viper.GetString("APP_ENV"),
		LogLevel:        viper.GetString("LOG_LEVEL"),
		DBMaxConns:      viper.GetInt32("DB_MAX_CONNS"),
		ShutdownTimeout: shutdownTimeout,
	}, nil
}
