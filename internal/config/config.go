// Package config provides application configuration loaded from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `envconfig:"PORT" default:"8080"`
	ReadTimeout  int    `envconfig:"SERVER_READ_TIMEOUT" default:"15"`  // seconds
	WriteTimeout int    `envconfig:"SERVER_WRITE_TIMEOUT" default:"15"` // seconds
	IdleTimeout  int    `envconfig:"SERVER_IDLE_TIMEOUT" default:"60"`  // seconds
}

// DatabaseConfig holds database connection settings.
// Driver selects sqlite (local development, tests) or postgres.
type DatabaseConfig struct {
	Driver   string `envconfig:"DB_DRIVER" default:"sqlite"`
	Path     string `envconfig:"DB_PATH" default:"ledgerpro.db"` // sqlite only
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"ledgerpro"`
	Password string `envconfig:"DB_PASSWORD" default:"ledgerpro123"`
	DBName   string `envconfig:"DB_NAME" default:"ledgerpro"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev        bool `envconfig:"DEV" default:"true"`
	Migrations bool `envconfig:"MIGRATIONS" default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"console"`
	Output string `envconfig:"LOG_OUTPUT" default:"stdout"`
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// URL returns the PostgreSQL connection string in URL format.
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
