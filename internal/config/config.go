// Package config loads application configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Reporting ReportingConfig
	Log       LogConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL connection options.
type DatabaseConfig struct {
	DSN      string
	MaxConns int32
	MinConns int32
}

// AuthConfig holds JWT settings.
type AuthConfig struct {
	JWTSecret string
}

// ReportingConfig holds snapshot scheduler settings.
type ReportingConfig struct {
	// WeeklyCron and MonthlyCron are standard 5-field cron expressions.
	WeeklyCron  string
	MonthlyCron string
	Enabled     bool
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level       string
	Development bool
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Missing .env files are acceptable when configuration comes from
		// the environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getenvWithDefault("APP_PORT", "8080"),
			ReadTimeout:     getenvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getenvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     getenvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getenvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			DSN:      os.Getenv("DATABASE_URL"),
			MaxConns: int32(getenvInt("DB_MAX_CONNS", 25)),
			MinConns: int32(getenvInt("DB_MIN_CONNS", 5)),
		},
		Auth: AuthConfig{
			JWTSecret: os.Getenv("JWT_SECRET"),
		},
		Reporting: ReportingConfig{
			// Monday 06:00 for the weekly snapshot, first of month 06:30
			// for the monthly one.
			WeeklyCron:  getenvWithDefault("SNAPSHOT_WEEKLY_CRON", "0 6 * * 1"),
			MonthlyCron: getenvWithDefault("SNAPSHOT_MONTHLY_CRON", "30 6 1 * *"),
			Enabled:     getenvWithDefault("SNAPSHOT_ENABLED", "true") == "true",
		},
		Log: LogConfig{
			Level:       getenvWithDefault("LOG_LEVEL", "info"),
			Development: getenvWithDefault("APP_ENV", "development") == "development",
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	if c.Database.DSN == "" {
		return errors.New("DATABASE_URL must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}

	if c.Reporting.Enabled {
		if c.Reporting.WeeklyCron == "" {
			return errors.New("SNAPSHOT_WEEKLY_CRON must be provided")
		}
		if c.Reporting.MonthlyCron == "" {
			return errors.New("SNAPSHOT_MONTHLY_CRON must be provided")
		}
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		var result int
		if _, err := fmt.Sscanf(value, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
