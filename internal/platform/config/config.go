// Package config loads runtime settings from the environment (and an optional .env file).
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variable names.
const (
	EnvPort           = "PORT"
	EnvDatabaseURL    = "DATABASE_URL"
	EnvJWTSecret      = "JWT_SECRET"
	EnvJWTExpiration  = "JWT_EXPIRATION"
	EnvTokenHeader    = "TOKEN_HEADER"
	EnvAppEnv         = "APP_ENV"
	EnvAllowedOrigins = "ALLOWED_ORIGINS"
	EnvRunMigrations  = "RUN_MIGRATIONS"
	EnvLogLevel       = "LOG_LEVEL"
	EnvLogFile        = "LOG_FILE"
)

const minProductionSecretLength = 32

// Config holds everything the server needs at startup.
type Config struct {
	Port           string
	DatabaseURL    string
	JWTSecret      string
	JWTExpiration  time.Duration
	TokenHeader    string
	Env            string
	AllowedOrigins []string
	RunMigrations  bool
	LogLevel       string
	LogFile        string
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}

// Load reads .env (if present) and the process environment, applies defaults and validates.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault(EnvPort, "5000")
	v.SetDefault(EnvJWTExpiration, "100h")
	v.SetDefault(EnvTokenHeader, "x-auth-token")
	v.SetDefault(EnvAppEnv, "development")
	v.SetDefault(EnvAllowedOrigins, "*")
	v.SetDefault(EnvRunMigrations, true)
	v.SetDefault(EnvLogLevel, "info")

	cfg := &Config{
		Port:           v.GetString(EnvPort),
		DatabaseURL:    v.GetString(EnvDatabaseURL),
		JWTSecret:      v.GetString(EnvJWTSecret),
		JWTExpiration:  v.GetDuration(EnvJWTExpiration),
		TokenHeader:    v.GetString(EnvTokenHeader),
		Env:            v.GetString(EnvAppEnv),
		AllowedOrigins: splitCSV(v.GetString(EnvAllowedOrigins)),
		RunMigrations:  v.GetBool(EnvRunMigrations),
		LogLevel:       v.GetString(EnvLogLevel),
		LogFile:        v.GetString(EnvLogFile),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate ensures required values are present.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTExpiration <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	if c.IsProduction() && len(c.JWTSecret) < minProductionSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d characters in production", minProductionSecretLength)
	}
	return nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if item := strings.TrimSpace(part); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
