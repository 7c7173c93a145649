package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// DatabaseURL selects the PostgreSQL dialect when set. When empty the
	// server runs on the embedded SQLite database at SQLitePath.
	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string

	HTTPPort string `env:"PORT" envDefault:"10000"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// JWTSecret signs issued access tokens.
	JWTSecret string `env:"JWT_SECRET_KEY"`

	// Development surfaces store errors verbatim in responses and runs gin
	// in debug mode.
	Development bool `env:"APP_ENV"`
}

// Fixed local database file used whenever DATABASE_URL is absent or the
// PostgreSQL connection fails at startup.
const defaultSQLitePath = "rhino_dashboard.db"

// LoadConfig loads configuration from environment variables and an optional
// .env file.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	cfg := &Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  defaultSQLitePath,
		HTTPPort:    getEnv("PORT", "10000"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		JWTSecret:   getEnv("JWT_SECRET_KEY", "dev-jwt-secret-change-in-production"),
		Development: os.Getenv("APP_ENV") == "development",
	}

	return cfg, nil
}

// getEnv returns the environment variable value or the default.
func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
