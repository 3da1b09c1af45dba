package config

import (
	"os"
	"time"
)

// Config holds the environment-driven settings for the server.
type Config struct {
	Port          string
	DBPath        string
	JWTSecret     string
	JWTExpiration time.Duration
	SecureCookie  bool
}

// Load reads configuration from the environment with local-dev defaults.
func Load() *Config {
	expiration, err := time.ParseDuration(getEnvOrDefault("JWT_EXPIRATION", "24h"))
	if err != nil {
		expiration = 24 * time.Hour
	}

	return &Config{
		Port:          getEnvOrDefault("PORT", "8080"),
		DBPath:        getEnvOrDefault("DB_PATH", "budgetbook.db"),
		JWTSecret:     getEnvOrDefault("JWT_SECRET", "dev_secret_change_in_production"),
		JWTExpiration: expiration,
		SecureCookie:  os.Getenv("SECURE_COOKIE") == "true",
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
