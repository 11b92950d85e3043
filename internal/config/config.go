// Package config loads runtime configuration from the environment.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// ErrNoURL is returned when NIGHTSCOUT_URL is not configured. This is
// the one fatal configuration error: nothing works without an endpoint.
var ErrNoURL = errors.New("NIGHTSCOUT_URL environment variable not set")

// Config holds everything the commands need.
type Config struct {
	NightscoutURL string
	DBPath        string
	LogLevel      string
}

// Load reads configuration from the environment, first merging in a
// .env file next to the working directory when one exists.
func Load() (*Config, error) {
	// Missing .env is fine; explicit environment always wins.
	_ = godotenv.Load()

	url := os.Getenv("NIGHTSCOUT_URL")
	if url == "" {
		return nil, ErrNoURL
	}

	return &Config{
		NightscoutURL: url,
		DBPath:        getEnvOrDefault("CGM_DB_PATH", defaultDBPath()),
		LogLevel:      getEnvOrDefault("CGM_LOG_LEVEL", "warn"),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// defaultDBPath places the cache next to the binary's working data,
// falling back to the current directory.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cgm_data.db"
	}
	return filepath.Join(home, ".cgm", "cgm_data.db")
}
