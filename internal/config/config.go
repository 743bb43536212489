// Package config loads runtime settings from the environment and the planner
// policy from its YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries everything the server needs at startup.
type Config struct {
	Port        string
	DatabaseURL string
	RedisURL    string
	ORSAPIKey   string
	OCMAPIKey   string
	JWTSecret   string
	TokenTTL    time.Duration
	SeedPath    string
	PolicyPath  string
	LogLevel    string
}

// Load reads .env when present, then assembles the configuration from the
// environment. JWT_SECRET has no default: tokens signed with a guessable
// secret are worthless.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found (using environment variables)")
	}

	cfg := &Config{
		Port:        Get("PORT", "8080"),
		DatabaseURL: Get("DATABASE_URL", "data/tunicharge.db"),
		RedisURL:    os.Getenv("REDIS_URL"),
		ORSAPIKey:   os.Getenv("ORS_API_KEY"),
		OCMAPIKey:   os.Getenv("OCM_API_KEY"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		SeedPath:    Get("SEED_PATH", "data/seeds/chargers.json"),
		PolicyPath:  Get("POLICY_PATH", "data/policy.yaml"),
		LogLevel:    Get("LOG_LEVEL", "info"),
	}

	ttlMinutes, err := GetInt("TOKEN_TTL_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.TokenTTL = time.Duration(ttlMinutes) * time.Minute

	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return nil, errors.New("load config: JWT_SECRET is required")
	}
	return cfg, nil
}

// Get returns the value of the environment variable or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetInt returns the integer value of the environment variable or fallback
// when unset.
func GetInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, raw)
	}
	return v, nil
}
