// Package config loads process configuration from the environment.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the server needs from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	JWTKey      string
	Env         string // development | production | test
	NATSPort    int
	ClientURL   string
}

// Load reads .env (if present) and assembles the configuration.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:        getEnv("PORT", "3001"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTKey:      getEnv("JWT_KEY", "default-dev-secret-change-me"),
		Env:         getEnv("ENV", "development"),
		NATSPort:    4222,
		ClientURL:   os.Getenv("CLIENT_URL"),
	}

	if p := os.Getenv("NATS_PORT"); p != "" {
		if port, err := strconv.Atoi(p); err == nil {
			cfg.NATSPort = port
		}
	}

	return cfg
}

// Production reports whether the server runs in production mode.
func (c Config) Production() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
