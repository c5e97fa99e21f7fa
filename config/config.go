package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

var (
	PORT           string
	DB_URL         string
	SESSION_SECRET string

	UPSTREAM_API_URL string
	UPSTREAM_TIMEOUT time.Duration

	CORS_ORIGIN string
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv("DB_URL")
	SESSION_SECRET = mustEnv("SESSION_SECRET")

	UPSTREAM_API_URL = mustEnv("UPSTREAM_API_URL")
	UPSTREAM_TIMEOUT = getDuration("UPSTREAM_TIMEOUT", 10*time.Second)

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "*")
}

func mustEnv(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("Missing required environment variable: %s", key)
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Fatalf("Invalid duration for %s: %q", key, value)
	}
	return d
}
