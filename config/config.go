package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port            string
	Env             string
	RedisURL        string
	CatalogURL      string
	CatalogTimeout  time.Duration
	ProcessingDelay time.Duration
}

// Load reads configuration from the environment, with a .env file as an
// optional source. Every value has a working default.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("ENV", "development"),
		RedisURL:        getEnv("REDIS_URL", ""),
		CatalogURL:      getEnv("CATALOG_URL", "https://fakestoreapi.com/products"),
		CatalogTimeout:  getDuration("CATALOG_TIMEOUT", 10*time.Second),
		ProcessingDelay: getDuration("CHECKOUT_PROCESSING_DELAY", 2*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s: %v, using default", key, err)
		return fallback
	}
	return d
}
