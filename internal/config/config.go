package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Upstream base URLs
	CatalogURL      string
	OrderServiceURL string
	APIBase         string

	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	RedisPassword string
}

// Load reads the environment, with a .env file as optional local override.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: .env not loaded: %v", err)
	}

	return Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		RequestTimeout:  parseDuration(getEnv("REQUEST_TIMEOUT", "30s"), 30*time.Second),
		ShutdownTimeout: parseDuration(getEnv("SHUTDOWN_TIMEOUT", "10s"), 10*time.Second),

		CatalogURL:      getEnv("CATALOG_URL", "http://localhost:9000"),
		OrderServiceURL: getEnv("ORDER_SERVICE_URL", "http://localhost:9001"),
		APIBase:         getEnv("API_BASE", "http://localhost:9002"),

		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB_NAME", "shopfront"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
