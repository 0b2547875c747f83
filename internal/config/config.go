package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress    string
	BackendURL       string
	BackendAnonKey   string
	BackendJWTSecret string
	DataDir          string
	SeedFile         string
	RefreshSpec      string
	ChatPollInterval time.Duration
	RemoteTimeout    time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	return &Config{
		ServerAddress:    getEnv("SERVER_ADDRESS", ":8080"),
		BackendURL:       getEnv("BACKEND_URL", "http://localhost:54321"),
		BackendAnonKey:   getEnv("BACKEND_ANON_KEY", ""),
		BackendJWTSecret: getEnv("BACKEND_JWT_SECRET", ""),
		DataDir:          getEnv("DATA_DIR", "./data"),
		SeedFile:         getEnv("SEED_FILE", ""),
		RefreshSpec:      getEnv("REFRESH_CRON", "@every 5m"),
		ChatPollInterval: getSeconds("CHAT_POLL_INTERVAL_SECONDS", 3),
		RemoteTimeout:    getSeconds("REMOTE_TIMEOUT_SECONDS", 30),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getSeconds(key string, defaultSeconds int64) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
		log.Printf("Warning: invalid %s value %q, using default", key, value)
	}
	return time.Duration(defaultSeconds) * time.Second
}
