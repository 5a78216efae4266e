package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
	StoreRedis  = "redis"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Lesson backend
	BackendURL     string        // e.g. "http://localhost:8000"
	BackendTimeout time.Duration // 0 means no client-side timeout

	// Sessions
	SessionStore  string // memory | sqlite | redis
	SessionDB     string // sqlite file path
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	MaxUploadBytes int64
	WorkerCount    int
	WorkerQueue    int
	SanitizeHTML   bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	cfg := &Config{
		ServerAddress:   mustGetenv("SERVER_ADDRESS"),
		ShutdownTimeout: mustGetDuration("SHUTDOWN_TIMEOUT"),
		BackendURL:      getenvDefault("BACKEND_URL", "http://localhost:8000"),
		BackendTimeout:  getDurationDefault("BACKEND_TIMEOUT", 0),
		SessionStore:    getenvDefault("SESSION_STORE", StoreMemory),
		SessionDB:       getenvDefault("SESSION_DB", "lessongenie.db"),
		RedisAddr:       getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		RedisDB:         getIntDefault("REDIS_DB", 0),
		SessionTTL:      getDurationDefault("SESSION_TTL", 24*time.Hour),
		MaxUploadBytes:  int64(getIntDefault("MAX_UPLOAD_BYTES", 32<<20)),
		WorkerCount:     getIntDefault("WORKER_COUNT", 4),
		WorkerQueue:     getIntDefault("WORKER_QUEUE", 64),
		SanitizeHTML:    getBoolDefault("SANITIZE_HTML", true),
	}

	switch cfg.SessionStore {
	case StoreMemory, StoreSQLite, StoreRedis:
	default:
		log.Fatalf("config: SESSION_STORE=%q must be one of memory, sqlite, redis", cfg.SessionStore)
	}
	return cfg
}

func mustGetenv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	return v
}

func mustGetDuration(k string) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		log.Fatalf("config: required environment variable %s is not set", k)
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func getDurationDefault(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid duration: %v", k, v, err)
	}
	return d
}

func getIntDefault(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid integer: %v", k, v, err)
	}
	return n
}

func getBoolDefault(k string, fallback bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Fatalf("config: %s=%q is not a valid boolean: %v", k, v, err)
	}
	return b
}
