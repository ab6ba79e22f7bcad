package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays values from the process environment. A .env file in the
// working directory is loaded first when present; variables already set in
// the environment win over it.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	config.HTTPAddr = getEnv("HTTP_ADDR", config.HTTPAddr)
	if port := os.Getenv("PORT"); port != "" && os.Getenv("HTTP_ADDR") == "" {
		config.HTTPAddr = ":" + port
	}
	config.DatabaseDSN = getEnv("DATABASE_URL", config.DatabaseDSN)
	config.DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", config.DBMaxOpenConns)
	config.DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", config.DBMaxIdleConns)
	config.SessionSecret = getEnv("SESSION_SECRET", config.SessionSecret)
	config.SessionTTL = getEnvDuration("SESSION_TTL", config.SessionTTL)
	config.SessionPurgeSchedule = getEnv("SESSION_PURGE_SCHEDULE", config.SessionPurgeSchedule)
	config.Environment = getEnv("APP_ENV", config.Environment)
	config.RedisAddr = getEnv("REDIS_ADDR", config.RedisAddr)
	config.RedisPassword = getEnv("REDIS_PASSWORD", config.RedisPassword)
	config.RedisDB = getEnvInt("REDIS_DB", config.RedisDB)
	config.CacheTTL = getEnvDuration("CACHE_TTL", config.CacheTTL)
	config.ShutdownTimeout = getEnvDuration("SHUTDOWN_TIMEOUT", config.ShutdownTimeout)
	config.LogLevel = getEnv("LOG_LEVEL", config.LogLevel)
	config.LogFormat = getEnv("LOG_FORMAT", config.LogFormat)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
