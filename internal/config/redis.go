package config

import (
	"os"
	"strconv"
)

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
	MaxLen   int64
}

// GetRedisConfig reads the Redis settings from the environment. Values that
// fail to parse fall back to their defaults.
func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvInt("REDIS_DB", 0),
		Stream:   getEnv("REDIS_STREAM", "spray_assessments"),
		MaxLen:   int64(getEnvInt("REDIS_MAX_LEN", 10000)),
	}
}

// Merge overlays the YAML redis section onto the environment settings.
// Environment values win when both are set.
func (r RedisConfig) Merge(c *Config) RedisConfig {
	if c == nil {
		return r
	}
	if os.Getenv("REDIS_ADDR") == "" && c.Redis.Addr != "" {
		r.Addr = c.Redis.Addr
	}
	if os.Getenv("REDIS_PASSWORD") == "" && c.Redis.Password != "" {
		r.Password = c.Redis.Password
	}
	if os.Getenv("REDIS_DB") == "" && c.Redis.DB != 0 {
		r.DB = c.Redis.DB
	}
	if os.Getenv("REDIS_STREAM") == "" && c.Redis.Stream != "" {
		r.Stream = c.Redis.Stream
	}
	if os.Getenv("REDIS_MAX_LEN") == "" && c.Redis.MaxLen != 0 {
		r.MaxLen = c.Redis.MaxLen
	}
	return r
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
