package config

import (
	"os"
	"strconv"
	"time"
)

// devSecret keeps the demo runnable without any env; never ship real traffic
// on it.
const devSecret = "interviewace-secret-key"

type Config struct {
	Port      string
	JWTSecret string
	RedisAddr string

	PrepDuration   time.Duration
	AnswerDuration time.Duration
}

// Load reads the process configuration from env. Every field has a default;
// the server always starts.
func Load() Config {
	cfg := Config{
		Port:           getenv("PORT", "5000"),
		JWTSecret:      getenv("JWT_SECRET", devSecret),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		PrepDuration:   secondsEnv("PREP_SECONDS", 30),
		AnswerDuration: secondsEnv("ANSWER_SECONDS", 120),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func secondsEnv(key string, fallback int) time.Duration {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return time.Duration(n) * time.Second
		}
	}
	return time.Duration(fallback) * time.Second
}
