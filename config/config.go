// Package config loads the application configuration from environment
// variables. The fetch settings are threaded explicitly into the fetcher
// and analyzer instead of living in package-level defaults.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

// Config holds the application configuration.
type Config struct {
	Port     string
	GinMode  string
	LogLevel string
	DataDir  string

	Fetch      FetchConfig
	ImageFetch ImageFetchConfig

	RateLimitRPS   float64
	RateLimitBurst int
}

// FetchConfig bounds a single page retrieval.
type FetchConfig struct {
	Timeout      time.Duration
	UserAgent    string
	MaxBodyBytes int64
	MaxRedirects int
}

// ImageFetchConfig bounds the deep image analysis fan-out.
type ImageFetchConfig struct {
	Concurrency int64
	Timeout     time.Duration
}

// Load reads .env files (development first) and then the environment,
// falling back to defaults.
func Load() *Config {
	if err := godotenv.Load(".env.development"); err != nil {
		_ = godotenv.Load()
	}

	return &Config{
		Port:     getEnv("PORT", "8082"),
		GinMode:  getEnv("GIN_MODE", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		DataDir:  getEnv("DATA_DIR", "./data"),
		Fetch: FetchConfig{
			Timeout:      getEnvAsSeconds("FETCH_TIMEOUT_SECONDS", 10),
			UserAgent:    getEnv("FETCH_USER_AGENT", defaultUserAgent),
			MaxBodyBytes: getEnvAsInt64("FETCH_MAX_BODY_BYTES", 10*1024*1024),
			MaxRedirects: getEnvAsInt("FETCH_MAX_REDIRECTS", 5),
		},
		ImageFetch: ImageFetchConfig{
			Concurrency: int64(getEnvAsInt("IMAGE_FETCH_CONCURRENCY", 8)),
			Timeout:     getEnvAsSeconds("IMAGE_FETCH_TIMEOUT_SECONDS", 5),
		},
		RateLimitRPS:   getEnvAsFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst: getEnvAsInt("RATE_LIMIT_BURST", 5),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

func getEnvAsInt64(key string, fallback int64) int64 {
	if value, err := strconv.ParseInt(getEnv(key, ""), 10, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvAsInt(key, fallback)) * time.Second
}
