package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Auth0
	Auth0Domain   string
	Auth0Audience string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Redis dashboard cache (disabled when RedisURL is empty)
	RedisURL          string
	DashboardCacheTTL time.Duration

	// Background status refresh
	StatusRefreshInterval time.Duration

	// Per API token request quota
	APITokenRequestsPerMinute int
	APITokenBurst             int

	// S3 policy document storage
	S3 S3Config
}

// S3Config holds AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // Optional: for MinIO/LocalStack local dev
}

// Enabled reports whether enough is configured to talk to a bucket
func (s S3Config) Enabled() bool {
	return s.Bucket != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cacheTTL, err := getDuration("DASHBOARD_CACHE_TTL", time.Minute)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := getDuration("STATUS_REFRESH_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}

	perMinute, err := getInt("API_TOKEN_REQUESTS_PER_MINUTE", 100)
	if err != nil {
		return nil, err
	}
	burst, err := getInt("API_TOKEN_BURST", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		DatabaseURL:               getEnv("DATABASE_URL", ""),
		Auth0Domain:               getEnv("AUTH0_DOMAIN", ""),
		Auth0Audience:             getEnv("AUTH0_AUDIENCE", ""),
		Port:                      getEnv("PORT", "8080"),
		CORSOrigins:               strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:                       getEnv("ENV", "development"),
		RedisURL:                  getEnv("REDIS_URL", ""),
		DashboardCacheTTL:         cacheTTL,
		StatusRefreshInterval:     refreshInterval,
		APITokenRequestsPerMinute: perMinute,
		APITokenBurst:             burst,
		S3: S3Config{
			Region:          getEnv("S3_REGION", "ap-south-1"),
			Bucket:          getEnv("S3_BUCKET", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth0Domain == "" {
		return fmt.Errorf("AUTH0_DOMAIN is required")
	}
	if c.Auth0Audience == "" {
		return fmt.Errorf("AUTH0_AUDIENCE is required")
	}
	if c.DashboardCacheTTL <= 0 {
		return fmt.Errorf("DASHBOARD_CACHE_TTL must be positive")
	}
	if c.StatusRefreshInterval <= 0 {
		return fmt.Errorf("STATUS_REFRESH_INTERVAL must be positive")
	}
	if c.APITokenRequestsPerMinute <= 0 || c.APITokenBurst <= 0 {
		return fmt.Errorf("API_TOKEN_REQUESTS_PER_MINUTE and API_TOKEN_BURST must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration like 60s or 1h: %w", key, err)
	}
	return d, nil
}
