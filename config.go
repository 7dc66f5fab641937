package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	aws_pkg "storefront-service/pkg/aws"
)

// storeTokenSecret is the Secrets Manager secret holding the store API token.
const storeTokenSecret = "storefront/STORE_API_TOKEN"

// A cart mutation makes two store calls while holding the cart lock.
const lockTTLMargin = 5 * time.Second

// Config holds all configuration for the storefront service.
type Config struct {
	Port string
	Env  string

	StoreBaseURL   string
	StoreAPIToken  string
	StoreTimeout   time.Duration
	RequestTimeout time.Duration

	DefaultCartID int
	DefaultUserID int

	RedisURL       string
	CartLockTTL    time.Duration
	IdempotencyTTL time.Duration

	// SNS topic for cart events
	CartEventsTopicARN string

	RateLimitPerMinute int
	RateLimitBurst     int
	CORSAllowedOrigins []string

	CloudWatchEnabled bool
	UseSecrets        bool
}

type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// LoadConfig reads configuration from environment variables with optional
// Secrets Manager override of the store token.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:               getEnv("PORT", "8087"),
		Env:                getEnv("APP_ENV", "development"),
		StoreBaseURL:       getEnv("STORE_BASE_URL", "https://dummyjson.com"),
		StoreAPIToken:      os.Getenv("STORE_API_TOKEN"),
		RedisURL:           os.Getenv("REDIS_URL"),
		CartEventsTopicARN: os.Getenv("CART_EVENTS_TOPIC_ARN"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		CloudWatchEnabled:  os.Getenv("CLOUDWATCH_ENABLED") == "true",
		UseSecrets:         os.Getenv("AWS_USE_SECRETS") == "true",
	}

	var err error
	if cfg.StoreTimeout, err = getDuration("STORE_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.CartLockTTL, err = getDuration("CART_LOCK_TTL", 30*time.Second); err != nil {
		return nil, err
	}
	if minTTL := 2*cfg.StoreTimeout + lockTTLMargin; cfg.CartLockTTL < minTTL {
		return nil, fmt.Errorf("invalid CART_LOCK_TTL %s: must be at least %s (2x STORE_TIMEOUT + %s)", cfg.CartLockTTL, minTTL, lockTTLMargin)
	}
	if cfg.IdempotencyTTL, err = getDuration("IDEMPOTENCY_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.DefaultCartID, err = getPositiveInt("DEFAULT_CART_ID", 1); err != nil {
		return nil, err
	}
	if cfg.DefaultUserID, err = getPositiveInt("DEFAULT_USER_ID", 1); err != nil {
		return nil, err
	}
	if cfg.RateLimitPerMinute, err = getPositiveInt("RATE_LIMIT_PER_MINUTE", 100); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = getPositiveInt("RATE_LIMIT_BURST", 50); err != nil {
		return nil, err
	}

	if cfg.UseSecrets {
		if awsCfg, err := aws_pkg.LoadAWSConfig(context.Background()); err == nil {
			applySecrets(context.Background(), cfg, aws_pkg.NewSecretsClient(awsCfg))
		}
	}

	if cfg.StoreBaseURL == "" {
		return nil, fmt.Errorf("STORE_BASE_URL is required")
	}
	return cfg, nil
}

// applySecrets overrides values found in Secrets Manager. Missing secrets
// keep the environment values.
func applySecrets(ctx context.Context, cfg *Config, sm secretGetter) {
	if token, err := sm.GetSecret(ctx, storeTokenSecret); err == nil && token != "" {
		cfg.StoreAPIToken = token
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, val)
	}
	return d, nil
}

func getPositiveInt(key string, fallback int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive integer", key, val)
	}
	return n, nil
}

func splitList(val string) []string {
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(item), "/")); item != "" {
			out = append(out, item)
		}
	}
	return out
}
