package main

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "APP_ENV", "STORE_BASE_URL", "STORE_API_TOKEN", "STORE_TIMEOUT",
		"REQUEST_TIMEOUT", "DEFAULT_CART_ID", "DEFAULT_USER_ID", "REDIS_URL",
		"CART_LOCK_TTL", "IDEMPOTENCY_TTL", "CART_EVENTS_TOPIC_ARN",
		"RATE_LIMIT_PER_MINUTE", "RATE_LIMIT_BURST", "CORS_ALLOWED_ORIGINS",
		"CLOUDWATCH_ENABLED", "AWS_USE_SECRETS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8087", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "https://dummyjson.com", cfg.StoreBaseURL)
	assert.Equal(t, 10*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 1, cfg.DefaultCartID)
	assert.Equal(t, 1, cfg.DefaultUserID)
	assert.Equal(t, 30*time.Second, cfg.CartLockTTL)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 100, cfg.RateLimitPerMinute)
	assert.Equal(t, 50, cfg.RateLimitBurst)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.CloudWatchEnabled)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AWS_USE_SECRETS", "")
	t.Setenv("STORE_BASE_URL", "http://store.internal")
	t.Setenv("STORE_TIMEOUT", "3s")
	t.Setenv("DEFAULT_CART_ID", "7")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example/, https://b.example")
	t.Setenv("CLOUDWATCH_ENABLED", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://store.internal", cfg.StoreBaseURL)
	assert.Equal(t, 3*time.Second, cfg.StoreTimeout)
	assert.Equal(t, 7, cfg.DefaultCartID)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.CloudWatchEnabled)
}

func TestLoadConfig_RejectsBadValues(t *testing.T) {
	t.Setenv("AWS_USE_SECRETS", "")

	t.Setenv("DEFAULT_USER_ID", "0")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("DEFAULT_USER_ID", "")
	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_CartLockOutlivesStoreCalls(t *testing.T) {
	t.Setenv("AWS_USE_SECRETS", "")
	t.Setenv("STORE_TIMEOUT", "10s")

	t.Setenv("CART_LOCK_TTL", "10s")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CART_LOCK_TTL")

	t.Setenv("CART_LOCK_TTL", "25s")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 25*time.Second, cfg.CartLockTTL)

	t.Setenv("STORE_TIMEOUT", "2s")
	t.Setenv("CART_LOCK_TTL", "9s")
	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9*time.Second, cfg.CartLockTTL)
}

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestApplySecrets(t *testing.T) {
	cfg := &Config{StoreAPIToken: "from-env"}
	applySecrets(context.Background(), cfg, fakeSecrets{})
	assert.Equal(t, "from-env", cfg.StoreAPIToken)

	applySecrets(context.Background(), cfg, fakeSecrets{storeTokenSecret: "from-secrets"})
	assert.Equal(t, "from-secrets", cfg.StoreAPIToken)
}

func TestCorsConfig(t *testing.T) {
	all := corsConfig([]string{"*"})
	assert.True(t, all.AllowAllOrigins)
	assert.False(t, all.AllowCredentials)
	assert.NoError(t, all.Validate())

	listed := corsConfig([]string{"http://localhost:3000"})
	assert.False(t, listed.AllowAllOrigins)
	assert.True(t, listed.AllowCredentials)
	assert.NoError(t, listed.Validate())
}
