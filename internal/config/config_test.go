package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("SessionTTL converts hours to duration", func(t *testing.T) {
		cfg := &Config{SessionTTLHours: 24}
		assert.Equal(t, 24*time.Hour, cfg.SessionTTL())
	})

	t.Run("SessionTTL is zero when disabled", func(t *testing.T) {
		cfg := &Config{SessionTTLHours: 0}
		assert.Zero(t, cfg.SessionTTL())
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SessionSecret:  "0123456789abcdef0123456789abcdef",
			SessionBackend: SessionBackendRedis,
			LoginRateLimit: 10,
			BcryptCost:     12,
			RedisURL:       "rediss://localhost:6379",
		}
	}

	t.Run("accepts valid config", func(t *testing.T) {
		assert.NoError(t, valid().Validate(true))
	})

	t.Run("rejects unknown session backend", func(t *testing.T) {
		cfg := valid()
		cfg.SessionBackend = "memcached"
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("accepts postgres session backend", func(t *testing.T) {
		cfg := valid()
		cfg.SessionBackend = SessionBackendPostgres
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("rejects out of range bcrypt cost", func(t *testing.T) {
		cfg := valid()
		cfg.BcryptCost = 2
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("rejects short secret in production", func(t *testing.T) {
		cfg := valid()
		cfg.SessionSecret = "short"
		assert.Error(t, cfg.Validate(true))
		assert.NoError(t, cfg.Validate(false))
	})
}

func TestLoad(t *testing.T) {
	originalEnv := map[string]string{
		"PORT":              os.Getenv("PORT"),
		"DATABASE_URL":      os.Getenv("DATABASE_URL"),
		"REDIS_URL":         os.Getenv("REDIS_URL"),
		"SESSION_BACKEND":   os.Getenv("SESSION_BACKEND"),
		"SESSION_TTL_HOURS": os.Getenv("SESSION_TTL_HOURS"),
		"LOG_LEVEL":         os.Getenv("LOG_LEVEL"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Unsetenv("PORT")
		os.Unsetenv("SESSION_BACKEND")
		os.Unsetenv("SESSION_TTL_HOURS")
		os.Unsetenv("LOG_LEVEL")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "postgres://localhost/test", cfg.DatabaseURL)
		assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
		assert.Equal(t, SessionBackendRedis, cfg.SessionBackend)
		assert.Equal(t, 0, cfg.SessionTTLHours)
		assert.Equal(t, 10, cfg.LoginRateLimit)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Setenv("REDIS_URL", "redis://localhost:6379")
		os.Setenv("PORT", "3000")
		os.Setenv("SESSION_BACKEND", "postgres")
		os.Setenv("SESSION_TTL_HOURS", "72")
		os.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, SessionBackendPostgres, cfg.SessionBackend)
		assert.Equal(t, 72*time.Hour, cfg.SessionTTL())
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("fails without required DATABASE_URL", func(t *testing.T) {
		os.Unsetenv("DATABASE_URL")
		os.Setenv("REDIS_URL", "redis://localhost:6379")

		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("fails without required REDIS_URL", func(t *testing.T) {
		os.Setenv("DATABASE_URL", "postgres://localhost/test")
		os.Unsetenv("REDIS_URL")

		_, err := Load()
		assert.Error(t, err)
	})
}
