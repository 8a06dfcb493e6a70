package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

const (
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

type Config struct {
	Port            int    `env:"PORT" envDefault:"8080"`
	DatabaseURL     string `env:"DATABASE_URL,required"`
	RedisURL        string `env:"REDIS_URL,required"`
	SessionSecret   string `env:"SESSION_SECRET" envDefault:"dev-secret-change-me"`
	SessionBackend  string `env:"SESSION_BACKEND" envDefault:"redis"`
	SessionTTLHours int    `env:"SESSION_TTL_HOURS" envDefault:"0"`
	LoginRateLimit  int    `env:"LOGIN_RATE_LIMIT" envDefault:"10"`
	BcryptCost      int    `env:"BCRYPT_COST" envDefault:"12"`
	RunMigrations   bool   `env:"RUN_MIGRATIONS" envDefault:"false"`
	StaticDir       string `env:"STATIC_DIR" envDefault:"static/site"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
}

// SessionTTL is zero when sessions never expire.
func (c *Config) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 0
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) Validate(isProduction bool) error {
	switch c.SessionBackend {
	case SessionBackendRedis, SessionBackendPostgres:
	default:
		return fmt.Errorf("SESSION_BACKEND must be %q or %q, got %q",
			SessionBackendRedis, SessionBackendPostgres, c.SessionBackend)
	}

	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 31")
	}

	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be positive")
	}

	if isProduction {
		if err := validateSecret("SESSION_SECRET", c.SessionSecret); err != nil {
			return err
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
		if c.SessionTTLHours <= 0 {
			log.Warn().Msg("SESSION_TTL_HOURS is 0 in production: partner sessions never expire")
		}
	}

	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
