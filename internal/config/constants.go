package config

import "time"

// Postgres pool.
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
	DBPingTimeout     = 5 * time.Second
)

// HTTP server. WriteTimeout stays unset so booking event streams can stay
// open; ordinary portal requests are bounded by ServerRequestTimeout instead.
const (
	ServerRequestTimeout  = 30 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Expired postgres sessions are swept this often. Redis sessions expire on
// their own.
const CleanupJobInterval = 15 * time.Minute

// LOGIN_RATE_LIMIT attempts are allowed per client IP within this window.
const LoginRateLimitWindow = time.Minute
