package service

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// slidingWindowScript records one attempt per call in a sorted set scored by
// unix milliseconds. It returns {1, 0} when the attempt fits and
// {0, retryAfterMs} when the window is full.
var slidingWindowScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

if redis.call('ZCARD', key) >= limit then
    local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')
    local retry = window
    if #oldest >= 2 then
        retry = tonumber(oldest[2]) + window - now
    end
    return {0, retry}
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window)
return {1, 0}
`)

// LoginLimiter throttles login attempts per client IP across all server
// instances. It fails closed: if redis cannot answer, the attempt is denied.
type LoginLimiter struct {
	client redis.Scripter
	limit  int
	window time.Duration
}

func NewLoginLimiter(client redis.Scripter, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, limit: limit, window: window}
}

func loginLimitKey(ip string) string {
	return "ratelimit:login:" + ip
}

// Allow counts one attempt from ip. When denied, retryAfter is how long until
// the oldest attempt leaves the window.
func (l *LoginLimiter) Allow(ctx context.Context, ip string) (allowed bool, retryAfter time.Duration) {
	member := strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + strconv.FormatUint(rand.Uint64(), 36)

	result, err := slidingWindowScript.Run(ctx, l.client,
		[]string{loginLimitKey(ip)},
		time.Now().UnixMilli(),
		l.window.Milliseconds(),
		l.limit,
		member,
	).Int64Slice()
	if err != nil || len(result) != 2 {
		log.Warn().Err(err).Str("ip", ip).Msg("login rate limit check failed, denying attempt")
		return false, l.window
	}

	if result[0] == 1 {
		return true, 0
	}
	return false, time.Duration(result[1]) * time.Millisecond
}
