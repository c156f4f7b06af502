package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RateLimiterConfig is a fixed-window request budget, keyed per client IP.
type RateLimiterConfig struct {
	MaxRequests int
	Window      time.Duration
	KeyPrefix   string
}

// RateLimiter throttles OTP-issuing endpoints against brute-force abuse.
// State lives in Redis so the budget holds across replicas.
type RateLimiter struct {
	rdb *redis.Client
}

func NewRateLimiter(rdb *redis.Client) *RateLimiter {
	return &RateLimiter{rdb: rdb}
}

// Atomic fixed-window counter: first hit sets the key with expiry,
// later hits increment until the limit.
const fixedWindowScript = `
local key = KEYS[1]
local expiry = ARGV[1]
local limit = tonumber(ARGV[2])

local current = redis.call('GET', key)

if current == false then
	redis.call('SET', key, 1, 'EX', expiry)
	return {1, limit - 1}
else
	local count = tonumber(current)
	if count >= limit then
		return {count, 0}
	end

	local new_count = redis.call('INCR', key)
	return {new_count, limit - new_count}
end
`

func (l *RateLimiter) allow(ctx context.Context, key string, cfg RateLimiterConfig) (bool, int, error) {
	result, err := l.rdb.Eval(ctx, fixedWindowScript, []string{key},
		int(cfg.Window.Seconds()), cfg.MaxRequests).Result()
	if err != nil {
		return false, 0, err
	}

	results := result.([]interface{})
	current := results[0].(int64)
	remaining := int(results[1].(int64))

	return current <= int64(cfg.MaxRequests), remaining, nil
}

// Middleware enforces the budget for a route group. Redis failures fail
// open: a broken limiter must not take authentication down with it.
func (l *RateLimiter) Middleware(cfg RateLimiterConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("%s:ip:%s", cfg.KeyPrefix, c.ClientIP())

		allowed, remaining, err := l.allow(c.Request.Context(), key, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
		c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(cfg.Window).Unix()))

		if !allowed {
			log.Info().Str("ip", c.ClientIP()).Str("path", c.Request.URL.Path).Msg("rate limit exceeded")
			c.JSON(http.StatusTooManyRequests, gin.H{
				"success":     false,
				"message":     "Too many OTP requests, please try later.",
				"retry_after": int(cfg.Window.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
