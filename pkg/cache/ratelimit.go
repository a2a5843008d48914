package cache

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/pkg/logger"
	"github.com/tair/storefront/pkg/response"
)

const rateLimitPrefix = "storefront:ratelimit:"

// RateLimiter limits requests per client IP with a sliding window kept in Redis
type RateLimiter struct {
	client      *redis.Client
	maxRequests int
	window      time.Duration
}

// NewRateLimiter creates a rate limiter. A nil client or a non-positive
// maxRequests disables it.
func NewRateLimiter(client *redis.Client, maxRequests int, window time.Duration) *RateLimiter {
	return &RateLimiter{client: client, maxRequests: maxRequests, window: window}
}

// Enabled reports whether requests are limited
func (rl *RateLimiter) Enabled() bool {
	return rl != nil && rl.client != nil && rl.maxRequests > 0
}

// Middleware rejects requests over the limit with 429. Redis errors let the
// request through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	if !rl.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identifier := clientIP(r)

		allowed, remaining, resetTime, err := rl.checkLimit(r.Context(), identifier)
		if err != nil {
			logger.Error(r.Context()).
				Err(err).
				Str("identifier", identifier).
				Msg("Rate limiter error")
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.maxRequests))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

		if !allowed {
			logger.Warn(r.Context()).
				Str("identifier", identifier).
				Int("limit", rl.maxRequests).
				Msg("Rate limit exceeded")

			w.Header().Set("Retry-After", strconv.Itoa(int(rl.window.Seconds())))
			response.Detail(w, http.StatusTooManyRequests,
				fmt.Sprintf("Too many requests. Try again in %v", time.Until(resetTime).Round(time.Second)))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) checkLimit(ctx context.Context, identifier string) (bool, int, time.Time, error) {
	key := rateLimitPrefix + identifier
	now := time.Now()
	windowStart := now.Add(-rl.window)

	pipe := rl.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	countCmd := pipe.ZCard(ctx, key)
	pipe.ZAdd(ctx, key, redis.Z{
		Score:  float64(now.UnixNano()),
		Member: now.UnixNano(),
	})
	pipe.Expire(ctx, key, rl.window+time.Minute)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := countCmd.Val()
	return limitResult(count, rl.maxRequests, now.Add(rl.window))
}

// limitResult decides on a request given how many requests were already
// seen in the window
func limitResult(seen int64, maxRequests int, resetTime time.Time) (bool, int, time.Time, error) {
	remaining := maxRequests - int(seen) - 1
	if remaining < 0 {
		remaining = 0
	}
	return seen < int64(maxRequests), remaining, resetTime, nil
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
