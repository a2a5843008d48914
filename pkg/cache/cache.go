package cache

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/storefront/pkg/logger"
)

const keyPrefix = "storefront:cache:"

// ResponseCache caches successful GET responses in Redis. Any successful
// write request flushes the whole cache, since a basket change also moves
// product stock.
type ResponseCache struct {
	client   *redis.Client
	ttl      time.Duration
	prefixes []string
}

// NewResponseCache creates a response cache for requests under the given
// path prefixes (all paths when none are given). A nil client disables caching.
func NewResponseCache(client *redis.Client, ttl time.Duration, prefixes ...string) *ResponseCache {
	return &ResponseCache{client: client, ttl: ttl, prefixes: prefixes}
}

// NewRedisClient connects to Redis and verifies the connection
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Logger.Info().Str("addr", addr).Msg("Connected to Redis")
	return client, nil
}

// Enabled reports whether responses are cached
func (c *ResponseCache) Enabled() bool {
	return c != nil && c.client != nil
}

// Middleware implements response caching around the router
func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	if !c.Enabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if !c.covers(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method != http.MethodGet {
			rec := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rec, r)
			if rec.statusCode < http.StatusBadRequest {
				if err := c.Invalidate(ctx); err != nil {
					logger.Warn(ctx).Err(err).Msg("Failed to invalidate cache")
				}
			}
			return
		}

		cacheKey := Key(r)
		cached, err := c.client.Get(ctx, cacheKey).Bytes()
		if err == nil && len(cached) > 0 {
			logger.Debug(ctx).
				Str("path", r.URL.Path).
				Str("cache_key", cacheKey).
				Msg("Cache hit")

			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}

		w.Header().Set("X-Cache", "MISS")
		rec := &captureWriter{ResponseWriter: w, statusCode: http.StatusOK, capture: true}
		next.ServeHTTP(rec, r)

		if rec.statusCode != http.StatusOK {
			return
		}
		if err := c.client.Set(ctx, cacheKey, rec.body.Bytes(), c.ttl).Err(); err != nil {
			logger.Warn(ctx).
				Err(err).
				Str("cache_key", cacheKey).
				Msg("Failed to cache response")
			return
		}

		logger.Debug(ctx).
			Str("path", r.URL.Path).
			Str("cache_key", cacheKey).
			Dur("ttl", c.ttl).
			Int("size", rec.body.Len()).
			Msg("Response cached")
	})
}

// Invalidate drops every cached response
func (c *ResponseCache) Invalidate(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}

	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}

	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return err
		}
		logger.Debug(ctx).Int("count", len(keys)).Msg("Cache invalidated")
	}
	return nil
}

func (c *ResponseCache) covers(path string) bool {
	if len(c.prefixes) == 0 {
		return true
	}
	for _, prefix := range c.prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Key derives the cache key for a request from its method, path and query
func Key(r *http.Request) string {
	components := fmt.Sprintf("%s:%s:%s", r.Method, r.URL.Path, r.URL.RawQuery)
	hash := sha256.Sum256([]byte(components))
	return keyPrefix + hex.EncodeToString(hash[:])
}

type captureWriter struct {
	http.ResponseWriter
	statusCode int
	capture    bool
	body       bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.statusCode = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.capture {
		cw.body.Write(b)
	}
	return cw.ResponseWriter.Write(b)
}
