/**
 * @description
 * Distributed fixed-window rate limiting for the authentication routes,
 * backed by Redis. The limiter runs in front of registration and login to
 * blunt brute-force attempts; when Redis is not configured it degrades
 * open so the service keeps serving.
 */

package api

import (
	"context"
	"fmt"
	"log"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
local ttl = redis.call("PTTL", KEYS[1])
if ttl < 0 then
  ttl = tonumber(ARGV[1])
end
return {current, ttl}
`)

// RedisRateLimiter implements distributed rate limiting using Redis.
type RedisRateLimiter struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisRateLimiter creates a limiter with the given key prefix.
func NewRedisRateLimiter(client redis.UniversalClient, prefix string) *RedisRateLimiter {
	trimmedPrefix := strings.TrimSpace(prefix)
	if trimmedPrefix == "" {
		trimmedPrefix = "swiftremit:rate_limit"
	}
	trimmedPrefix = strings.TrimSuffix(trimmedPrefix, ":")

	return &RedisRateLimiter{client: client, prefix: trimmedPrefix}
}

// Consume increments the counter for scope+subject and reports the current
// count and the retry-after hint. A nil limiter or client consumes nothing.
func (r *RedisRateLimiter) Consume(ctx context.Context, scope, subject string, window time.Duration) (count int, retryAfterSeconds int, err error) {
	if r == nil || r.client == nil || window <= 0 {
		return 0, 0, nil
	}

	normalizedScope := strings.TrimSpace(scope)
	normalizedSubject := strings.TrimSpace(subject)
	if normalizedScope == "" || normalizedSubject == "" {
		return 0, 0, nil
	}

	windowMs := window.Milliseconds()
	if windowMs < 1000 {
		windowMs = 1000
	}

	key := fmt.Sprintf("%s:%s:%s", r.prefix, normalizedScope, normalizedSubject)
	rawResult, err := rateLimitScript.Run(ctx, r.client, []string{key}, windowMs).Result()
	if err != nil {
		return 0, 0, err
	}

	values, ok := rawResult.([]interface{})
	if !ok || len(values) != 2 {
		return 0, 0, fmt.Errorf("unexpected redis limiter response shape: %T", rawResult)
	}
	currentCount, ok := values[0].(int64)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected redis limiter count type: %T", values[0])
	}
	ttlMs, ok := values[1].(int64)
	if !ok {
		return int(currentCount), 0, fmt.Errorf("unexpected redis limiter ttl type: %T", values[1])
	}
	if ttlMs < 0 {
		ttlMs = windowMs
	}

	retryAfter := int(math.Ceil(float64(ttlMs) / 1000.0))
	if retryAfter < 1 {
		retryAfter = 1
	}
	return int(currentCount), retryAfter, nil
}

func clientIP(r *http.Request) string {
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit produces a middleware enforcing limit requests per window per
// client IP for the named scope. A limiter failure degrades open.
func RateLimit(limiter *RedisRateLimiter, scope string, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || limit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			count, retryAfter, err := limiter.Consume(r.Context(), scope, clientIP(r), window)
			if err != nil {
				log.Printf("level=warn component=ratelimit msg=\"limiter unavailable; allowing request\" scope=%s err=%v", scope, err)
				next.ServeHTTP(w, r)
				return
			}
			if count > limit {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				http.Error(w, "Too many attempts, please try again later.", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
