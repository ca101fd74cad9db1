// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const rateLimitPrefix = "ratelimit:"

// RateLimiter is a fixed-window per-IP limiter kept in Valkey, so the
// limit holds across server instances.
type RateLimiter struct {
	client *redis.Client
	name   string
	limit  int64
	window time.Duration
}

// NewRateLimiter allows limit requests per window for each client IP.
// name separates the counters of independent limiters.
func NewRateLimiter(client *redis.Client, name string, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		client: client,
		name:   name,
		limit:  int64(limit),
		window: window,
	}
}

// Allow counts one request for key and reports whether it is within the
// limit, along with the time until the current window resets.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := rateLimitPrefix + rl.name + ":" + key

	n, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ratelimit incr: %w", err)
	}
	if n == 1 {
		if err := rl.client.Expire(ctx, k, rl.window).Err(); err != nil {
			return false, 0, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	ttl, err := rl.client.TTL(ctx, k).Result()
	if err != nil || ttl < 0 {
		ttl = rl.window
	}
	return n <= rl.limit, ttl, nil
}

// Middleware rejects requests over the limit with 429. When Valkey is
// unavailable requests are let through.
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, retry, err := rl.Allow(r.Context(), clientIP(r))
		if err != nil {
			slog.Warn("rate limiter unavailable", "limiter", rl.name, "error", err)
			next.ServeHTTP(w, r)
			return
		}
		if !ok {
			w.Header().Set("Retry-After", strconv.Itoa(int(retry.Round(time.Second).Seconds())))
			http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP extracts the client's IP address, checking X-Forwarded-For
// and X-Real-IP headers for proxied requests.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
