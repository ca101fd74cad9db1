// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// grid.go caches rendered product-grid fragments in Valkey, one per
// storefront filter. Fragments are namespaced by a generation number;
// bumping it invalidates every fragment at once and the stale keys age out
// through their TTL.
package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	gridKeyPrefix = "grid:"
	gridGenKey    = "grid:generation"

	// DefaultGridTTL is how long a rendered grid fragment stays cached.
	DefaultGridTTL = 10 * time.Minute
)

// GridCache stores rendered product-grid HTML keyed by filter.
type GridCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGridCache creates a grid cache backed by the given Valkey client.
// A zero ttl selects DefaultGridTTL.
func NewGridCache(client *redis.Client, ttl time.Duration) *GridCache {
	if ttl == 0 {
		ttl = DefaultGridTTL
	}
	return &GridCache{client: client, ttl: ttl}
}

func (gc *GridCache) key(ctx context.Context, filterKey string) (string, error) {
	gen, err := gc.client.Get(ctx, gridGenKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", err
	}
	return gridKeyPrefix + strconv.FormatInt(gen, 10) + ":" + filterKey, nil
}

// Get returns the cached fragment for filterKey. Errors count as misses.
func (gc *GridCache) Get(ctx context.Context, filterKey string) ([]byte, bool) {
	key, err := gc.key(ctx, filterKey)
	if err != nil {
		slog.Warn("grid cache generation error", "error", err)
		return nil, false
	}
	val, err := gc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("grid cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("grid cache hit", "key", key)
	return val, true
}

// Set stores a rendered fragment for filterKey.
func (gc *GridCache) Set(ctx context.Context, filterKey string, html []byte) {
	key, err := gc.key(ctx, filterKey)
	if err != nil {
		slog.Warn("grid cache generation error", "error", err)
		return
	}
	if err := gc.client.Set(ctx, key, html, gc.ttl).Err(); err != nil {
		slog.Warn("grid cache set error", "key", key, "error", err)
	}
}

// Invalidate drops every cached fragment. Call it after any catalog change.
func (gc *GridCache) Invalidate(ctx context.Context, reason string) {
	gen, err := gc.client.Incr(ctx, gridGenKey).Result()
	if err != nil {
		slog.Warn("grid cache invalidate error", "reason", reason, "error", err)
		return
	}
	slog.Info("grid cache invalidated", "reason", reason, "generation", gen)
}
