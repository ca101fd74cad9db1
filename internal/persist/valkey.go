// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// valkeyKeyPrefix namespaces blob keys in Valkey.
const valkeyKeyPrefix = "blob:"

// Valkey stores blobs in Valkey without expiry.
type Valkey struct {
	client *redis.Client
}

// NewValkey creates a Backend on top of an existing Valkey client.
func NewValkey(client *redis.Client) *Valkey {
	return &Valkey{client: client}
}

func (v *Valkey) Load(ctx context.Context, key string) ([]byte, error) {
	val, err := v.client.Get(ctx, valkeyKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("valkey get: %w", err)
	}
	return val, nil
}

func (v *Valkey) Save(ctx context.Context, key string, value []byte) error {
	if err := v.client.Set(ctx, valkeyKeyPrefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("valkey set: %w", err)
	}
	return nil
}

func (v *Valkey) Delete(ctx context.Context, key string) error {
	if err := v.client.Del(ctx, valkeyKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("valkey del: %w", err)
	}
	return nil
}
