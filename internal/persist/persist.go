// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package persist is the storefront's persisted cache: a small set of keyed
// blobs that are read at startup and overwritten wholesale on every mutation.
// One blob holds the catalog, one blob per shopper holds that shopper's cart.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

const (
	// CatalogKey holds the serialized product list.
	CatalogKey = "zebaishProducts"

	// cartKeyPrefix namespaces per-shopper cart blobs.
	cartKeyPrefix = "zebaishCart:"
)

// ErrNotFound is returned by Load when no blob exists under the key.
var ErrNotFound = errors.New("persist: blob not found")

// Backend stores opaque blobs by key.
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// CartKey returns the blob key for a shopper's cart.
func CartKey(shopperID string) string {
	return cartKeyPrefix + shopperID
}

// SaveJSON marshals v and overwrites the blob under key.
func SaveJSON(ctx context.Context, b Backend, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("persist marshal %s: %w", key, err)
	}
	if err := b.Save(ctx, key, payload); err != nil {
		return fmt.Errorf("persist save %s: %w", key, err)
	}
	return nil
}

// LoadJSON reads the blob under key into v. It returns ErrNotFound
// (possibly wrapped) when the blob is missing.
func LoadJSON(ctx context.Context, b Backend, key string, v any) error {
	payload, err := b.Load(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("persist unmarshal %s: %w", key, err)
	}
	return nil
}

// Memory is an in-process Backend used in development and tests.
type Memory struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory returns an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{blobs: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Save(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.blobs[key] = v
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}
