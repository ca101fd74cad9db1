// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package catalog holds the product list. It loads from a catalog source,
// falls back to the persisted cache and then to built-in defaults, and
// rewrites the persisted copy after every mutation.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"zebaish/internal/models"
	"zebaish/internal/persist"
)

// Tier names the source a catalog load was satisfied from.
type Tier string

const (
	TierRemote   Tier = "remote"
	TierCache    Tier = "cache"
	TierDefaults Tier = "defaults"
)

// Store owns the in-memory catalog. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	products []models.Product
	source   Source
	backend  persist.Backend
	now      func() time.Time
}

// NewStore returns an empty store. Call Load before serving. source may be
// nil, in which case Load starts at the persisted cache.
func NewStore(source Source, backend persist.Backend) *Store {
	return &Store{
		source:  source,
		backend: backend,
		now:     time.Now,
	}
}

// Load fills the catalog from the first tier that succeeds: the catalog
// source, then the persisted cache, then DefaultProducts. Only a remote load
// is written back to the cache. Load never fails.
func (s *Store) Load(ctx context.Context) Tier {
	if s.source != nil {
		products, err := s.source.Fetch(ctx)
		if err == nil {
			s.mu.Lock()
			s.products = products
			s.commit(ctx)
			s.mu.Unlock()
			slog.Info("catalog loaded from source", "products", len(products))
			return TierRemote
		}
		slog.Warn("catalog source unavailable, using fallback", "error", err)
	}

	var cached []models.Product
	err := persist.LoadJSON(ctx, s.backend, persist.CatalogKey, &cached)
	if err == nil {
		s.replace(cached)
		slog.Info("catalog loaded from persisted cache", "products", len(cached))
		return TierCache
	}
	if !errors.Is(err, persist.ErrNotFound) {
		slog.Warn("persisted catalog unreadable", "error", err)
	}

	defaults := DefaultProducts()
	s.replace(defaults)
	slog.Info("catalog seeded with defaults", "products", len(defaults))
	return TierDefaults
}

func (s *Store) replace(products []models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = products
}

// Upsert replaces the product with p.ID, or appends p under a fresh id when
// no such product exists. A replacement overwrites every field, except that
// an empty image keeps the existing one. The stored product is returned.
func (s *Store) Upsert(ctx context.Context, p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(p.ID); i >= 0 {
		if p.Image == "" {
			p.Image = s.products[i].Image
		}
		s.products[i] = p
	} else {
		p.ID = s.nextID()
		s.products = append(s.products, p)
	}

	s.commit(ctx)
	return p
}

// Remove deletes the product with the given id. Unknown ids are a no-op,
// but the catalog is still re-persisted.
func (s *Store) Remove(ctx context.Context, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		s.products = append(s.products[:i:i], s.products[i+1:]...)
	}
	s.commit(ctx)
}

// Find returns the product with the given id.
func (s *Store) Find(id int64) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.products[i], true
	}
	return models.Product{}, false
}

// Products returns a copy of the catalog in stored order.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// FilterByCategory returns the products in a category, in stored order.
// An empty id or "all" returns the whole catalog.
func (s *Store) FilterByCategory(category string) []models.Product {
	if category == "" || category == models.CategoryAll {
		return s.Products()
	}
	return s.filter(func(p *models.Product) bool { return p.Category == category })
}

// Search returns products whose name, description or category id contains
// term, ignoring case.
func (s *Store) Search(term string) []models.Product {
	term = strings.ToLower(term)
	return s.filter(func(p *models.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Description), term) ||
			strings.Contains(strings.ToLower(p.Category), term)
	})
}

// Categories returns the static category list.
func (s *Store) Categories() []models.Category {
	out := make([]models.Category, len(models.Categories))
	copy(out, models.Categories)
	return out
}

// CategoryName returns the display label of a category id.
func (s *Store) CategoryName(id string) string {
	return models.CategoryName(id)
}

// Len returns the number of products.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

func (s *Store) filter(keep func(*models.Product) bool) []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Product{}
	for i := range s.products {
		if keep(&s.products[i]) {
			out = append(out, s.products[i])
		}
	}
	return out
}

// indexOf must be called with s.mu held.
func (s *Store) indexOf(id int64) int {
	for i := range s.products {
		if s.products[i].ID == id {
			return i
		}
	}
	return -1
}

// nextID returns a time-based id not used by any product. Must be called
// with s.mu held.
func (s *Store) nextID() int64 {
	id := s.now().UnixMilli()
	for s.indexOf(id) >= 0 {
		id++
	}
	return id
}

// commit overwrites the persisted catalog. Failures are logged only; the
// in-memory catalog stays authoritative. Must be called with s.mu held.
func (s *Store) commit(ctx context.Context) {
	if err := persist.SaveJSON(ctx, s.backend, persist.CatalogKey, s.products); err != nil {
		slog.Error("persist catalog failed", "error", err)
	}
}
