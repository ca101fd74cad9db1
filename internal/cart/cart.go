// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package cart holds one shopper's cart. Entries are snapshots of catalog
// products taken at add time; the catalog is consulted afterwards only for
// the live stock ceiling. Every mutation rewrites the shopper's persisted
// cart blob.
package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"zebaish/internal/models"
	"zebaish/internal/notice"
	"zebaish/internal/persist"
)

// Catalog is the read access the cart needs from the catalog store.
type Catalog interface {
	Find(id int64) (models.Product, bool)
}

// Cart is a shopper's cart. It is safe for concurrent use.
type Cart struct {
	mu      sync.Mutex
	entries []models.CartEntry
	key     string
	backend persist.Backend
	catalog Catalog
	notices notice.Sink
}

// Open restores the cart of shopperID from the backend. A missing or
// unreadable blob yields an empty cart. A nil sink discards notices.
func Open(ctx context.Context, backend persist.Backend, shopperID string, catalog Catalog, sink notice.Sink) *Cart {
	if sink == nil {
		sink = notice.Discard
	}
	c := &Cart{
		key:     persist.CartKey(shopperID),
		backend: backend,
		catalog: catalog,
		notices: sink,
	}

	var entries []models.CartEntry
	err := persist.LoadJSON(ctx, backend, c.key, &entries)
	switch {
	case err == nil:
		c.entries = entries
	case errors.Is(err, persist.ErrNotFound):
	default:
		slog.Warn("persisted cart unreadable, starting empty", "key", c.key, "error", err)
	}
	return c
}

// Add puts one unit of the product in the cart. It refuses, with a notice,
// when the product is unknown or out of stock, or when the cart already
// holds the full live stock. It reports whether the cart changed.
func (c *Cart) Add(ctx context.Context, productID int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	product, ok := c.catalog.Find(productID)
	if !ok || product.Stock == 0 {
		c.notices.Notify(notice.Warning(notice.OutOfStock))
		return false
	}

	if i := c.indexOf(productID); i >= 0 {
		if c.entries[i].Quantity >= product.Stock {
			c.notices.Notify(notice.Warning(notice.StockLimit))
			return false
		}
		c.entries[i].Quantity++
	} else {
		// The entry keeps its own copy of the product fields.
		c.entries = append(c.entries, models.CartEntry{Product: product, Quantity: 1})
	}

	c.commit(ctx)
	c.notices.Notify(notice.Success(notice.AddedToCart))
	return true
}

// UpdateQuantity changes an entry's quantity by delta. A result of zero or
// less removes the entry; a result above the catalog's current stock is
// refused with a notice. Entries whose product left the catalog are not
// touched. It reports whether the cart changed.
func (c *Cart) UpdateQuantity(ctx context.Context, productID, delta int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	product, ok := c.catalog.Find(productID)
	if !ok {
		return false
	}

	qty := c.entries[i].Quantity + delta
	switch {
	case qty <= 0:
		c.removeAt(i)
	case qty > product.Stock:
		c.notices.Notify(notice.Warning(notice.StockAvailable(product.Stock)))
		return false
	default:
		c.entries[i].Quantity = qty
	}

	c.commit(ctx)
	return true
}

// Remove deletes the entry for productID, if any, and re-persists the cart.
func (c *Cart) Remove(ctx context.Context, productID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		c.removeAt(i)
	}
	c.commit(ctx)
}

// Entries returns a copy of the entries in insertion order.
func (c *Cart) Entries() []models.CartEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]models.CartEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Quantity returns the quantity held for productID, zero when absent.
func (c *Cart) Quantity(productID int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(productID); i >= 0 {
		return c.entries[i].Quantity
	}
	return 0
}

// Total is the sum of price times quantity over all entries, using the
// snapshot prices.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var total int64
	for i := range c.entries {
		total += c.entries[i].Subtotal()
	}
	return total
}

// ItemCount is the sum of quantities over all entries.
func (c *Cart) ItemCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	var n int64
	for i := range c.entries {
		n += c.entries[i].Quantity
	}
	return n
}

// Checkout summarises the cart, then empties it and deletes its persisted
// copy. An empty cart is left alone and produces a notice; ok is false.
func (c *Cart) Checkout(ctx context.Context) (summary models.OrderSummary, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) == 0 {
		c.notices.Notify(notice.Warning(notice.EmptyCart))
		return models.OrderSummary{}, false
	}

	summary.Lines = make([]models.OrderLine, 0, len(c.entries))
	for i := range c.entries {
		e := &c.entries[i]
		summary.Lines = append(summary.Lines, models.OrderLine{
			ProductID: e.ID,
			Name:      e.Name,
			Quantity:  e.Quantity,
			UnitPrice: e.Price,
			LineTotal: e.Subtotal(),
		})
		summary.Total += e.Subtotal()
	}

	c.entries = nil
	if err := c.backend.Delete(ctx, c.key); err != nil {
		slog.Error("delete persisted cart failed", "key", c.key, "error", err)
	}

	slog.Info("checkout confirmed", "key", c.key, "lines", len(summary.Lines), "total", summary.Total)
	c.notices.Notify(notice.Success(notice.OrderPlaced))
	return summary, true
}

// indexOf must be called with c.mu held.
func (c *Cart) indexOf(productID int64) int {
	for i := range c.entries {
		if c.entries[i].ID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) removeAt(i int) {
	c.entries = append(c.entries[:i:i], c.entries[i+1:]...)
}

// commit overwrites the persisted cart with the full entry list. Failures
// are logged only. Must be called with c.mu held.
func (c *Cart) commit(ctx context.Context) {
	entries := c.entries
	if entries == nil {
		entries = []models.CartEntry{}
	}
	if err := persist.SaveJSON(ctx, c.backend, c.key, entries); err != nil {
		slog.Error("persist cart failed", "key", c.key, "error", err)
	}
}
