// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Stock thresholds used by the storefront badges.
const (
	LowStockBadgeBelow  = 5 // "Only N left" badge
	LowStockStatusBelow = 3 // stock status rendered as low
)

// Product is a sellable catalog item. Field names follow the catalog
// document so the same JSON serves the remote source and the persisted cache.
type Product struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Category    string `json:"category"`
	Image       string `json:"image"`
	Description string `json:"description"`
	Featured    bool   `json:"featured"`
	Stock       int64  `json:"stock"`
}

// InStock reports whether at least one unit is available.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

// LowStock reports whether the "Only N left" badge applies.
func (p *Product) LowStock() bool {
	return p.Stock < LowStockBadgeBelow
}

// Document is the shape of the catalog source: { "products": [...] }.
type Document struct {
	Products []Product `json:"products"`
}
