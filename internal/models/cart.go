// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CartEntry is a copy of a Product taken when it was first added to the
// cart, plus the quantity. It is a snapshot: later catalog edits to the
// product (name, price, image) do not reach entries already in a cart.
type CartEntry struct {
	Product
	Quantity int64 `json:"quantity"`
}

// Subtotal is price times quantity for this entry.
func (e *CartEntry) Subtotal() int64 {
	return e.Price * e.Quantity
}

// OrderLine is one line of an order summary.
type OrderLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

// OrderSummary is the confirmation produced by a checkout. It is not an
// order record; nothing is charged or stored.
type OrderSummary struct {
	Lines []OrderLine `json:"lines"`
	Total int64       `json:"total"`
}
