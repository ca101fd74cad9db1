package view

import (
	"fmt"

	"zebaish/internal/models"
)

// CartState is the read access the cart view needs.
type CartState interface {
	Entries() []models.CartEntry
	Total() int64
	ItemCount() int64
}

// CartLine is one row of the cart sidebar.
type CartLine struct {
	ID       int64
	Name     string
	Image    string
	Price    string
	Quantity int64
	Subtotal string
}

// CartView is the cart sidebar and the header badge.
type CartView struct {
	Lines []CartLine
	Count int64
	Total string
	Empty bool
}

// Cart builds the cart view from the snapshot entries.
func Cart(c CartState) CartView {
	entries := c.Entries()
	v := CartView{
		Lines: make([]CartLine, 0, len(entries)),
		Count: c.ItemCount(),
		Total: FormatPrice(c.Total()),
		Empty: len(entries) == 0,
	}
	for i := range entries {
		e := &entries[i]
		v.Lines = append(v.Lines, CartLine{
			ID:       e.ID,
			Name:     e.Name,
			Image:    e.Image,
			Price:    FormatPrice(e.Price),
			Quantity: e.Quantity,
			Subtotal: FormatPrice(e.Subtotal()),
		})
	}
	return v
}

// OrderView is the checkout confirmation.
type OrderView struct {
	Lines []string
	Total string
}

// Order renders each summary line as "Name xQty = Rs. N".
func Order(s models.OrderSummary) OrderView {
	v := OrderView{
		Lines: make([]string, 0, len(s.Lines)),
		Total: FormatPrice(s.Total),
	}
	for _, l := range s.Lines {
		v.Lines = append(v.Lines, fmt.Sprintf("%s x%d = %s", l.Name, l.Quantity, FormatPrice(l.LineTotal)))
	}
	return v
}
