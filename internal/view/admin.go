package view

import (
	"strings"

	"zebaish/internal/models"
)

// AdminRow is one card of the admin product list.
type AdminRow struct {
	ID       int64
	Name     string
	Image    string
	Price    string
	Category string // raw id, as stored
	Stock    int64
	Featured bool
}

// AdminList filters products by name or category id (not description) and
// returns them in stored order. An empty term lists everything.
func AdminList(products []models.Product, term string) []AdminRow {
	term = strings.ToLower(term)
	rows := make([]AdminRow, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Category), term) {
			continue
		}
		rows = append(rows, AdminRow{
			ID:       p.ID,
			Name:     p.Name,
			Image:    p.Image,
			Price:    FormatPrice(p.Price),
			Category: p.Category,
			Stock:    p.Stock,
			Featured: p.Featured,
		})
	}
	return rows
}
