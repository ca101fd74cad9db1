// Package view derives display records from store state. Every function
// here is pure: the same catalog or cart state and filter always produce the
// same records, in the stored order of the underlying list.
package view

import (
	"fmt"
	"html/template"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"zebaish/internal/markdown"
	"zebaish/internal/models"
	"zebaish/internal/slug"
)

var printer = message.NewPrinter(language.English)

// FormatPrice renders a whole-unit price with thousands separators,
// e.g. 4500 -> "Rs. 4,500".
func FormatPrice(n int64) string {
	return printer.Sprintf("Rs. %d", n)
}

// ProductURL is the storefront path of a product's detail page.
func ProductURL(p *models.Product) string {
	if s := slug.Generate(p.Name); s != "" {
		return fmt.Sprintf("/products/%d-%s", p.ID, s)
	}
	return fmt.Sprintf("/products/%d", p.ID)
}

// Filter is the transient storefront filter. A non-empty Search takes
// precedence over Category.
type Filter struct {
	Category string
	Search   string
}

// WithCategory selects a category and clears any search text.
func (f Filter) WithCategory(category string) Filter {
	return Filter{Category: category}
}

// WithSearch sets the search text, keeping the category selection.
func (f Filter) WithSearch(term string) Filter {
	f.Search = term
	return f
}

// ActiveCategory is the selected category, "all" when none is selected.
func (f Filter) ActiveCategory() string {
	if f.Category == "" {
		return models.CategoryAll
	}
	return f.Category
}

// Key identifies the filter in caches.
func (f Filter) Key() string {
	return f.ActiveCategory() + "|" + strings.ToLower(f.Search)
}

// Catalog is the read access the storefront views need.
type Catalog interface {
	FilterByCategory(category string) []models.Product
	Search(term string) []models.Product
}

// ProductCard is one tile of the storefront grid.
type ProductCard struct {
	ID            int64
	URL           string
	Name          string
	Description   string
	Image         string
	Price         string
	CategoryID    string
	CategoryLabel string
	Featured      bool
	LowStockBadge string // "Only N left", empty when stock is comfortable
	InStock       bool
	LowStatus     bool
	StockLabel    string
}

// Card builds the display record for one product.
func Card(p models.Product) ProductCard {
	c := ProductCard{
		ID:            p.ID,
		URL:           ProductURL(&p),
		Name:          p.Name,
		Description:   p.Description,
		Image:         p.Image,
		Price:         FormatPrice(p.Price),
		CategoryID:    p.Category,
		CategoryLabel: models.CategoryName(p.Category),
		Featured:      p.Featured,
		InStock:       p.InStock(),
		LowStatus:     p.Stock < models.LowStockStatusBelow,
		StockLabel:    "✗ Out of Stock",
	}
	if p.LowStock() {
		c.LowStockBadge = fmt.Sprintf("Only %d left", p.Stock)
	}
	if c.InStock {
		c.StockLabel = "✓ In Stock"
	}
	return c
}

// Products lists the cards visible under f.
func Products(c Catalog, f Filter) []ProductCard {
	var products []models.Product
	if f.Search != "" {
		products = c.Search(f.Search)
	} else {
		products = c.FilterByCategory(f.ActiveCategory())
	}

	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, Card(p))
	}
	return cards
}

// FilterButton is one entry of the category filter bar.
type FilterButton struct {
	ID     string
	Name   string
	Icon   string
	Active bool
}

// FilterButtons returns "All" followed by the static categories.
func FilterButtons(f Filter) []FilterButton {
	active := f.ActiveCategory()
	buttons := make([]FilterButton, 0, len(models.Categories)+1)
	buttons = append(buttons, FilterButton{ID: models.CategoryAll, Name: "All", Active: active == models.CategoryAll})
	for _, c := range models.Categories {
		buttons = append(buttons, FilterButton{ID: c.ID, Name: c.Name, Icon: c.Icon, Active: active == c.ID})
	}
	return buttons
}

// Detail is the quick-view record of a single product.
type Detail struct {
	ProductCard
	DescriptionHTML template.HTML
	StockLine       string
	StockClass      string
}

// ProductDetail builds the quick-view record. The description is rendered
// from Markdown; if that fails it is shown as escaped text.
func ProductDetail(p models.Product) Detail {
	d := Detail{ProductCard: Card(p)}

	if rendered, err := markdown.ToHTML(p.Description); err == nil {
		d.DescriptionHTML = template.HTML(rendered)
	} else {
		d.DescriptionHTML = template.HTML(template.HTMLEscapeString(p.Description))
	}

	d.StockLine = "✗ Out of stock"
	if p.InStock() {
		d.StockLine = fmt.Sprintf("✓ %d items in stock", p.Stock)
	}
	d.StockClass = "in-stock"
	if p.LowStock() {
		d.StockClass = "low-stock"
	}
	return d
}
