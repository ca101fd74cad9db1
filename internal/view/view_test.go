package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zebaish/internal/cart"
	"zebaish/internal/catalog"
	"zebaish/internal/models"
	"zebaish/internal/persist"
)

func defaultCatalog(t *testing.T) *catalog.Store {
	t.Helper()
	s := catalog.NewStore(nil, persist.NewMemory())
	require.Equal(t, catalog.TierDefaults, s.Load(context.Background()))
	return s
}

func names(cards []ProductCard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.Name)
	}
	return out
}

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Rs. 0"},
		{800, "Rs. 800"},
		{1200, "Rs. 1,200"},
		{1234567, "Rs. 1,234,567"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.in))
	}
}

func TestFilterPolicy(t *testing.T) {
	f := Filter{}.WithSearch("velvet")
	assert.Equal(t, "velvet", f.Search)

	// Choosing a category always resets the search text.
	f = f.WithCategory("bangles")
	assert.Equal(t, Filter{Category: "bangles"}, f)

	// Searching keeps the category selection.
	f = f.WithSearch("red")
	assert.Equal(t, "bangles", f.Category)
	assert.Equal(t, "red", f.Search)

	assert.Equal(t, "all", Filter{}.ActiveCategory())
	assert.Equal(t, "bangles|red", f.Key())
}

func TestProducts(t *testing.T) {
	s := defaultCatalog(t)

	all := Products(s, Filter{})
	assert.Equal(t, []string{
		"Royal Bridal Necklace Set",
		"Classic Red Velvet Bangles",
		"Green Velvet Maang Tikka",
		"Gold Thread Choker Necklace",
		"Bridal Earrings - Jhumka Style",
	}, names(all))

	assert.Equal(t, []string{"Gold Thread Choker Necklace"}, names(Products(s, Filter{Category: "necklace"})))

	// Search wins over the category and covers the whole catalog.
	got := Products(s, Filter{Category: "necklace", Search: "VELVET"})
	assert.Equal(t, []string{"Royal Bridal Necklace Set", "Classic Red Velvet Bangles", "Green Velvet Maang Tikka"}, names(got))

	assert.Empty(t, Products(s, Filter{Category: "anklet"}))
}

func TestCard(t *testing.T) {
	c := Card(models.Product{ID: 4, Name: "Gold Thread Choker Necklace", Price: 2800, Category: "necklace", Stock: 3})
	assert.Equal(t, "Rs. 2,800", c.Price)
	assert.Equal(t, "Necklaces", c.CategoryLabel)
	assert.Equal(t, "Only 3 left", c.LowStockBadge)
	assert.False(t, c.LowStatus)
	assert.True(t, c.InStock)
	assert.Equal(t, "✓ In Stock", c.StockLabel)
	assert.Equal(t, "/products/4-gold-thread-choker-necklace", c.URL)

	c = Card(models.Product{ID: 9, Name: "Anklet", Category: "anklet", Stock: 0})
	assert.Equal(t, "anklet", c.CategoryLabel, "unknown categories show the raw id")
	assert.True(t, c.LowStatus)
	assert.False(t, c.InStock)
	assert.Equal(t, "✗ Out of Stock", c.StockLabel)

	c = Card(models.Product{ID: 10, Name: "Set", Stock: 12})
	assert.Empty(t, c.LowStockBadge)
}

func TestProductURLWithoutSlug(t *testing.T) {
	assert.Equal(t, "/products/7", ProductURL(&models.Product{ID: 7, Name: "!!!"}))
}

func TestFilterButtons(t *testing.T) {
	buttons := FilterButtons(Filter{Category: "ring"})
	require.Len(t, buttons, len(models.Categories)+1)
	assert.Equal(t, "All", buttons[0].Name)
	assert.False(t, buttons[0].Active)

	var active []string
	for _, b := range buttons {
		if b.Active {
			active = append(active, b.ID)
		}
	}
	assert.Equal(t, []string{"ring"}, active)
	assert.True(t, FilterButtons(Filter{})[0].Active)
}

func TestProductDetail(t *testing.T) {
	d := ProductDetail(models.Product{ID: 1, Name: "Set", Description: "**Bridal** set", Stock: 5})
	assert.Contains(t, string(d.DescriptionHTML), "<strong>Bridal</strong>")
	assert.Equal(t, "✓ 5 items in stock", d.StockLine)
	assert.Equal(t, "in-stock", d.StockClass)

	d = ProductDetail(models.Product{ID: 2, Name: "Gone", Stock: 0})
	assert.Equal(t, "✗ Out of stock", d.StockLine)
	assert.Equal(t, "low-stock", d.StockClass)
	assert.False(t, d.InStock)
}

func TestCartView(t *testing.T) {
	ctx := context.Background()
	b := persist.NewMemory()
	s := defaultCatalog(t)
	c := cart.Open(ctx, b, "view", s, nil)

	empty := Cart(c)
	assert.True(t, empty.Empty)
	assert.Equal(t, "Rs. 0", empty.Total)
	assert.EqualValues(t, 0, empty.Count)

	c.Add(ctx, 2)
	c.Add(ctx, 2)
	c.Add(ctx, 1)

	v := Cart(c)
	assert.False(t, v.Empty)
	assert.EqualValues(t, 3, v.Count)
	assert.Equal(t, "Rs. 6,900", v.Total)
	require.Len(t, v.Lines, 2)
	assert.Equal(t, "Classic Red Velvet Bangles", v.Lines[0].Name)
	assert.Equal(t, "Rs. 2,400", v.Lines[0].Subtotal)
}

func TestOrder(t *testing.T) {
	v := Order(models.OrderSummary{
		Lines: []models.OrderLine{{Name: "Bangles", Quantity: 2, UnitPrice: 1200, LineTotal: 2400}},
		Total: 2400,
	})
	assert.Equal(t, []string{"Bangles x2 = Rs. 2,400"}, v.Lines)
	assert.Equal(t, "Rs. 2,400", v.Total)
}

func TestAdminList(t *testing.T) {
	products := catalog.DefaultProducts()

	assert.Len(t, AdminList(products, ""), 5)

	rows := AdminList(products, "NECK")
	require.Len(t, rows, 2)
	assert.Equal(t, "necklace", rows[1].Category)

	// Descriptions are not searched in the admin list.
	assert.Empty(t, AdminList(products, "embroidery"))
}
