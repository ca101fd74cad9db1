package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"necklace", "Necklaces"},
		{"set", "Bridal Sets"},
		{"maangtikka", "Maang Tikka"},
		{"anklet", "anklet"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.Equal(t, tt.want, CategoryName(tt.id))
		})
	}
}

func TestProductBadges(t *testing.T) {
	p := Product{Stock: 4}
	assert.True(t, p.InStock())
	assert.True(t, p.LowStock())

	p.Stock = 5
	assert.False(t, p.LowStock())

	p.Stock = 0
	assert.False(t, p.InStock())
}

// TestCartEntryJSONIsFlat checks that a cart entry serialises as the product
// fields plus quantity, the same layout as the persisted cart blob.
func TestCartEntryJSONIsFlat(t *testing.T) {
	e := CartEntry{
		Product:  Product{ID: 2, Name: "Classic Red Velvet Bangles", Price: 1200, Stock: 10},
		Quantity: 3,
	}

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.EqualValues(t, 2, fields["id"])
	assert.EqualValues(t, 3, fields["quantity"])
	assert.NotContains(t, fields, "Product")
	assert.EqualValues(t, 3600, e.Subtotal())
}
