// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// CategoryAll is the pseudo-category that disables the category filter.
const CategoryAll = "all"

// Category labels products in the storefront. The set is fixed; Product.Category
// refers to ID and unknown ids simply render as the raw id.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// Categories is the static category set shown in the filter bar and the
// admin form, in display order.
var Categories = []Category{
	{ID: "necklace", Name: "Necklaces", Icon: "📿"},
	{ID: "earrings", Name: "Earrings", Icon: "💎"},
	{ID: "maangtikka", Name: "Maang Tikka", Icon: "👑"},
	{ID: "set", Name: "Bridal Sets", Icon: "💍"},
	{ID: "bangles", Name: "Bangles", Icon: "⭕"},
	{ID: "ring", Name: "Rings", Icon: "💍"},
	{ID: "bracelet", Name: "Bracelets", Icon: "📿"},
}

// CategoryName returns the display name for a category id, falling back to
// the id itself when it is not part of the static set.
func CategoryName(id string) string {
	for _, c := range Categories {
		if c.ID == id {
			return c.Name
		}
	}
	return id
}
