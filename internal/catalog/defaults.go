package catalog

import "zebaish/internal/models"

// DefaultImage is used for new products submitted without an image.
const DefaultImage = "https://images.unsplash.com/photo-1617038220319-276d3cfab638?w=600&auto=format&fit=crop&q=80"

// DefaultProducts returns the built-in catalog used when neither the catalog
// source nor the persisted cache is available. Each call returns a fresh slice.
func DefaultProducts() []models.Product {
	return []models.Product{
		{
			ID:          1,
			Name:        "Royal Bridal Necklace Set",
			Price:       4500,
			Category:    "set",
			Image:       "https://images.unsplash.com/photo-1599643478518-a784e5dc4c8f?w=600&auto=format&fit=crop&q=80",
			Description: "Complete bridal set featuring intricate hand embroidery on rich velvet. Includes statement necklace, matching earrings and elegant headpiece.",
			Featured:    true,
			Stock:       5,
		},
		{
			ID:          2,
			Name:        "Classic Red Velvet Bangles",
			Price:       1200,
			Category:    "bangles",
			Image:       "https://images.unsplash.com/photo-1617038220319-276d3cfab638?w=600&auto=format&fit=crop&q=80",
			Description: "Set of 12 handcrafted bangles with metallic thread embroidery on plush velvet. Perfect for weddings and festive celebrations.",
			Featured:    false,
			Stock:       10,
		},
		{
			ID:          3,
			Name:        "Green Velvet Maang Tikka",
			Price:       800,
			Category:    "maangtikka",
			Image:       "https://images.unsplash.com/photo-1611652022419-a9419f74343d?w=600&auto=format&fit=crop&q=80",
			Description: "Elegant maang tikka with pearl drops and detailed hand embroidery on emerald green velvet.",
			Featured:    true,
			Stock:       8,
		},
		{
			ID:          4,
			Name:        "Gold Thread Choker Necklace",
			Price:       2800,
			Category:    "necklace",
			Image:       "https://images.unsplash.com/photo-1535632066927-ab7c9ab60908?w=600&auto=format&fit=crop&q=80",
			Description: "Statement choker featuring floral patterns in traditional style with mirror work accents.",
			Featured:    false,
			Stock:       3,
		},
		{
			ID:          5,
			Name:        "Bridal Earrings - Jhumka Style",
			Price:       1500,
			Category:    "earrings",
			Image:       "https://images.unsplash.com/photo-1615655406736-b37c4fabf923?w=600&auto=format&fit=crop&q=80",
			Description: "Traditional bell-shaped earrings with metallic thread work and colorful detailing.",
			Featured:    true,
			Stock:       12,
		},
	}
}
