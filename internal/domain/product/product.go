package product

import (
	"fmt"
	"strings"
	"time"
)

// Product is a catalog entry (immutable value object).
type Product struct {
	id          string
	name        string
	description string
	category    string
	subcategory string
	price       float64
	stock       int
	images      []string
	colors      []string
	sizes       []string
	tag         string
	createdAt   time.Time
}

// Attributes carries the optional descriptive fields of a product.
type Attributes struct {
	Description string
	Category    string
	Subcategory string
	Images      []string
	Colors      []string
	Sizes       []string
	Tag         string
	CreatedAt   time.Time
}

// New validates and creates a Product.
// ID and name are required; price and stock must be non-negative.
func New(id, name string, price float64, stock int, attrs Attributes) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, fmt.Errorf("product id is required")
	}
	if strings.TrimSpace(name) == "" {
		return Product{}, fmt.Errorf("product %s: name is required", id)
	}
	if price < 0 {
		return Product{}, fmt.Errorf("product %s: price must be non-negative, got %v", id, price)
	}
	if stock < 0 {
		return Product{}, fmt.Errorf("product %s: stock must be non-negative, got %d", id, stock)
	}

	return Product{
		id:          id,
		name:        name,
		description: attrs.Description,
		category:    attrs.Category,
		subcategory: attrs.Subcategory,
		price:       price,
		stock:       stock,
		images:      cloneStrings(attrs.Images),
		colors:      cloneStrings(attrs.Colors),
		sizes:       cloneStrings(attrs.Sizes),
		tag:         attrs.Tag,
		createdAt:   attrs.CreatedAt,
	}, nil
}

// ID returns the product identifier.
func (p *Product) ID() string { return p.id }

// Name returns the display name.
func (p *Product) Name() string { return p.name }

// Description returns the free-text description.
func (p *Product) Description() string { return p.description }

// Category returns the top-level category.
func (p *Product) Category() string { return p.category }

// Subcategory returns the secondary category.
func (p *Product) Subcategory() string { return p.subcategory }

// Price returns the unit price.
func (p *Product) Price() float64 { return p.price }

// Stock returns the units in stock.
func (p *Product) Stock() int { return p.stock }

// Images returns a copy of the ordered image URLs.
func (p *Product) Images() []string { return cloneStrings(p.images) }

// Colors returns a copy of the available colors.
func (p *Product) Colors() []string { return cloneStrings(p.colors) }

// Sizes returns a copy of the available sizes.
func (p *Product) Sizes() []string { return cloneStrings(p.sizes) }

// Tag returns the merchandising tag (New, Sale, ...).
func (p *Product) Tag() string { return p.tag }

// CreatedAt returns the creation timestamp.
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// PrimaryImage returns the first image URL, or "" when there are none.
func (p *Product) PrimaryImage() string {
	if len(p.images) == 0 {
		return ""
	}
	return p.images[0]
}

// SearchableText joins the fields the catalog index is built from:
// name, description, category, subcategory, colors and sizes.
// Empty fields contribute nothing.
func (p *Product) SearchableText() string {
	return joinNonEmpty(
		p.name, p.description, p.category, p.subcategory,
		strings.Join(p.colors, " "), strings.Join(p.sizes, " "),
	)
}

// ReferenceText is the text used to find products similar to this one.
func (p *Product) ReferenceText() string {
	return joinNonEmpty(p.name, p.description, p.category)
}

// CategoryText is the lowercase category and subcategory, space-joined.
func (p *Product) CategoryText() string {
	return strings.ToLower(p.category + " " + p.subcategory)
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, " ")
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
