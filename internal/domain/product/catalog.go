package product

import (
	"fmt"

	"github.com/kailas-cloud/shopsense/internal/domain"
)

// Catalog is the ordered, immutable product list.
// Position i refers to the same product for the lifetime of the catalog.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// NewCatalog validates id uniqueness and freezes the order.
func NewCatalog(products []Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		if p.id == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", domain.ErrInvalidProduct, i)
		}
		if prev, ok := c.byID[p.id]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", domain.ErrDuplicateProduct, p.id, prev, i)
		}
		c.byID[p.id] = i
		c.products[i] = p
	}
	return c, nil
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// At returns the product at position i.
func (c *Catalog) At(i int) Product { return c.products[i] }

// Position resolves a product id to its catalog position.
func (c *Catalog) Position(id string) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Get returns the product with the given id.
func (c *Catalog) Get(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return c.products[i], nil
}

// All returns a copy of the products in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByCategory returns products whose category equals category, in catalog order.
func (c *Catalog) ByCategory(category string) []Product {
	var out []Product
	for _, p := range c.products {
		if p.category == category {
			out = append(out, p)
		}
	}
	return out
}
