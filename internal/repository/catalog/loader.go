// Package catalog loads the product catalog from YAML or JSON files.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
)

//go:embed sample.yaml
var sampleData []byte

// Format selects the decoder for a catalog document.
type Format int

// Supported catalog encodings.
const (
	YAML Format = iota
	JSON
)

// productRow is the on-disk representation of a product.
type productRow struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Category    string   `yaml:"category" json:"category"`
	Subcategory string   `yaml:"subcategory" json:"subcategory"`
	Price       float64  `yaml:"price" json:"price"`
	Stock       int      `yaml:"stock" json:"stock"`
	Images      []string `yaml:"images" json:"images"`
	Colors      []string `yaml:"colors" json:"colors"`
	Sizes       []string `yaml:"sizes" json:"sizes"`
	Tag         string   `yaml:"tag" json:"tag"`
	CreatedAt   string   `yaml:"created_at" json:"created_at"`
}

// wrapped accepts documents of the form {products: [...]}.
type wrapped struct {
	Products []productRow `yaml:"products" json:"products"`
}

// Sample returns the built-in three-product catalog.
func Sample() (*product.Catalog, error) {
	return Parse(sampleData, YAML)
}

// Load reads a catalog file. An empty path yields the built-in sample.
// Files ending in .json are decoded as JSON, everything else as YAML.
func Load(path string) (*product.Catalog, error) {
	if path == "" {
		return Sample()
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator config
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	format := YAML
	if strings.EqualFold(filepath.Ext(path), ".json") {
		format = JSON
	}

	cat, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return cat, nil
}

// Parse decodes a catalog document (a product list, or an object with a
// "products" list) and validates every entry. Zero products is an error.
func Parse(data []byte, format Format) (*product.Catalog, error) {
	rows, err := decode(data, format)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	products := make([]product.Product, 0, len(rows))
	for i, r := range rows {
		p, err := rowToProduct(r)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", domain.ErrInvalidProduct, i, err)
		}
		products = append(products, p)
	}
	return product.NewCatalog(products)
}

func decode(data []byte, format Format) ([]productRow, error) {
	unmarshal := yaml.Unmarshal
	if format == JSON {
		unmarshal = json.Unmarshal
	}

	var rows []productRow
	listErr := unmarshal(data, &rows)
	if listErr == nil {
		return rows, nil
	}

	var w wrapped
	if err := unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", listErr)
	}
	return w.Products, nil
}

func rowToProduct(r productRow) (product.Product, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return product.Product{}, fmt.Errorf("product %s: created_at: %w", r.ID, err)
	}
	return product.New(r.ID, r.Name, r.Price, r.Stock, product.Attributes{
		Description: r.Description,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Images:      r.Images,
		Colors:      r.Colors,
		Sizes:       r.Sizes,
		Tag:         r.Tag,
		CreatedAt:   createdAt,
	})
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse(time.DateOnly, s)
}
