package result

import (
	"testing"

	"github.com/kailas-cloud/shopsense/internal/domain/product"
)

func TestNew(t *testing.T) {
	p, err := product.New("3", "Casual Hoodie", 39.99, 75, product.Attributes{Category: "Hoodies"})
	if err != nil {
		t.Fatalf("product.New: %v", err)
	}

	r := New(p, 0.67)
	if r.ID() != "3" {
		t.Errorf("ID() = %q", r.ID())
	}
	if r.Score() != 0.67 {
		t.Errorf("Score() = %f", r.Score())
	}
	if r.Reason() != "" {
		t.Errorf("Reason() = %q, want empty", r.Reason())
	}
	prod := r.Product()
	if prod.Category() != "Hoodies" {
		t.Errorf("Product().Category() = %q", prod.Category())
	}
}

func TestNewRecommendation(t *testing.T) {
	p, err := product.New("2", "Slim Fit Jeans", 49.99, 50, product.Attributes{})
	if err != nil {
		t.Fatalf("product.New: %v", err)
	}

	r := NewRecommendation(p, "Popular choice")
	if r.Reason() != "Popular choice" {
		t.Errorf("Reason() = %q", r.Reason())
	}
	if r.Score() != 0 {
		t.Errorf("Score() = %f, want 0", r.Score())
	}
}
