package product

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/shopsense/internal/domain"
)

func mustNew(t *testing.T, id, name string, attrs Attributes) Product {
	t.Helper()
	p, err := New(id, name, 10, 1, attrs)
	if err != nil {
		t.Fatalf("New(%s): %v", id, err)
	}
	return p
}

func TestNew_Valid(t *testing.T) {
	p, err := New("1", "Classic White T-Shirt", 19.99, 100, Attributes{
		Description: "A comfortable white t-shirt.",
		Category:    "T-Shirts",
		Subcategory: "Basics",
		Images:      []string{"a.jpg", "b.jpg"},
		Colors:      []string{"White", "Black"},
		Sizes:       []string{"S", "M"},
		Tag:         "New",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ID() != "1" || p.Name() != "Classic White T-Shirt" {
		t.Errorf("unexpected identity: %q %q", p.ID(), p.Name())
	}
	if p.PrimaryImage() != "a.jpg" {
		t.Errorf("PrimaryImage() = %q", p.PrimaryImage())
	}
	if p.Price() != 19.99 || p.Stock() != 100 {
		t.Errorf("price/stock = %v/%d", p.Price(), p.Stock())
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		pname string
		price float64
		stock int
	}{
		{"empty id", "", "x", 1, 1},
		{"blank id", "  ", "x", 1, 1},
		{"empty name", "1", "", 1, 1},
		{"negative price", "1", "x", -0.01, 1},
		{"negative stock", "1", "x", 1, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.id, tc.pname, tc.price, tc.stock, Attributes{}); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestNew_ClonesSlices(t *testing.T) {
	colors := []string{"Red"}
	p := mustNew(t, "1", "x", Attributes{Colors: colors})
	colors[0] = "mutated"
	if p.Colors()[0] != "Red" {
		t.Error("colors mutation leaked into product")
	}
}

func TestAccessors_ReturnCopies(t *testing.T) {
	p := mustNew(t, "1", "x", Attributes{
		Images: []string{"a.jpg"},
		Colors: []string{"Red"},
		Sizes:  []string{"M"},
	})

	p.Images()[0] = "evil.jpg"
	p.Colors()[0] = "Green"
	p.Sizes()[0] = "XXL"

	if got := p.Images()[0]; got != "a.jpg" {
		t.Errorf("Images()[0] = %q after caller mutation", got)
	}
	if got := p.Colors()[0]; got != "Red" {
		t.Errorf("Colors()[0] = %q after caller mutation", got)
	}
	if got := p.Sizes()[0]; got != "M" {
		t.Errorf("Sizes()[0] = %q after caller mutation", got)
	}
	if got := p.PrimaryImage(); got != "a.jpg" {
		t.Errorf("PrimaryImage() = %q after caller mutation", got)
	}
}

func TestAccessors_CatalogSharedProduct(t *testing.T) {
	cat, err := NewCatalog([]Product{mustNew(t, "1", "x", Attributes{Colors: []string{"Red"}})})
	if err != nil {
		t.Fatal(err)
	}
	first := cat.At(0)
	first.Colors()[0] = "Blue"

	second := cat.At(0)
	if got := second.Colors()[0]; got != "Red" {
		t.Errorf("catalog product colors = %q after caller mutation", got)
	}
}

func TestSearchableText(t *testing.T) {
	p := mustNew(t, "1", "Casual Hoodie", Attributes{
		Description: "Warm.",
		Category:    "Hoodies",
		Subcategory: "Casual",
		Colors:      []string{"Gray", "Navy"},
		Sizes:       []string{"M", "L"},
	})
	want := "Casual Hoodie Warm. Hoodies Casual Gray Navy M L"
	if got := p.SearchableText(); got != want {
		t.Errorf("SearchableText() = %q, want %q", got, want)
	}

	bare := mustNew(t, "2", "Plain", Attributes{})
	if got := bare.SearchableText(); got != "Plain" {
		t.Errorf("SearchableText() with missing fields = %q", got)
	}
	if got := bare.PrimaryImage(); got != "" {
		t.Errorf("PrimaryImage() without images = %q", got)
	}
}

func TestReferenceAndCategoryText(t *testing.T) {
	p := mustNew(t, "1", "Slim Fit Jeans", Attributes{
		Description: "Stylish.",
		Category:    "Jeans",
		Subcategory: "Slim Fit",
	})
	if got := p.ReferenceText(); got != "Slim Fit Jeans Stylish. Jeans" {
		t.Errorf("ReferenceText() = %q", got)
	}
	if got := p.CategoryText(); got != "jeans slim fit" {
		t.Errorf("CategoryText() = %q", got)
	}
}

func TestNewCatalog(t *testing.T) {
	a := mustNew(t, "a", "A", Attributes{Category: "Jeans"})
	b := mustNew(t, "b", "B", Attributes{Category: "Hoodies"})
	c := mustNew(t, "c", "C", Attributes{Category: "Jeans"})

	cat, err := NewCatalog([]Product{a, b, c})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() != 3 {
		t.Fatalf("Len() = %d", cat.Len())
	}
	if pos, ok := cat.Position("b"); !ok || pos != 1 {
		t.Errorf("Position(b) = %d, %v", pos, ok)
	}
	if _, ok := cat.Position("zzz"); ok {
		t.Error("Position(zzz) should be absent")
	}
	if _, err := cat.Get("zzz"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Errorf("Get(zzz) err = %v, want ErrProductNotFound", err)
	}

	jeans := cat.ByCategory("Jeans")
	if len(jeans) != 2 || jeans[0].ID() != "a" || jeans[1].ID() != "c" {
		t.Errorf("ByCategory(Jeans) = %v", jeans)
	}
}

func TestNewCatalog_DuplicateID(t *testing.T) {
	a := mustNew(t, "a", "A", Attributes{})
	_, err := NewCatalog([]Product{a, a})
	if !errors.Is(err, domain.ErrDuplicateProduct) {
		t.Fatalf("err = %v, want ErrDuplicateProduct", err)
	}
}

func TestNewCatalog_ZeroValueProduct(t *testing.T) {
	_, err := NewCatalog([]Product{{}})
	if !errors.Is(err, domain.ErrInvalidProduct) {
		t.Fatalf("err = %v, want ErrInvalidProduct", err)
	}
}
