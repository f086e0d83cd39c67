package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kailas-cloud/shopsense/internal/domain"
)

func TestSample(t *testing.T) {
	cat, err := Sample()
	if err != nil {
		t.Fatalf("Sample(): %v", err)
	}
	if cat.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", cat.Len())
	}

	wantOrder := []string{"1", "2", "3"}
	for i, id := range wantOrder {
		p := cat.At(i)
		if p.ID() != id {
			t.Errorf("At(%d).ID() = %q, want %q", i, p.ID(), id)
		}
	}

	hoodie, err := cat.Get("3")
	if err != nil {
		t.Fatal(err)
	}
	if hoodie.Name() != "Casual Hoodie" || hoodie.Category() != "Hoodies" || hoodie.Price() != 39.99 {
		t.Errorf("unexpected hoodie: %s %s %v", hoodie.Name(), hoodie.Category(), hoodie.Price())
	}
	if got := hoodie.Colors(); len(got) != 3 || got[2] != "Navy" {
		t.Errorf("hoodie colors = %v", got)
	}
	if !hoodie.CreatedAt().Equal(time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("hoodie created_at = %v", hoodie.CreatedAt())
	}
	if len(hoodie.Images()) != 2 {
		t.Errorf("hoodie images = %d", len(hoodie.Images()))
	}
}

func TestLoad_EmptyPathIsSample(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 3 {
		t.Errorf("Len() = %d", cat.Len())
	}
}

func TestLoad_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.json")
	body := `{"products":[
		{"id":"a","name":"Red Dress","category":"Dresses","price":59,"stock":3,"colors":["Red"],"created_at":"2024-05-01"},
		{"id":"b","name":"Blue Skirt","category":"Skirts","price":29.5,"stock":0}
	]}`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if cat.Len() != 2 {
		t.Fatalf("Len() = %d", cat.Len())
	}
	dress := cat.At(0)
	if dress.Name() != "Red Dress" || dress.Colors()[0] != "Red" {
		t.Errorf("unexpected first product: %s %v", dress.Name(), dress.Colors())
	}
	if !dress.CreatedAt().Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("created_at = %v", dress.CreatedAt())
	}
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	body := "- id: x\n  name: Wool Sweater\n  category: Sweaters\n  price: 80\n  stock: 4\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	cat, err := Load(path)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if p := cat.At(0); p.ID() != "x" || p.Category() != "Sweaters" {
		t.Errorf("unexpected product %s %s", p.ID(), p.Category())
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"empty list", "[]", domain.ErrEmptyCatalog},
		{"empty wrapper", "products: []", domain.ErrEmptyCatalog},
		{"missing id", "- name: x\n  price: 1\n", domain.ErrInvalidProduct},
		{"negative price", "- id: a\n  name: x\n  price: -1\n", domain.ErrInvalidProduct},
		{"bad date", "- id: a\n  name: x\n  created_at: yesterday\n", domain.ErrInvalidProduct},
		{"duplicate id", "- id: a\n  name: x\n- id: a\n  name: y\n", domain.ErrDuplicateProduct},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.body), YAML)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestParse_Garbage(t *testing.T) {
	if _, err := Parse([]byte("{not json"), JSON); err == nil {
		t.Fatal("expected decode error")
	}
}
