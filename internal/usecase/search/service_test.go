package search

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/history"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
	"github.com/kailas-cloud/shopsense/internal/domain/search/result"
	"github.com/kailas-cloud/shopsense/internal/index"
	"github.com/kailas-cloud/shopsense/internal/repository/catalog"
	"github.com/kailas-cloud/shopsense/internal/textnorm"
)

// --- Mocks ---

type recorded struct {
	userID string
	event  history.Event
}

type mockRecorder struct {
	mu     sync.Mutex
	events []recorded
	err    error
}

func (m *mockRecorder) Record(_ context.Context, userID string, ev history.Event) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, recorded{userID: userID, event: ev})
	return nil
}

// --- Fixtures ---

func sampleService(t *testing.T, rec Recorder) *Service {
	t.Helper()
	cat, err := catalog.Sample()
	if err != nil {
		t.Fatal(err)
	}
	ix, err := index.FromCatalog(cat, textnorm.New())
	if err != nil {
		t.Fatal(err)
	}
	return New(ix, cat, rec, DefaultConfig())
}

// --- Tests ---

func TestSearch_RanksRelevantProduct(t *testing.T) {
	svc := sampleService(t, &mockRecorder{})

	results, err := svc.Search(context.Background(), "u1", "white t-shirt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) == 0 || results[0].ID() != "1" {
		t.Fatalf("expected product 1 first, got %v", ids(results))
	}
}

func TestSearch_ResultInvariants(t *testing.T) {
	svc := sampleService(t, &mockRecorder{})
	for _, q := range []string{"hoodie", "black", "comfortable cotton", "slim fit jeans", "wear"} {
		results, err := svc.Search(context.Background(), "", q)
		if err != nil {
			t.Fatalf("%q: %v", q, err)
		}
		if len(results) > 5 {
			t.Errorf("%q: %d results exceed cap", q, len(results))
		}
		for i, r := range results {
			if r.Score() <= 0.1 || r.Score() > 1 {
				t.Errorf("%q: score %v out of (0.1, 1]", q, r.Score())
			}
			if i > 0 && r.Score() > results[i-1].Score() {
				t.Errorf("%q: not descending at %d", q, i)
			}
		}
	}
}

func TestSearch_Idempotent(t *testing.T) {
	svc := sampleService(t, &mockRecorder{})
	a, _ := svc.Search(context.Background(), "u", "casual black")
	b, _ := svc.Search(context.Background(), "u", "casual black")
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID() != b[i].ID() || a[i].Score() != b[i].Score() {
			t.Errorf("result %d differs", i)
		}
	}
}

func TestSearch_RecordsEvent(t *testing.T) {
	rec := &mockRecorder{}
	svc := sampleService(t, rec)

	if _, err := svc.Search(context.Background(), "", "zzz unknown"); err != nil {
		t.Fatal(err)
	}
	if len(rec.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(rec.events))
	}
	got := rec.events[0]
	if got.userID != domain.DefaultUserID {
		t.Errorf("userID = %q, want %q", got.userID, domain.DefaultUserID)
	}
	if got.event.Type != history.Search || got.event.Query != "zzz unknown" {
		t.Errorf("event = %+v", got.event)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	rec := &mockRecorder{}
	svc := sampleService(t, rec)

	for _, q := range []string{"", "   "} {
		_, err := svc.Search(context.Background(), "u1", q)
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Search(%q) err = %v, want ErrValidation", q, err)
		}
	}
	if len(rec.events) != 0 {
		t.Errorf("rejected queries recorded %d events", len(rec.events))
	}
}

func TestSearch_RecorderFailureStillReturnsResults(t *testing.T) {
	svc := sampleService(t, &mockRecorder{err: errors.New("store down")})

	results, err := svc.Search(context.Background(), "u1", "hoodie")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].ID() != "3" {
		t.Errorf("results = %v", ids(results))
	}
}

func TestSearch_CapAndTies(t *testing.T) {
	var products []product.Product
	for _, id := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		p, err := product.New(id, "Red Scarf", 10, 1, product.Attributes{})
		if err != nil {
			t.Fatal(err)
		}
		products = append(products, p)
	}
	cat, err := product.NewCatalog(products)
	if err != nil {
		t.Fatal(err)
	}
	ix, err := index.FromCatalog(cat, textnorm.New())
	if err != nil {
		t.Fatal(err)
	}

	svc := New(ix, cat, &mockRecorder{}, DefaultConfig())
	results, err := svc.Search(context.Background(), "u", "red scarf")
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", "b", "c", "d", "e"}
	if got := ids(results); !equal(got, want) {
		t.Errorf("ids = %v, want %v (catalog order on ties)", got, want)
	}
}

func TestSearch_RowsResolvedByID(t *testing.T) {
	cat, err := catalog.Sample()
	if err != nil {
		t.Fatal(err)
	}
	// Rows in reverse catalog order plus one row with no catalog entry.
	all := cat.All()
	docs := []index.Document{{ID: "ghost", Text: "casual hoodie hoodie"}}
	for i := len(all) - 1; i >= 0; i-- {
		docs = append(docs, index.Document{ID: all[i].ID(), Text: all[i].SearchableText()})
	}
	ix, err := index.Build(docs, textnorm.New())
	if err != nil {
		t.Fatal(err)
	}

	svc := New(ix, cat, &mockRecorder{}, DefaultConfig())
	tests := []struct {
		query string
		want  string
	}{
		{"hoodie", "3"},
		{"slim jeans", "2"},
		{"white t-shirt", "1"},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			results, err := svc.Search(context.Background(), "u", tc.query)
			if err != nil {
				t.Fatal(err)
			}
			if len(results) == 0 || results[0].ID() != tc.want {
				t.Fatalf("ids = %v, want %s first", ids(results), tc.want)
			}
			for i := range results {
				if results[i].ID() == "ghost" {
					t.Error("row without catalog entry returned")
				}
				if p := results[i].Product(); p.ID() != results[i].ID() {
					t.Errorf("result %d carries product %s", i, p.ID())
				}
			}
		})
	}
}

func ids(rs []result.Result) []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].ID()
	}
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
