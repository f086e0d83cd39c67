package recommend

import (
	"context"

	"github.com/kailas-cloud/shopsense/internal/domain/history"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
)

// Scorer scores free text against every index row, in row order.
type Scorer interface {
	ScoreText(text string) []float64
	// ID returns the product id stored for a row.
	ID(row int) string
}

// Catalog is the ordered product list.
type Catalog interface {
	Len() int
	At(i int) product.Product
	Position(id string) (int, bool)
}

// HistoryReader returns a user's events in insertion order.
type HistoryReader interface {
	Read(ctx context.Context, userID string) ([]history.Event, error)
}
