package chat

import (
	"context"

	"github.com/kailas-cloud/shopsense/internal/domain/history"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
	"github.com/kailas-cloud/shopsense/internal/intent"
)

// Scorer scores free text against every index row, in row order.
type Scorer interface {
	ScoreText(text string) []float64
	// ID returns the product id stored for a row.
	ID(row int) string
}

// Catalog resolves product ids to products.
type Catalog interface {
	Position(id string) (int, bool)
	At(i int) product.Product
}

// Extractor detects colors and categories in free text.
type Extractor interface {
	Extract(text string) intent.Intent
}

// Recorder appends events to a user's history.
type Recorder interface {
	Record(ctx context.Context, userID string, ev history.Event) error
}
