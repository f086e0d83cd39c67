package result

import "github.com/kailas-cloud/shopsense/internal/domain/product"

// Result is a single ranked product.
type Result struct {
	product product.Product
	score   float64
	reason  string
}

// New creates a scored search hit.
func New(p product.Product, score float64) Result {
	return Result{product: p, score: score}
}

// NewRecommendation creates a recommendation carrying the pass rationale.
func NewRecommendation(p product.Product, reason string) Result {
	return Result{product: p, reason: reason}
}

// ID returns the product identifier.
func (r *Result) ID() string { return r.product.ID() }

// Product returns the ranked product.
func (r *Result) Product() product.Product { return r.product }

// Score returns the relevance score in [0,1].
func (r *Result) Score() float64 { return r.score }

// Reason returns the human-readable rationale (recommendations only).
func (r *Result) Reason() string { return r.reason }
