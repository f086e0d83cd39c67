package recommend

import (
	"github.com/kailas-cloud/shopsense/internal/domain/history"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
	"github.com/kailas-cloud/shopsense/internal/domain/search/result"
)

// Pass rationales.
const (
	ReasonSimilar  = "Similar to what you're viewing"
	ReasonInterest = "Based on your interest in %s"
	ReasonPopular  = "Popular choice"
)

// blend accumulates recommendations, deduplicated by id and capped.
type blend struct {
	limit   int
	seen    map[string]struct{}
	results []result.Result
	sources map[string]int
}

func newBlend(limit int) *blend {
	if limit < 0 {
		limit = 0
	}
	return &blend{
		limit:   limit,
		seen:    make(map[string]struct{}, limit),
		results: make([]result.Result, 0, limit),
		sources: make(map[string]int, 3),
	}
}

func (b *blend) full() bool { return len(b.results) >= b.limit }

// add appends p unless it is already present or the list is full.
func (b *blend) add(p product.Product, reason, source string) bool {
	if b.full() {
		return false
	}
	if _, dup := b.seen[p.ID()]; dup {
		return false
	}
	b.seen[p.ID()] = struct{}{}
	b.results = append(b.results, result.NewRecommendation(p, reason))
	b.sources[source]++
	return true
}

// topCategory returns the most frequent category among viewed or purchased
// products. Ties go to the category encountered first. Events that reference
// unknown products are ignored.
func topCategory(events []history.Event, cat Catalog) (string, bool) {
	counts := make(map[string]int)
	var order []string
	for _, ev := range events {
		if !ev.Type.SignalsAffinity() || ev.ProductID == "" {
			continue
		}
		pos, ok := cat.Position(ev.ProductID)
		if !ok {
			continue
		}
		p := cat.At(pos)
		c := p.Category()
		if _, seen := counts[c]; !seen {
			order = append(order, c)
		}
		counts[c]++
	}

	best, bestN := "", 0
	for _, c := range order {
		if counts[c] > bestN {
			best, bestN = c, counts[c]
		}
	}
	return best, bestN > 0
}
