// Package recommend blends content similarity, category affinity from user
// history and a popularity fallback into one bounded list.
package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/search/result"
	"github.com/kailas-cloud/shopsense/internal/index"
	"github.com/kailas-cloud/shopsense/internal/metrics"
)

// Config bounds each pass.
type Config struct {
	// SimilarMinScore is exclusive.
	SimilarMinScore float64
	MaxResults      int
	MaxHistoryPicks int
}

// DefaultConfig returns the stock limits.
func DefaultConfig() Config {
	return Config{SimilarMinScore: 0.2, MaxResults: 5, MaxHistoryPicks: 3}
}

// Service produces recommendations.
type Service struct {
	scorer  Scorer
	catalog Catalog
	history HistoryReader
	cfg     Config
}

// New creates a recommendation service.
func New(scorer Scorer, catalog Catalog, history HistoryReader, cfg Config) *Service {
	return &Service{scorer: scorer, catalog: catalog, history: history, cfg: cfg}
}

// Recommend runs the content, history and popularity passes in that order.
// productID is optional; an unknown id skips the content pass.
func (s *Service) Recommend(ctx context.Context, userID, productID string) (results []result.Result, err error) {
	start := time.Now()
	defer func() { metrics.ObservePipeline("recommend", start, len(results), err) }()

	b := newBlend(s.cfg.MaxResults)

	current := -1
	if productID != "" {
		if pos, ok := s.catalog.Position(productID); ok {
			current = pos
		}
	}
	if current >= 0 {
		s.similar(b, current)
	}

	events, err := s.history.Read(ctx, domain.UserIDOrDefault(userID))
	if err != nil {
		return nil, fmt.Errorf("read history: %w", err)
	}
	if category, ok := topCategory(events, s.catalog); ok {
		s.affinity(b, category, current)
	}

	s.popular(b, current)

	for source, n := range b.sources {
		metrics.RecommendationsTotal.WithLabelValues(source).Add(float64(n))
	}
	return b.results, nil
}

// similar ranks index rows against the current product. Rows are mapped to
// catalog entries by id; the current product and unknown ids are skipped.
func (s *Service) similar(b *blend, current int) {
	ref := s.catalog.At(current)
	scores := s.scorer.ScoreText(ref.ReferenceText())
	skip := func(row int) bool {
		pos, ok := s.catalog.Position(s.scorer.ID(row))
		return !ok || pos == current
	}
	for _, h := range index.Rank(scores, s.cfg.SimilarMinScore, s.cfg.MaxResults, skip) {
		pos, _ := s.catalog.Position(s.scorer.ID(h.Position))
		b.add(s.catalog.At(pos), ReasonSimilar, "content")
	}
}

// affinity considers the first MaxHistoryPicks products of category in
// catalog order; already-recommended ones are skipped, not replaced.
func (s *Service) affinity(b *blend, category string, current int) {
	reason := fmt.Sprintf(ReasonInterest, category)
	picked := 0
	for i := 0; i < s.catalog.Len() && picked < s.cfg.MaxHistoryPicks; i++ {
		if i == current {
			continue
		}
		p := s.catalog.At(i)
		if p.Category() != category {
			continue
		}
		picked++
		b.add(p, reason, "history")
	}
}

func (s *Service) popular(b *blend, current int) {
	for i := 0; i < s.catalog.Len() && !b.full(); i++ {
		if i == current {
			continue
		}
		b.add(s.catalog.At(i), ReasonPopular, "popular")
	}
}
