package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/history"
	"github.com/kailas-cloud/shopsense/internal/domain/search/result"
	"github.com/kailas-cloud/shopsense/internal/index"
	"github.com/kailas-cloud/shopsense/internal/logger"
	"github.com/kailas-cloud/shopsense/internal/metrics"
)

// Config bounds the result list.
type Config struct {
	// MinScore is exclusive: a product must score strictly above it.
	MinScore   float64
	MaxResults int
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{MinScore: 0.1, MaxResults: 5}
}

// Service ranks the catalog against free-text queries.
type Service struct {
	scorer  Scorer
	catalog Catalog
	history Recorder
	cfg     Config
	now     func() time.Time
}

// New creates a search service.
func New(scorer Scorer, catalog Catalog, history Recorder, cfg Config) *Service {
	return &Service{scorer: scorer, catalog: catalog, history: history, cfg: cfg, now: time.Now}
}

// Search validates query, ranks the catalog and records a search event for userID.
// A failed history write is logged; the results are still returned.
func (s *Service) Search(ctx context.Context, userID, query string) (results []result.Result, err error) {
	start := s.now()
	defer func() { metrics.ObservePipeline("search", start, len(results), err) }()

	if err = domain.ValidateQuery(query); err != nil {
		return nil, err
	}

	hits := index.Rank(s.scorer.ScoreText(query), s.cfg.MinScore, s.cfg.MaxResults, s.unknownRow)
	results = make([]result.Result, 0, len(hits))
	for _, h := range hits {
		pos, _ := s.catalog.Position(s.scorer.ID(h.Position))
		results = append(results, result.New(s.catalog.At(pos), h.Score))
	}

	userID = domain.UserIDOrDefault(userID)
	if recErr := s.history.Record(ctx, userID, history.NewQueryEvent(history.Search, query, s.now())); recErr != nil {
		logger.FromContext(ctx).Warn("Search event not recorded",
			zap.String("user_id", userID),
			zap.Error(recErr),
		)
	}

	return results, nil
}

// unknownRow reports rows whose id is absent from the catalog.
func (s *Service) unknownRow(row int) bool {
	_, ok := s.catalog.Position(s.scorer.ID(row))
	return !ok
}
