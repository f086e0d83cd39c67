// Package chat answers conversational product queries by combining text
// relevance with detected color and category intent.
package chat

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/history"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
	"github.com/kailas-cloud/shopsense/internal/domain/search/result"
	"github.com/kailas-cloud/shopsense/internal/index"
	"github.com/kailas-cloud/shopsense/internal/intent"
	"github.com/kailas-cloud/shopsense/internal/logger"
	"github.com/kailas-cloud/shopsense/internal/metrics"
)

// Config tunes attribute re-weighting.
type Config struct {
	MinScore float64
	// Penalty multiplies a product's score once per mismatched attribute kind.
	Penalty    float64
	MaxResults int
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{MinScore: 0.1, Penalty: 0.3, MaxResults: 5}
}

// Reply is the chatbot answer.
type Reply struct {
	Message string
	Results []result.Result
}

// Service handles chatbot queries.
type Service struct {
	scorer    Scorer
	catalog   Catalog
	extractor Extractor
	history   Recorder
	cfg       Config
	now       func() time.Time
}

// New creates a chat service.
func New(scorer Scorer, catalog Catalog, extractor Extractor, history Recorder, cfg Config) *Service {
	return &Service{
		scorer:    scorer,
		catalog:   catalog,
		extractor: extractor,
		history:   history,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Chat scores query, penalizes products that miss a detected color or
// category, and records a chatbot event for userID.
func (s *Service) Chat(ctx context.Context, userID, query string) (reply Reply, err error) {
	start := s.now()
	defer func() { metrics.ObservePipeline("chatbot", start, len(reply.Results), err) }()

	if err = domain.ValidateQuery(query); err != nil {
		return Reply{}, err
	}

	scores := s.scorer.ScoreText(query)
	in := s.extractor.Extract(query)
	s.adjust(scores, in)

	hits := index.Rank(scores, s.cfg.MinScore, s.cfg.MaxResults, func(row int) bool {
		_, ok := s.product(row)
		return !ok
	})
	results := make([]result.Result, 0, len(hits))
	for _, h := range hits {
		p, _ := s.product(h.Position)
		results = append(results, result.New(p, h.Score))
	}

	userID = domain.UserIDOrDefault(userID)
	if recErr := s.history.Record(ctx, userID, history.NewQueryEvent(history.Chatbot, query, s.now())); recErr != nil {
		logger.FromContext(ctx).Warn("Chatbot event not recorded",
			zap.String("user_id", userID),
			zap.Error(recErr),
		)
	}

	return Reply{Message: compose(in, len(results)), Results: results}, nil
}

// product resolves an index row to its catalog entry by id.
func (s *Service) product(row int) (product.Product, bool) {
	pos, ok := s.catalog.Position(s.scorer.ID(row))
	if !ok {
		return product.Product{}, false
	}
	return s.catalog.At(pos), true
}

// adjust applies the attribute penalty in place. Rows absent from the catalog score 0.
func (s *Service) adjust(scores []float64, in intent.Intent) {
	for i := range scores {
		p, ok := s.product(i)
		if !ok {
			scores[i] = 0
			continue
		}
		if in.HasColors() && !in.MatchesColors(p.Colors()) {
			scores[i] *= s.cfg.Penalty
		}
		if in.HasCategories() && !in.MatchesCategoryText(p.CategoryText()) {
			scores[i] *= s.cfg.Penalty
		}
	}
}
