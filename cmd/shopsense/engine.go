package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/shopsense/internal/config"
	dbBadger "github.com/kailas-cloud/shopsense/internal/db/badger"
	dbRedis "github.com/kailas-cloud/shopsense/internal/db/redis"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
	"github.com/kailas-cloud/shopsense/internal/index"
	"github.com/kailas-cloud/shopsense/internal/intent"
	"github.com/kailas-cloud/shopsense/internal/metrics"
	catalogrepo "github.com/kailas-cloud/shopsense/internal/repository/catalog"
	historyrepo "github.com/kailas-cloud/shopsense/internal/repository/history"
	"github.com/kailas-cloud/shopsense/internal/textnorm"
	chiTransport "github.com/kailas-cloud/shopsense/internal/transport/chi"
	chatuc "github.com/kailas-cloud/shopsense/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/shopsense/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/shopsense/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/shopsense/internal/usecase/search"
	trackuc "github.com/kailas-cloud/shopsense/internal/usecase/track"
)

// engine is the composition root shared by serve and the offline commands.
type engine struct {
	catalog  *product.Catalog
	index    *index.Index
	services chiTransport.Services
	close    func()
}

func buildEngine(ctx context.Context, cfg config.Config, logger *zap.Logger) (*engine, error) {
	cat, err := catalogrepo.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	ix, err := index.FromCatalog(cat, textnorm.New())
	if err != nil {
		return nil, fmt.Errorf("build index: %w", err)
	}
	metrics.ObserveCatalog(ix.Len(), ix.VocabularySize())

	extractor, err := intent.NewExtractor(lexiconTerms(cfg.Intent.Colors), lexiconTerms(cfg.Intent.Categories))
	if err != nil {
		return nil, fmt.Errorf("build intent lexicons: %w", err)
	}

	hist, closeHistory, err := openHistory(ctx, cfg.History, logger)
	if err != nil {
		return nil, err
	}

	r := cfg.Ranking
	return &engine{
		catalog: cat,
		index:   ix,
		services: chiTransport.Services{
			Search: searchuc.New(ix, cat, hist, searchuc.Config{
				MinScore:   r.SearchMinScore,
				MaxResults: r.MaxResults,
			}),
			Recommend: recommenduc.New(ix, cat, hist, recommenduc.Config{
				SimilarMinScore: r.SimilarMinScore,
				MaxResults:      r.MaxRecommendations,
				MaxHistoryPicks: r.MaxHistoryPicks,
			}),
			Track: trackuc.New(hist),
			Chat: chatuc.New(ix, cat, extractor, hist, chatuc.Config{
				MinScore:   r.SearchMinScore,
				Penalty:    r.AttributePenalty,
				MaxResults: r.MaxResults,
			}),
			Health: healthuc.New(hist, ix),
		},
		close: closeHistory,
	}, nil
}

// openHistory builds the configured history backend wrapped with metrics.
func openHistory(ctx context.Context, cfg config.HistoryConfig, logger *zap.Logger) (historyrepo.Store, func(), error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return historyrepo.NewInstrumented(historyrepo.NewMemory(), config.DriverMemory, logger), func() {}, nil

	case config.DriverRedis, config.DriverValkey:
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Password: cfg.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
		}
		if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("%s not ready: %w", cfg.Driver, err)
		}
		logger.Info("Connected to history backend", zap.String("driver", cfg.Driver), zap.Strings("addrs", cfg.Addrs))
		return historyrepo.NewInstrumented(historyrepo.New(store, cfg.KeyPrefix), cfg.Driver, logger), store.Close, nil

	case config.DriverBadger:
		store, err := dbBadger.NewStore(dbBadger.Config{Path: cfg.Path})
		if err != nil {
			return nil, nil, fmt.Errorf("open badger store: %w", err)
		}
		logger.Info("Opened history backend", zap.String("driver", cfg.Driver), zap.String("path", cfg.Path))
		return historyrepo.NewInstrumented(historyrepo.New(store, cfg.KeyPrefix), cfg.Driver, logger), store.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown history driver %q", cfg.Driver)
	}
}

func lexiconTerms(in []config.LexiconTerm) []intent.Term {
	if len(in) == 0 {
		return nil
	}
	out := make([]intent.Term, len(in))
	for i, t := range in {
		out[i] = intent.Term{Canonical: t.Canonical, Synonyms: t.Synonyms}
	}
	return out
}
