package shopsense

import (
	"context"
	"fmt"
	"time"

	dbBadger "github.com/kailas-cloud/shopsense/internal/db/badger"
	dbRedis "github.com/kailas-cloud/shopsense/internal/db/redis"
	"github.com/kailas-cloud/shopsense/internal/domain"
	"github.com/kailas-cloud/shopsense/internal/domain/product"
	"github.com/kailas-cloud/shopsense/internal/domain/search/result"
	"github.com/kailas-cloud/shopsense/internal/index"
	"github.com/kailas-cloud/shopsense/internal/intent"
	catalogrepo "github.com/kailas-cloud/shopsense/internal/repository/catalog"
	historyrepo "github.com/kailas-cloud/shopsense/internal/repository/history"
	"github.com/kailas-cloud/shopsense/internal/textnorm"
	chatuc "github.com/kailas-cloud/shopsense/internal/usecase/chat"
	healthuc "github.com/kailas-cloud/shopsense/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/shopsense/internal/usecase/recommend"
	searchuc "github.com/kailas-cloud/shopsense/internal/usecase/search"
	trackuc "github.com/kailas-cloud/shopsense/internal/usecase/track"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces for substitution in tests.
type searchUseCase interface {
	Search(ctx context.Context, userID, query string) ([]result.Result, error)
}

type recommendUseCase interface {
	Recommend(ctx context.Context, userID, productID string) ([]result.Result, error)
}

type trackUseCase interface {
	Track(ctx context.Context, userID, eventType, productID string) error
}

type chatUseCase interface {
	Chat(ctx context.Context, userID, query string) (chatuc.Reply, error)
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}

// Client is the shopsense SDK entry point. It is safe for concurrent use.
type Client struct {
	catalog      *product.Catalog
	searchSvc    searchUseCase
	recommendSvc recommendUseCase
	trackSvc     trackUseCase
	chatSvc      chatUseCase
	healthSvc    healthUseCase
	closeFn      func()
	obs          *observer
}

// New indexes the catalog and connects the history backend.
// The provided context is used for the backend readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o.apply(cfg)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}
	ix, err := index.FromCatalog(cat, textnorm.New())
	if err != nil {
		return nil, fmt.Errorf("shopsense: build index: %w", err)
	}
	extractor, err := intent.NewExtractor(terms(cfg.colors), terms(cfg.categories))
	if err != nil {
		return nil, fmt.Errorf("shopsense: build lexicons: %w", err)
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	hist, closeFn, err := openHistory(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Client{
		catalog: cat,
		searchSvc: searchuc.New(ix, cat, hist, searchuc.Config{
			MinScore:   cfg.searchMinScore,
			MaxResults: cfg.maxResults,
		}),
		recommendSvc: recommenduc.New(ix, cat, hist, recommenduc.Config{
			SimilarMinScore: cfg.similarMinScore,
			MaxResults:      cfg.maxRecommendations,
			MaxHistoryPicks: cfg.maxHistoryPicks,
		}),
		trackSvc: trackuc.New(hist),
		chatSvc: chatuc.New(ix, cat, extractor, hist, chatuc.Config{
			MinScore:   cfg.searchMinScore,
			Penalty:    cfg.attributePenalty,
			MaxResults: cfg.maxResults,
		}),
		healthSvc: healthuc.New(hist, ix),
		closeFn:   closeFn,
		obs:       obs,
	}, nil
}

func loadCatalog(cfg *clientConfig) (*product.Catalog, error) {
	if cfg.products == nil {
		cat, err := catalogrepo.Load(cfg.catalogPath)
		if err != nil {
			return nil, fmt.Errorf("shopsense: load catalog: %w", err)
		}
		return cat, nil
	}

	if len(cfg.products) == 0 {
		return nil, fmt.Errorf("shopsense: %w", domain.ErrEmptyCatalog)
	}
	products := make([]product.Product, 0, len(cfg.products))
	for i, p := range cfg.products {
		dp, err := product.New(p.ID, p.Name, p.Price, p.Stock, product.Attributes{
			Description: p.Description,
			Category:    p.Category,
			Subcategory: p.Subcategory,
			Images:      p.Images,
			Colors:      p.Colors,
			Sizes:       p.Sizes,
			Tag:         p.Tag,
			CreatedAt:   p.CreatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("shopsense: product %d: %w", i, err)
		}
		products = append(products, dp)
	}
	cat, err := product.NewCatalog(products)
	if err != nil {
		return nil, fmt.Errorf("shopsense: %w", err)
	}
	return cat, nil
}

func openHistory(ctx context.Context, cfg *clientConfig) (historyrepo.Store, func(), error) {
	switch cfg.driver {
	case "memory":
		return historyrepo.NewMemory(), func() {}, nil
	case "redis", "valkey":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("shopsense: create %s store: %w", cfg.driver, err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, nil, fmt.Errorf("shopsense: %s not ready: %w", cfg.driver, err)
		}
		return historyrepo.New(s, cfg.keyPrefix), s.Close, nil
	case "badger":
		s, err := dbBadger.NewStore(dbBadger.Config{Path: cfg.badgerPath})
		if err != nil {
			return nil, nil, fmt.Errorf("shopsense: open badger store: %w", err)
		}
		return historyrepo.New(s, cfg.keyPrefix), s.Close, nil
	default:
		return nil, nil, fmt.Errorf("shopsense: unknown history driver %q", cfg.driver)
	}
}

func terms(in []Term) []intent.Term {
	if in == nil {
		return nil
	}
	out := make([]intent.Term, len(in))
	for i, t := range in {
		out[i] = intent.Term{Canonical: t.Canonical, Synonyms: t.Synonyms}
	}
	return out
}

// Close releases the history backend.
func (c *Client) Close() {
	if c.closeFn != nil {
		c.closeFn()
	}
}

// Search ranks the catalog against query and records the search for userID.
func (c *Client) Search(ctx context.Context, userID, query string) (out []SearchResult, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", start, len(out), err) }()

	results, err := c.searchSvc.Search(ctx, userID, query)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return toSearchResults(results), nil
}

// Recommend blends similar, history-based and popular products.
// productID is the product being viewed and may be empty.
func (c *Client) Recommend(ctx context.Context, userID, productID string) (out []Recommendation, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recommend", start, len(out), err) }()

	results, err := c.recommendSvc.Recommend(ctx, userID, productID)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	out = make([]Recommendation, len(results))
	for i := range results {
		p := results[i].Product()
		out[i] = Recommendation{
			ID:       p.ID(),
			Name:     p.Name(),
			Category: p.Category(),
			Price:    p.Price(),
			Image:    p.PrimaryImage(),
			Reason:   results[i].Reason(),
		}
	}
	return out, nil
}

// Track records an interaction. Both eventType and productID are required.
func (c *Client) Track(ctx context.Context, userID string, eventType EventType, productID string) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("track", start, -1, err) }()

	if err = c.trackSvc.Track(ctx, userID, string(eventType), productID); err != nil {
		return fmt.Errorf("track: %w", err)
	}
	return nil
}

// Chat answers a shopping request, favoring products that match the colors
// and categories it mentions.
func (c *Client) Chat(ctx context.Context, userID, query string) (reply ChatReply, err error) {
	start := time.Now()
	defer func() { c.obs.observe("chat", start, len(reply.Products), err) }()

	r, err := c.chatSvc.Chat(ctx, userID, query)
	if err != nil {
		return ChatReply{}, fmt.Errorf("chat: %w", err)
	}
	return ChatReply{Message: r.Message, Products: toSearchResults(r.Results)}, nil
}

// Product returns one catalog entry.
func (c *Client) Product(id string) (Product, error) {
	p, err := c.catalog.Get(id)
	if err != nil {
		return Product{}, err
	}
	return fromDomain(&p), nil
}

// Products lists the catalog in order, optionally restricted to one category.
func (c *Client) Products(category string) []Product {
	products := c.catalog.All()
	if category != "" {
		products = c.catalog.ByCategory(category)
	}
	out := make([]Product, len(products))
	for i := range products {
		out[i] = fromDomain(&products[i])
	}
	return out
}

func toSearchResults(results []result.Result) []SearchResult {
	out := make([]SearchResult, len(results))
	for i := range results {
		p := results[i].Product()
		out[i] = SearchResult{
			ID:       p.ID(),
			Name:     p.Name(),
			Category: p.Category(),
			Price:    p.Price(),
			Image:    p.PrimaryImage(),
			Score:    results[i].Score(),
			Colors:   p.Colors(),
			Sizes:    p.Sizes(),
		}
	}
	return out
}

func fromDomain(p *product.Product) Product {
	return Product{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Category:    p.Category(),
		Subcategory: p.Subcategory(),
		Price:       p.Price(),
		Stock:       p.Stock(),
		Images:      p.Images(),
		Colors:      p.Colors(),
		Sizes:       p.Sizes(),
		Tag:         p.Tag(),
		CreatedAt:   p.CreatedAt(),
	}
}
