package shopsense

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	catalogPath string
	products    []Product

	driver     string // "memory", "redis", "valkey" or "badger"
	addrs      []string
	password   string
	badgerPath string
	keyPrefix  string

	searchMinScore     float64
	similarMinScore    float64
	attributePenalty   float64
	maxResults         int
	maxRecommendations int
	maxHistoryPicks    int

	colors     []Term
	categories []Term

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		driver:             "memory",
		searchMinScore:     0.1,
		similarMinScore:    0.2,
		attributePenalty:   0.3,
		maxResults:         5,
		maxRecommendations: 5,
		maxHistoryPicks:    3,
	}
}

// WithCatalogFile loads products from a YAML or JSON file.
// Without a catalog option the built-in sample catalog is used.
func WithCatalogFile(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.catalogPath = path
	})
}

// WithProducts indexes the given products in order. Takes precedence over WithCatalogFile.
func WithProducts(products []Product) Option {
	return optionFunc(func(c *clientConfig) {
		c.products = products
	})
}

// WithRedis stores user history in Redis lists.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "redis"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithValkey stores user history in Valkey lists.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "valkey"
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithBadger stores user history in an embedded Badger database at dir.
// An empty dir keeps the database in memory.
func WithBadger(dir string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = "badger"
		c.badgerPath = dir
	})
}

// WithHistoryPrefix sets the key prefix for Redis, Valkey and Badger history lists.
// Default: "shopsense:history:".
func WithHistoryPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithThresholds sets the exclusive minimum scores for search/chat hits and
// for content-based recommendations. Defaults: 0.1 and 0.2.
func WithThresholds(search, similar float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.searchMinScore = search
		c.similarMinScore = similar
	})
}

// WithAttributePenalty sets the chat score multiplier applied per mismatched
// attribute kind. Default: 0.3.
func WithAttributePenalty(p float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.attributePenalty = p
	})
}

// WithLimits sets the result caps: search/chat results, recommendations and
// history picks. Defaults: 5, 5, 3.
func WithLimits(results, recommendations, historyPicks int) Option {
	return optionFunc(func(c *clientConfig) {
		c.maxResults = results
		c.maxRecommendations = recommendations
		c.maxHistoryPicks = historyPicks
	})
}

// WithColors replaces the built-in color lexicon used by Chat.
func WithColors(terms []Term) Option {
	return optionFunc(func(c *clientConfig) {
		c.colors = terms
	})
}

// WithCategories replaces the built-in category lexicon used by Chat.
func WithCategories(terms []Term) Option {
	return optionFunc(func(c *clientConfig) {
		c.categories = terms
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
