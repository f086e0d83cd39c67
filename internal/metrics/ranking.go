package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Ranking and history Prometheus metrics.
var (
	PipelineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_requests_total",
			Help:      "Total number of query pipeline executions",
		},
		[]string{"pipeline", "status"},
	)

	PipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Query pipeline duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"pipeline"},
	)

	PipelineResults = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_results",
			Help:      "Number of products returned per pipeline execution",
			Buckets:   []float64{0, 1, 2, 3, 4, 5},
		},
		[]string{"pipeline"},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Recommended products by blender pass",
		},
		[]string{"source"}, // "content" / "history" / "popular"
	)

	HistoryEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_events_total",
			Help:      "User history events recorded",
		},
		[]string{"type"},
	)

	HistoryStoreDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "history_store_duration_seconds",
			Help:      "History store operation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"driver", "op"},
	)

	HistoryStoreErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "history_store_errors_total",
			Help:      "History store operation failures",
		},
		[]string{"driver", "op"},
	)

	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_products",
			Help:      "Products in the loaded catalog",
		},
	)

	IndexVocabularyTerms = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_vocabulary_terms",
			Help:      "Distinct terms in the catalog index",
		},
	)
)

var registerRanking sync.Once

// RegisterRankingMetrics registers ranking and history metrics with the default registry.
func RegisterRankingMetrics() {
	registerRanking.Do(func() {
		prometheus.MustRegister(
			PipelineRequestsTotal,
			PipelineDuration,
			PipelineResults,
			RecommendationsTotal,
			HistoryEventsTotal,
			HistoryStoreDuration,
			HistoryStoreErrorsTotal,
			CatalogProducts,
			IndexVocabularyTerms,
		)
	})
}

// ObserveCatalog publishes the size of the loaded catalog and its index.
func ObserveCatalog(products, terms int) {
	CatalogProducts.Set(float64(products))
	IndexVocabularyTerms.Set(float64(terms))
}

// ObservePipeline records one pipeline execution: its outcome, latency and result count.
func ObservePipeline(pipeline string, start time.Time, results int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	PipelineRequestsTotal.WithLabelValues(pipeline, status).Inc()
	PipelineDuration.WithLabelValues(pipeline).Observe(time.Since(start).Seconds())
	if err == nil {
		PipelineResults.WithLabelValues(pipeline).Observe(float64(results))
	}
}
