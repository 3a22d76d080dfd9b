// Package metrics exposes Prometheus instrumentation for the collector and
// the serving layer.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcome labels recorded per category fetch attempt.
const (
	OutcomeOK             = "ok"
	OutcomeTransportError = "transport_error"
	OutcomeBadStatus      = "bad_status"
	OutcomeNoCount        = "no_count"
)

var (
	categoryFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fedwatch_category_fetches_total",
			Help: "Total category fetch attempts by outcome",
		},
		[]string{"category", "outcome"},
	)

	jobMarketScore = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fedwatch_job_market_health_score",
			Help: "Most recent job-market health score (0-100)",
		},
	)

	snapshotCategories = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fedwatch_snapshot_categories",
			Help: "Number of categories present in the most recent snapshot",
		},
	)
)

var registerOnce sync.Once

// Init registers all collectors with the default registry.
// Must be called once at startup.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(categoryFetches, jobMarketScore, snapshotCategories)
	})
}

// RecordCategoryFetch increments the fetch counter for a category/outcome pair.
func RecordCategoryFetch(category, outcome string) {
	categoryFetches.WithLabelValues(category, outcome).Inc()
}

// SetJobMarketScore records the most recent job-market health score.
func SetJobMarketScore(score float64) {
	jobMarketScore.Set(score)
}

// SetSnapshotCategories records how many categories the latest snapshot holds.
func SetSnapshotCategories(n int) {
	snapshotCategories.Set(float64(n))
}
