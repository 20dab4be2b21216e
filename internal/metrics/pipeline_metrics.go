// Package metrics defines pick pipeline metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Pipeline counter vectors
var (
	QueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queries_total",
		Help:      "Total number of pick queries by stat category and outcome",
	}, []string{"stat", "outcome"})

	PicksLabeledTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "picks_labeled_total",
		Help:      "Total number of scored picks by label",
	}, []string{"label"})
)

// Pipeline histograms
var (
	PipelineDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of a full resolve-fetch-extract-score run in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"outcome"})

	PickScoreDistribution = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pick_score",
		Help:      "Distribution of computed pick scores",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})
)

// RecordQuery records a completed pipeline run.
func RecordQuery(stat, outcome string, durationSeconds float64) {
	QueriesTotal.WithLabelValues(stat, outcome).Inc()
	PipelineDuration.WithLabelValues(outcome).Observe(durationSeconds)
}

// RecordPickScore records the score and label of a scored pick.
func RecordPickScore(score float64, label string) {
	PickScoreDistribution.Observe(score)
	PicksLabeledTotal.WithLabelValues(label).Inc()
}
