// Package metrics defines the prometheus collectors for the service.
// Collectors register with the default registry at package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seo_analyses_total",
			Help: "Total number of analysis requests by outcome.",
		},
		[]string{"status"},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "seo_analysis_duration_seconds",
			Help:    "Wall-clock duration of complete analyses.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	FetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "page_fetch_duration_seconds",
			Help:    "Duration of target page fetches.",
			Buckets: prometheus.DefBuckets,
		},
	)

	ImageFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_fetches_total",
			Help: "Total number of deep-mode image fetches by result.",
		},
		[]string{"result"},
	)
)
