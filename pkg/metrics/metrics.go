package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AnalysisJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analysis_jobs_total",
			Help: "Total number of analysis jobs that reached a terminal state.",
		},
		[]string{"status"}, // completed, failed
	)

	AnalysisJobsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "analysis_jobs_in_flight",
			Help: "Number of analysis pipelines currently running.",
		},
	)

	AnalysisDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "analysis_duration_seconds",
			Help:    "Wall clock time of a full analysis pipeline.",
			Buckets: []float64{1, 5, 10, 15, 30, 60, 120},
		},
	)

	PageFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_fetches_total",
			Help: "Total number of page fetch attempts.",
		},
		[]string{"page", "outcome"}, // outcome: ok, error, thin
	)

	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summaries_total",
			Help: "Total number of summaries produced, by source.",
		},
		[]string{"outcome"}, // generated, fallback, disabled
	)
)
