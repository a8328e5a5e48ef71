package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videohub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "videohub_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Interaction Metrics
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "videohub_interactions_total",
			Help: "Likes, favorites and ratings written, by kind and outcome",
		},
		[]string{"kind", "outcome"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "videohub_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)

	MediaUploadBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "videohub_media_upload_size_bytes",
			Help:    "Size of uploaded media files in bytes",
			Buckets: prometheus.ExponentialBuckets(64*1024, 4, 10), // 64KB to 16GB
		},
		[]string{"kind"},
	)
)

// RecordInteraction counts one interaction write.
func RecordInteraction(kind, outcome string) {
	InteractionsTotal.WithLabelValues(kind, outcome).Inc()
}
