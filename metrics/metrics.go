package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// Business metrics for the trends service
	TrendSweepsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_sweeps_total",
			Help: "Total number of trend aggregation sweeps",
		},
		[]string{"source", "status"},
	)

	TrendVideosServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trend_videos_served_total",
			Help: "Total number of spotlight videos served to clients",
		},
		[]string{"category"},
	)

	InsightRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_requests_total",
			Help: "Total number of insight generations",
		},
		[]string{"provider", "status"},
	)

	// Upstream API metrics
	YouTubeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youtube_requests_total",
			Help: "Total number of YouTube Data API requests",
		},
		[]string{"endpoint", "status"},
	)

	OpenAIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openai_requests_total",
			Help: "Total number of OpenAI API requests",
		},
		[]string{"status"},
	)

	// NATS metrics
	NatsMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of NATS messages published",
		},
		[]string{"subject", "status"},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment"},
	)
)

// Initialize metrics with default values
func Init(serviceName, version, environment string) {
	ApplicationInfo.WithLabelValues(serviceName, version, environment).Set(1)
}
