package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asadel_http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asadel_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	FeedViewers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "asadel_feed_viewers",
		Help: "Open MJPEG feed connections",
	})

	FeedFrames = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "asadel_feed_frames_total",
		Help: "JPEG frames published to the feed hub",
	})

	DetectionsIngested = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "asadel_detections_ingested_total",
			Help: "Detections stored, by source and alert type",
		},
		[]string{"source", "alert_type"},
	)

	DetectionsDropped = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "asadel_detections_dropped_total",
		Help: "Detection events rejected before storage",
	})
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		HTTPRequests,
		HTTPDuration,
		FeedViewers,
		FeedFrames,
		DetectionsIngested,
		DetectionsDropped,
	)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// Registry is exposed for tests
func Registry() *prometheus.Registry {
	return registry
}
