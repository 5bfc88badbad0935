package observability

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	registerOnce          sync.Once
	httpRequestsTotal     *prometheus.CounterVec
	httpLatencySeconds    *prometheus.HistogramVec
	httpErrorsTotal       *prometheus.CounterVec
	storeLatencySeconds   *prometheus.HistogramVec
	hierarchyCacheResults *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnroute_http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "learnroute_http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnroute_http_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		storeLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "learnroute_store_operation_seconds",
			Help:    "Latency distribution for entity store operations.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}, []string{"entity", "operation", "outcome"})

		hierarchyCacheResults = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "learnroute_menu_hierarchy_cache_total",
			Help: "Menu hierarchy cache lookups by result.",
		}, []string{"result"})

		prometheus.MustRegister(httpRequestsTotal, httpLatencySeconds, httpErrorsTotal, storeLatencySeconds, hierarchyCacheResults)
	})
}

// HTTPRequests exposes the request counter.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the request latency histogram.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// StoreLatency exposes the store operation histogram.
func StoreLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return storeLatencySeconds
}

// HierarchyCache exposes the menu hierarchy cache counter.
func HierarchyCache() *prometheus.CounterVec {
	RegisterMetrics()
	return hierarchyCacheResults
}

// MetricsHandler serves the Prometheus scrape endpoint on the default registry.
func MetricsHandler() fiber.Handler {
	RegisterMetrics()
	return adaptor.HTTPHandler(promhttp.Handler())
}
