// Package metrics provides the centralized Prometheus metrics registry for pickscore.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "pickscore"

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	CacheLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of cache lookups by cache and result",
	}, []string{"cache", "result"})
	UpstreamRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of upstream data provider requests by operation and status",
	}, []string{"source", "operation", "status"})
	CircuitBreakerTripsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "circuit_breaker_trips_total",
		Help:      "Total number of upstream circuit breaker trips",
	})
	RegistryRefreshesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registry_refreshes_total",
		Help:      "Total number of scheduled player registry refreshes by result",
	}, []string{"result"})
)

// Histogram metrics
var (
	UpstreamLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_latency_seconds",
		Help:      "Latency of upstream data provider calls in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"source", "operation"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(CacheLookupsTotal)
		registry.MustRegister(UpstreamRequestsTotal)
		registry.MustRegister(CircuitBreakerTripsTotal)
		registry.MustRegister(RegistryRefreshesTotal)
		registry.MustRegister(UpstreamLatency)

		// Register pipeline metrics
		registry.MustRegister(QueriesTotal)
		registry.MustRegister(PicksLabeledTotal)
		registry.MustRegister(PipelineDuration)
		registry.MustRegister(PickScoreDistribution)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(cache, result).Inc()
}

// RecordUpstreamRequest records one upstream call and its latency.
func RecordUpstreamRequest(source, operation string, statusCode int, durationSeconds float64) {
	status := "error"
	if statusCode > 0 {
		status = strconv.Itoa(statusCode)
	}
	UpstreamRequestsTotal.WithLabelValues(source, operation, status).Inc()
	UpstreamLatency.WithLabelValues(source, operation).Observe(durationSeconds)
}

// RecordCircuitBreakerTrip records a circuit breaker trip event.
func RecordCircuitBreakerTrip() {
	CircuitBreakerTripsTotal.Inc()
}

// RecordRegistryRefresh records the result of a scheduled registry refresh.
func RecordRegistryRefresh(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	RegistryRefreshesTotal.WithLabelValues(result).Inc()
}
