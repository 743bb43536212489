// Package metrics defines the Prometheus collectors for the API.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry is the dedicated registry served at /metrics. Using our own
// registry keeps third-party library defaults out of the scrape.
var Registry = prometheus.NewRegistry()

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route, and status.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TripPlans = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trip_plans_total",
			Help: "Trip planning outcomes.",
		},
		[]string{"outcome"},
	)

	RouteCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_cache_lookups_total",
			Help: "Route cache lookups by result.",
		},
		[]string{"result"},
	)
)

var registerOnce sync.Once

// Register installs all collectors on the registry. Safe to call more than
// once.
func Register() {
	registerOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(TripPlans)
		Registry.MustRegister(RouteCacheLookups)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
