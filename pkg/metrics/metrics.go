package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Global metrics, registered on the default registry through promauto.

var (
	// HttpRequestsTotal counts requests by method, route and status code.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egoroff_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	// HttpRequestDuration measures server response time.
	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "egoroff_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	// NavigationLookups counts navigation queries by kind and outcome
	// ("hit" when a section resolved, "miss" otherwise).
	NavigationLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egoroff_navigation_lookups_total",
			Help: "Navigation graph queries by kind and outcome",
		},
		[]string{"query", "result"},
	)

	// Sections tracks the size of the published navigation graph.
	Sections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "egoroff_navigation_sections",
			Help: "Number of sections in the current navigation graph",
		},
	)

	// Reloads counts site map reloads by outcome.
	Reloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "egoroff_navigation_reloads_total",
			Help: "Site map reloads by outcome",
		},
		[]string{"result"},
	)
)

// Lookup records the outcome of a navigation query.
func Lookup(query string, found bool) {
	result := "miss"
	if found {
		result = "hit"
	}
	NavigationLookups.WithLabelValues(query, result).Inc()
}
