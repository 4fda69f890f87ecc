// Package metrics holds the Prometheus collectors exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

type Metrics struct {
	// Labels: method, route, status
	HTTPRequestsTotal *prometheus.CounterVec
	// Labels: method, route
	HTTPRequestDuration *prometheus.HistogramVec

	ProductsCreatedTotal prometheus.Counter
	QuotaDeniedTotal     prometheus.Counter
	// Labels: action (edit, delete)
	OwnershipDeniedTotal *prometheus.CounterVec
	// Labels: status (success, error)
	EventsPublishedTotal *prometheus.CounterVec
}

// New registers every collector on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		ProductsCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "products_created_total",
			Help:      "Products created by vendors.",
		}),
		QuotaDeniedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "quota_denied_total",
			Help:      "Product creations refused because the vendor reached the plan limit.",
		}),
		OwnershipDeniedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "ownership_denied_total",
			Help:      "Product mutations refused because the caller does not own the product.",
		}, []string{"action"}),
		EventsPublishedTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "events",
			Name:      "published_total",
			Help:      "Product lifecycle events handed to the broker.",
		}, []string{"status"}),
	}
}
