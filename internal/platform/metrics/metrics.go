// Package metrics defines the Prometheus collectors for the HTTP surface.
// They live in a standalone package to avoid import cycles between the API
// and transport layers.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts processed requests by method, route pattern
	// and response status.
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "items_api_http_requests_total",
		Help: "Total number of processed HTTP requests.",
	}, []string{"method", "path", "status"})

	// HTTPRequestDuration observes request latency by method and route
	// pattern.
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "items_api_http_request_duration_seconds",
		Help:    "Latency of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})
)

// Register registers the HTTP collectors on the given registry (or the
// default registry if nil). Re-registration is tolerated so tests can call
// this repeatedly.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{HTTPRequestsTotal, HTTPRequestDuration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
