package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/zconv/pkg/ports"
)

// Metrics holds the client collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	discards *prometheus.CounterVec
}

var _ ports.Observer = (*Metrics)(nil)

// NewMetrics creates and registers the collectors, plus the Go runtime ones.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zconv_api_requests_total",
				Help: "Requests made to the conversion API, by route and outcome",
			},
			[]string{"route", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zconv_api_request_duration_seconds",
				Help:    "Duration of requests to the conversion API",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		discards: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zconv_stale_responses_total",
				Help: "Responses discarded because a newer one was already rendered",
			},
			[]string{"operation"},
		),
	}
	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.discards,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveRequest(route, outcome string, elapsed time.Duration) {
	m.requests.WithLabelValues(route, outcome).Inc()
	m.duration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveDiscard(operation string) {
	m.discards.WithLabelValues(operation).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
