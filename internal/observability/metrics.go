package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus collectors for API traffic. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	Errors          *prometheus.CounterVec
}

// NewMetrics registers the client collectors on the given registerer.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	return newMetrics(registry, "memberkit_client", "API requests")
}

// NewServerMetrics registers the dev backend collectors on the given registerer.
func NewServerMetrics(registry prometheus.Registerer) *Metrics {
	return newMetrics(registry, "memberkit_devapi", "requests served by the dev backend")
}

func newMetrics(registry prometheus.Registerer, namespace, subject string) *Metrics {
	factory := promauto.With(registry)

	return &Metrics{
		Requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: namespace + "_requests_total",
				Help: "Total number of " + subject + " that received a response",
			},
			[]string{"endpoint", "method", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    namespace + "_request_duration_seconds",
				Help:    "Latency of " + subject + " that received a response",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"endpoint", "method"},
		),
		Errors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: namespace + "_errors_total",
				Help: "Total number of failed " + subject + " by error kind",
			},
			[]string{"endpoint", "method", "kind"},
		),
	}
}

// Handler exposes everything gathered by registry in the Prometheus text format.
func Handler(registry prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// RecordRequest tracks a request that produced an HTTP response.
func (m *Metrics) RecordRequest(endpoint, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// RecordError tracks a failed call.
func (m *Metrics) RecordError(endpoint, method, kind string) {
	if m == nil {
		return
	}
	m.Errors.WithLabelValues(endpoint, method, kind).Inc()
}
