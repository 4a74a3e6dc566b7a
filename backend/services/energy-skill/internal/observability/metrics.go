package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the skill's collectors. A nil *Metrics records nothing.
type Metrics struct {
	intents        *prometheus.CounterVec
	upstream       *prometheus.HistogramVec
	upstreamErrors *prometheus.CounterVec
}

// NewMetrics registers the collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		intents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_skill_intents_total",
			Help: "Invocations handled, by intent and result.",
		}, []string{"intent", "result"}),
		upstream: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "energy_skill_upstream_request_seconds",
			Help:    "Latency of GivEnergy API calls.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		upstreamErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "energy_skill_upstream_errors_total",
			Help: "GivEnergy API calls that failed.",
		}, []string{"operation"}),
	}
}

// ObserveIntent counts one handled invocation.
func (m *Metrics) ObserveIntent(intent, result string) {
	if m == nil {
		return
	}
	m.intents.WithLabelValues(intent, result).Inc()
}

// ObserveUpstream records one upstream call.
func (m *Metrics) ObserveUpstream(operation string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.upstream.WithLabelValues(operation).Observe(elapsed.Seconds())
	if err != nil {
		m.upstreamErrors.WithLabelValues(operation).Inc()
	}
}

// Handler exposes the gathered metrics.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
