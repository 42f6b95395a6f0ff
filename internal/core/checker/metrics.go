package checker

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/namelens/mcname/internal/core"
)

// Metrics records lookup, retry and result counters. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	lookups   *prometheus.CounterVec
	retries   *prometheus.CounterVec
	backoff   *prometheus.HistogramVec
	exhausted prometheus.Counter
	abandoned *prometheus.CounterVec
	results   *prometheus.CounterVec
}

// NewMetrics registers the checker metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mcname_lookups_total",
			Help: "Requests sent to the profile API by kind and response status",
		}, []string{"kind", "status"}),
		retries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mcname_batch_retries_total",
			Help: "Batch retry attempts by reason",
		}, []string{"reason"}),
		backoff: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mcname_batch_backoff_seconds",
			Help:    "Wait before a batch retry by reason",
			Buckets: []float64{0.5, 1, 2, 4, 8, 16, 32, 64},
		}, []string{"reason"}),
		exhausted: factory.NewCounter(prometheus.CounterOpts{
			Name: "mcname_batch_retries_exhausted_total",
			Help: "Batches that ran out of retries",
		}),
		abandoned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mcname_batch_abandoned_total",
			Help: "Batches abandoned without retry by reason",
		}, []string{"reason"}),
		results: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mcname_results_total",
			Help: "Checked names by availability",
		}, []string{"availability"}),
	}
}

func (m *Metrics) observeLookup(kind string, status int) {
	if m == nil {
		return
	}
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	m.lookups.WithLabelValues(kind, label).Inc()
}

func (m *Metrics) observeRetry(reason string, seconds float64) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(reason).Inc()
	m.backoff.WithLabelValues(reason).Observe(seconds)
}

func (m *Metrics) observeExhausted() {
	if m == nil {
		return
	}
	m.exhausted.Inc()
}

func (m *Metrics) observeAbandoned(reason string) {
	if m == nil {
		return
	}
	m.abandoned.WithLabelValues(reason).Inc()
}

// ObserveResults counts every code in codes.
func (m *Metrics) ObserveResults(codes ...core.Availability) {
	if m == nil {
		return
	}
	for _, code := range codes {
		m.results.WithLabelValues(code.String()).Inc()
	}
}
