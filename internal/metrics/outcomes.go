// Package metrics exposes decrypt outcome counters to Prometheus.
package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"pdfdecrypt/internal/decrypt"
)

// OutcomeMetrics counts decrypt outcomes and times them.
type OutcomeMetrics struct {
	outcomes *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ decrypt.Observer = (*OutcomeMetrics)(nil)

// NewOutcomeMetrics creates the collectors and registers them with reg.
func NewOutcomeMetrics(reg prometheus.Registerer) (*OutcomeMetrics, error) {
	m := &OutcomeMetrics{
		outcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pdf_decrypt_outcomes_total",
				Help: "Total number of decrypt requests by outcome.",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pdf_decrypt_duration_seconds",
				Help:    "Time spent handling a decrypt request, by outcome.",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"outcome"},
		),
	}

	for _, c := range []prometheus.Collector{m.outcomes, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *OutcomeMetrics) ObserveOutcome(_ context.Context, o decrypt.Observation) {
	label := o.Kind.String()
	m.outcomes.WithLabelValues(label).Inc()
	m.duration.WithLabelValues(label).Observe(o.Duration.Seconds())
}
