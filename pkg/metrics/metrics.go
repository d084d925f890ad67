// Package metrics registers Prometheus instrumentation for the generation
// pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for webhook pipeline processing.
type Metrics struct {
	// Pipeline outcomes by result (generated, ineligible, skipped,
	// generation_failed, rejected).
	PipelineOutcome *prometheus.CounterVec

	// Gate failures by gate name.
	GateFailure *prometheus.CounterVec

	// Round-trip latency of the external analysis collaborator.
	AnalysisLatency prometheus.Histogram
}

// New creates a Metrics instance with all pipeline metrics registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		PipelineOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_pipeline_outcomes_total",
			Help: "Total pipeline outcomes by result",
		}, []string{"result"}),

		GateFailure: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "docket_gate_failures_total",
			Help: "Total validation gate failures by gate",
		}, []string{"gate"}),

		AnalysisLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "docket_analysis_duration_seconds",
			Help:    "Duration of external analysis collaborator calls",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// IncrementOutcome records a pipeline outcome. Safe on a nil receiver so
// metrics remain optional in tests.
func (m *Metrics) IncrementOutcome(result string) {
	if m != nil {
		m.PipelineOutcome.WithLabelValues(result).Inc()
	}
}

// IncrementGateFailure records a validation gate failure.
func (m *Metrics) IncrementGateFailure(gate string) {
	if m != nil {
		m.GateFailure.WithLabelValues(gate).Inc()
	}
}

// ObserveAnalysisLatency records the duration of a collaborator round trip.
func (m *Metrics) ObserveAnalysisLatency(d time.Duration) {
	if m != nil {
		m.AnalysisLatency.Observe(d.Seconds())
	}
}
