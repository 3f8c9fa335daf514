package metrics

import (
	"bytes"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Recorder is an in-process Prometheus registry. This module never
// opens an HTTP listener (no concurrent queries against a shared
// network, per spec.md's Non-goals); instead cmd/waternet dumps a final
// text exposition of these counters into the run's report directory.
type Recorder struct {
	registry          *prometheus.Registry
	SolvesTotal       prometheus.Counter
	AblationsTotal    prometheus.Counter
	LoadBalanceRounds prometheus.Counter
}

// NewRecorder builds a Recorder with its counters registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		SolvesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waternet_solves_total",
			Help: "Number of Edmonds-Karp max-flow solves run.",
		}),
		AblationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waternet_ablations_total",
			Help: "Number of component ablations (station or pipeline) performed.",
		}),
		LoadBalanceRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "waternet_load_balance_rounds_total",
			Help: "Number of load-balancer iterations executed across all optimize_load calls.",
		}),
	}
	r.registry.MustRegister(r.SolvesTotal, r.AblationsTotal, r.LoadBalanceRounds)
	return r
}

// Expose renders the current counter values in the Prometheus text
// exposition format, for cmd/waternet to write to metrics.prom via
// report.Writer.WriteMetricsSnapshot.
func (r *Recorder) Expose() ([]byte, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
