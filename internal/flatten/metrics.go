package flatten

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the collectors an Engine reports to. A nil *Metrics disables
// reporting.
type Metrics struct {
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	nodesMerged prometheus.Counter
}

// NewMetrics creates the flatten collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "moviegraph_flatten_runs_total",
				Help: "Number of flatten calls by result.",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "moviegraph_flatten_duration_seconds",
				Help:    "Time taken to flatten a graph.",
				Buckets: prometheus.DefBuckets,
			},
		),
		nodesMerged: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "moviegraph_flatten_nodes_merged_total",
				Help: "Number of setting nodes folded onto resolved instances.",
			},
		),
	}
	reg.MustRegister(m.runs, m.duration, m.nodesMerged)
	return m
}

func (m *Metrics) observe(result string, seconds float64, merged int) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(result).Inc()
	m.duration.Observe(seconds)
	m.nodesMerged.Add(float64(merged))
}
