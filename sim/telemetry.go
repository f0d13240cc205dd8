package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "proxel"

const solverSubsystem = "solver"

// RunMetrics exposes the resource counters of a solver run as prometheus collectors.
// A nil *RunMetrics is valid and records nothing.
type RunMetrics struct {
	// StepsTotal counts completed generation sweeps.
	StepsTotal prometheus.Counter

	// ProcessedTotal counts proxels extracted from a generation, expanded or discarded.
	ProcessedTotal prometheus.Counter

	// DiscardedTotal counts proxels dropped below the truncation threshold.
	DiscardedTotal prometheus.Counter

	// MergedTotal counts insertions that merged into an existing proxel.
	MergedTotal prometheus.Counter

	// DiscardedMass is the cumulative truncation error.
	DiscardedMass prometheus.Gauge

	// LiveProxels is the number of proxels held in the node pool.
	LiveProxels prometheus.Gauge

	// PeakProxels is the high-water mark of LiveProxels.
	PeakProxels prometheus.Gauge

	// GenerationSize is the distribution of generation sizes at the start of each sweep.
	GenerationSize prometheus.Histogram
}

// NewRunMetrics creates the run collectors and registers them with reg.
// Panics if reg already holds collectors with the same names.
func NewRunMetrics(reg prometheus.Registerer) *RunMetrics {
	factory := promauto.With(reg)
	return &RunMetrics{
		StepsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "steps_total",
			Help:      "Completed generation sweeps",
		}),
		ProcessedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "processed_total",
			Help:      "Proxels extracted from a generation",
		}),
		DiscardedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "discarded_total",
			Help:      "Proxels dropped below the truncation threshold",
		}),
		MergedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "merged_total",
			Help:      "Insertions merged into an existing proxel",
		}),
		DiscardedMass: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "discarded_mass",
			Help:      "Cumulative probability mass lost to truncation",
		}),
		LiveProxels: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "live_proxels",
			Help:      "Proxels currently held in the node pool",
		}),
		PeakProxels: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "peak_proxels",
			Help:      "Maximum concurrently live proxels",
		}),
		GenerationSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: solverSubsystem,
			Name:      "generation_size",
			Help:      "Proxels per generation at the start of a sweep",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}
}

func (m *RunMetrics) observeGeneration(size int) {
	if m == nil {
		return
	}
	m.GenerationSize.Observe(float64(size))
}

func (m *RunMetrics) observeStep(processed, discarded, merged int, errTotal float64, pool *NodePool) {
	if m == nil {
		return
	}
	m.StepsTotal.Inc()
	m.ProcessedTotal.Add(float64(processed))
	m.DiscardedTotal.Add(float64(discarded))
	m.MergedTotal.Add(float64(merged))
	m.DiscardedMass.Set(errTotal)
	m.LiveProxels.Set(float64(pool.Live()))
	m.PeakProxels.Set(float64(pool.Peak()))
}
