package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/gridstock/internal/application/common"
)

// EngineMetricsCollector exports per-tick engine figures
type EngineMetricsCollector struct {
	cyclesTotal     prometheus.Counter
	cycleDuration   prometheus.Histogram
	units           prometheus.Gauge
	unreadableUnits prometheus.Gauge
	placementsTotal prometheus.Counter
	strandedTotal   prometheus.Counter
	fedItemsTotal   prometheus.Counter
	enqueuedTotal   prometheus.Counter
	materialRatio   *prometheus.GaugeVec

	mu sync.Mutex
}

// NewEngineMetricsCollector creates a new engine metrics collector
func NewEngineMetricsCollector() *EngineMetricsCollector {
	return &EngineMetricsCollector{
		cyclesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycles_total",
			Help:      "Total number of completed engine ticks",
		}),
		cycleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "cycle_duration_seconds",
			Help:      "Engine tick duration distribution",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2},
		}),
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "units",
			Help:      "Units swept in the last tick",
		}),
		unreadableUnits: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "unreadable_units",
			Help:      "Units skipped in the last tick because an inventory could not be read",
		}),
		placementsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "placements_total",
			Help:      "Total number of successful transfers into containers",
		}),
		strandedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "stranded_stacks_total",
			Help:      "Total number of stacks that could not be fully placed",
		}),
		fedItemsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "fed_items_total",
			Help:      "Total ore items loaded into refineries",
		}),
		enqueuedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "enqueued_orders_total",
			Help:      "Total production orders accepted by assemblers",
		}),
		materialRatio: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "material_ratio",
				Help:      "Stock over target per material after the last tick",
			},
			[]string{"category", "subtype"},
		),
	}
}

// Register registers all engine metrics with the Prometheus registry
func (c *EngineMetricsCollector) Register() error {
	return register(
		c.cyclesTotal,
		c.cycleDuration,
		c.units,
		c.unreadableUnits,
		c.placementsTotal,
		c.strandedTotal,
		c.fedItemsTotal,
		c.enqueuedTotal,
		c.materialRatio,
	)
}

// RecordCycle implements common.MetricsRecorder
func (c *EngineMetricsCollector) RecordCycle(m common.CycleMetrics) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cyclesTotal.Inc()
	c.cycleDuration.Observe(m.Duration.Seconds())
	c.units.Set(float64(m.Units))
	c.unreadableUnits.Set(float64(m.Unreadable))
	c.placementsTotal.Add(float64(m.Placements))
	c.strandedTotal.Add(float64(m.Stranded))
	if m.Fed > 0 {
		c.fedItemsTotal.Add(m.Fed.Float64())
	}
	c.enqueuedTotal.Add(float64(m.Enqueued))

	// Materials that disappeared from the sweep should not keep a stale ratio.
	c.materialRatio.Reset()
	for key, ratio := range m.Ratios {
		c.materialRatio.WithLabelValues(key.ShortCategory(), key.Subtype).Set(ratio)
	}
}
