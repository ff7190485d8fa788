package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/gridstock/internal/application/common"
)

const (
	// Namespace for all metrics
	namespace = "gridstock"
	// Subsystem for engine metrics
	subsystem = "engine"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalCollector is the engine collector, set when metrics are enabled
	globalCollector common.MetricsRecorder

	// globalCommandCollector records operator commands
	globalCommandCollector *CommandMetricsCollector
)

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalCollector sets the global engine collector
func SetGlobalCollector(collector common.MetricsRecorder) {
	globalCollector = collector
}

// SetGlobalCommandCollector sets the global command collector
func SetGlobalCommandCollector(collector *CommandMetricsCollector) {
	globalCommandCollector = collector
}

// RecordCycle records one engine tick globally
func RecordCycle(m common.CycleMetrics) {
	if globalCollector != nil {
		globalCollector.RecordCycle(m)
	}
}

// RecordCommandExecution records one operator command globally
func RecordCommandExecution(command string, duration float64, success bool) {
	if globalCommandCollector != nil {
		globalCommandCollector.RecordCommandExecution(command, duration, success)
	}
}

// Recorder returns a common.MetricsRecorder that forwards to the global
// collector, so callers can hold it before metrics are configured.
func Recorder() common.MetricsRecorder {
	return globalRecorder{}
}

type globalRecorder struct{}

func (globalRecorder) RecordCycle(m common.CycleMetrics) { RecordCycle(m) }

// register adds collectors to Registry; it is a no-op when metrics are disabled.
func register(collectors ...prometheus.Collector) error {
	if Registry == nil {
		return nil
	}
	for _, c := range collectors {
		if err := Registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// CommandCollector returns the global command collector, nil when metrics
// are disabled.
func CommandCollector() *CommandMetricsCollector {
	return globalCommandCollector
}
