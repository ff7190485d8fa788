package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/inventory"
	"github.com/andrescamacho/gridstock/internal/infrastructure/config"
)

// withRegistry installs a fresh registry and resets the globals afterwards.
func withRegistry(t *testing.T) {
	t.Helper()
	InitRegistry()
	t.Cleanup(func() {
		Registry = nil
		globalCollector = nil
		globalCommandCollector = nil
	})
}

func TestEngineMetricsCollector_RecordCycle(t *testing.T) {
	// Arrange
	withRegistry(t)
	c := NewEngineMetricsCollector()
	require.NoError(t, c.Register())

	// Act
	c.RecordCycle(common.CycleMetrics{
		Duration:   20 * time.Millisecond,
		Units:      12,
		Unreadable: 1,
		Placements: 3,
		Stranded:   1,
		Fed:        inventory.Items(100),
		Enqueued:   2,
		Ratios: map[inventory.MaterialKey]float64{
			inventory.Ingot("Iron"): 0.5,
		},
	})
	c.RecordCycle(common.CycleMetrics{Placements: 2, Ratios: map[inventory.MaterialKey]float64{
		inventory.Ingot("Gold"): 1.5,
	}})

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(c.cyclesTotal))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.units))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.placementsTotal))
	assert.Equal(t, 100.0, testutil.ToFloat64(c.fedItemsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.enqueuedTotal))
	assert.Equal(t, 1, testutil.CollectAndCount(c.materialRatio))
	assert.Equal(t, 1.5, testutil.ToFloat64(c.materialRatio.WithLabelValues("Ingot", "Gold")))
}

func TestRegister_DisabledIsNoOp(t *testing.T) {
	Registry = nil

	assert.NoError(t, NewEngineMetricsCollector().Register())
	assert.NoError(t, NewCommandMetricsCollector().Register())
	assert.False(t, IsEnabled())
}

func TestGlobalRecorder_NilSafe(t *testing.T) {
	globalCollector = nil

	assert.NotPanics(t, func() {
		Recorder().RecordCycle(common.CycleMetrics{Units: 1})
		RecordCommandExecution("PushCommand", 0.1, true)
	})
}

func TestGlobalRecorder_Forwards(t *testing.T) {
	withRegistry(t)
	c := NewEngineMetricsCollector()
	SetGlobalCollector(c)

	Recorder().RecordCycle(common.CycleMetrics{Units: 4})

	assert.Equal(t, 4.0, testutil.ToFloat64(c.units))
}

func TestPrometheusMiddleware(t *testing.T) {
	// Arrange
	withRegistry(t)
	c := NewCommandMetricsCollector()
	require.NoError(t, c.Register())
	mw := PrometheusMiddleware(c)
	ok := func(ctx context.Context, r common.Request) (common.Response, error) { return "done", nil }
	fail := func(ctx context.Context, r common.Request) (common.Response, error) { return nil, errors.New("boom") }

	type SortCommand struct{}

	// Act
	resp, err := mw(context.Background(), &SortCommand{}, ok)
	require.NoError(t, err)
	_, err = mw(context.Background(), &SortCommand{}, fail)

	// Assert
	assert.Equal(t, "done", resp)
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("SortCommand", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.commandsTotal.WithLabelValues("SortCommand", "error")))
}

func TestPrometheusMiddleware_NilCollector(t *testing.T) {
	mw := PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), struct{}{}, func(ctx context.Context, r common.Request) (common.Response, error) {
		return 7, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 7, resp)
}

func TestServer_ServesRegistry(t *testing.T) {
	// Arrange
	withRegistry(t)
	c := NewEngineMetricsCollector()
	require.NoError(t, c.Register())
	c.RecordCycle(common.CycleMetrics{Units: 3})

	srv, err := NewServer(config.MetricsConfig{Host: "127.0.0.1", Port: 0, Path: "/metrics"})
	require.NoError(t, err)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Shutdown(context.Background()) })

	// Act
	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "gridstock_engine_cycles_total 1")
	assert.Contains(t, string(body), "gridstock_engine_units 3")
}

func TestNewServer_RequiresRegistry(t *testing.T) {
	Registry = nil

	_, err := NewServer(config.MetricsConfig{Path: "/metrics"})

	assert.Error(t, err)
}

func TestRegister_DuplicateFails(t *testing.T) {
	withRegistry(t)
	require.NoError(t, register(prometheus.NewCounter(prometheus.CounterOpts{Name: "dup_total", Help: "x"})))

	err := register(prometheus.NewCounter(prometheus.CounterOpts{Name: "dup_total", Help: "x"}))

	assert.Error(t, err)
}
