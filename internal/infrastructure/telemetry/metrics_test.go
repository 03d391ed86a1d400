package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/retailstock/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

func newTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return reader, mp
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumInt(t *testing.T, agg metricdata.Aggregation) int64 {
	t.Helper()
	sum, ok := agg.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", agg)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func sumFloat(t *testing.T, agg metricdata.Aggregation) float64 {
	t.Helper()
	sum, ok := agg.(metricdata.Sum[float64])
	require.True(t, ok, "expected float64 sum, got %T", agg)
	var total float64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewMeterProvider_Disabled(t *testing.T) {
	mp, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, mp.Meter("test"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestReconciliationMetrics(t *testing.T) {
	reader, mp := newTestMeter(t)
	m, err := telemetry.NewReconciliationMetrics(mp.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordRestock(ctx, "nakawa", 12)
	m.RecordRestock(ctx, "kireka", 3)
	m.RecordSales(ctx, "nakawa", "Bakery", 4, 20.0, 8.0)
	m.RecordSales(ctx, "nakawa", "Bakery", -2, -10.0, -4.0)
	m.RecordRejection(ctx, "edit_ending", "NEGATIVE_SALES")
	m.RecordLowStock(ctx, "nakawa", 2)
	m.RecordDuration(ctx, "open_day", 15*time.Millisecond)

	data := collect(t, reader)
	assert.Equal(t, int64(15), sumInt(t, data["inventory.units_restocked"]))
	assert.Equal(t, int64(4), sumInt(t, data["inventory.units_sold"]))
	assert.InDelta(t, 20.0, sumFloat(t, data["inventory.sales_amount"]), 1e-9)
	assert.InDelta(t, 8.0, sumFloat(t, data["inventory.profit_amount"]), 1e-9)
	assert.Equal(t, int64(1), sumInt(t, data["inventory.rejections"]))

	gauge, ok := data["inventory.low_stock_products"].(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(2), gauge.DataPoints[0].Value)

	hist, ok := data["inventory.operation.duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}
