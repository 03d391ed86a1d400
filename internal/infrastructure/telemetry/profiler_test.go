package telemetry_test

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/retailstock/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewProfiler_Disabled(t *testing.T) {
	p, err := telemetry.NewProfiler(telemetry.ProfilerConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, p.IsEnabled())
	assert.NoError(t, p.Stop())
	assert.NoError(t, p.Stop())
}

func TestNewProfiler_RequiresAddressAndName(t *testing.T) {
	_, err := telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ApplicationName: "retail-backend"}, zap.NewNop())
	assert.ErrorContains(t, err, "server address")

	_, err = telemetry.NewProfiler(telemetry.ProfilerConfig{Enabled: true, ServerAddress: "http://pyroscope:4040"}, zap.NewNop())
	assert.ErrorContains(t, err, "application name")
}

func TestWithProfilingLabels(t *testing.T) {
	var operation, location string
	var hasLocation bool
	telemetry.WithProfilingLabels(context.Background(), telemetry.OperationLabels("restock", "nakawa"), func(ctx context.Context) {
		operation, _ = pprof.Label(ctx, telemetry.ProfilingLabelOperation)
		location, hasLocation = pprof.Label(ctx, telemetry.ProfilingLabelLocation)
	})
	assert.Equal(t, "restock", operation)
	assert.True(t, hasLocation)
	assert.Equal(t, "nakawa", location)

	telemetry.WithProfilingLabels(context.Background(), telemetry.OperationLabels("settle", ""), func(ctx context.Context) {
		_, hasLocation = pprof.Label(ctx, telemetry.ProfilingLabelLocation)
	})
	assert.False(t, hasLocation, "empty values are dropped")

	long := strings.Repeat("x", 200)
	telemetry.WithProfilingLabels(context.Background(), map[string]string{telemetry.ProfilingLabelRoute: long}, func(ctx context.Context) {
		route, _ := pprof.Label(ctx, telemetry.ProfilingLabelRoute)
		assert.Len(t, route, 64)
	})

	called := false
	telemetry.WithProfilingLabels(context.Background(), nil, func(context.Context) { called = true })
	assert.True(t, called)
}

func TestTracerProvider_SpanProfilesNeedTelemetry(t *testing.T) {
	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{}, zap.NewNop())
	require.NoError(t, err)

	tp.EnableSpanProfiles()
	assert.False(t, tp.SpanProfilesEnabled())
}
