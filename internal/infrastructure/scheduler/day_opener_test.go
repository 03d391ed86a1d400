package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type openCall struct {
	location string
	day      string
}

type recordingOpener struct {
	mu    sync.Mutex
	calls []openCall
	fail  map[string]int // location -> failures left
}

func (r *recordingOpener) open(_ context.Context, location string, day time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, openCall{location, day.Format("2006-01-02")})
	if r.fail[location] > 0 {
		r.fail[location]--
		return errors.New("database unavailable")
	}
	return nil
}

func (r *recordingOpener) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newTestOpener(t *testing.T, rec *recordingOpener, clock *time.Time) (*DayOpener, *observer.ObservedLogs) {
	t.Helper()
	kampala, err := time.LoadLocation("Africa/Kampala")
	require.NoError(t, err)
	core, logs := observer.New(zap.InfoLevel)
	d := NewDayOpener(DayOpenerConfig{
		Locations:  []string{"nakawa", "kireka"},
		Timezone:   kampala,
		OpenHour:   0,
		OpenMinute: 5,
		MaxRetries: 2,
	}, rec.open, zap.New(core))
	d.now = func() time.Time { return *clock }
	return d, logs
}

func TestDayOpener_OpensOncePerDay(t *testing.T) {
	rec := &recordingOpener{}
	// 21:00 UTC is midnight in Kampala
	clock := time.Date(2025, 3, 3, 21, 0, 0, 0, time.UTC)
	d, _ := newTestOpener(t, rec, &clock)
	ctx := context.Background()

	d.Check(ctx)
	assert.Zero(t, rec.count(), "before the open time")

	clock = clock.Add(10 * time.Minute)
	d.Check(ctx)
	d.Check(ctx)
	assert.Equal(t, []openCall{{"nakawa", "2025-03-04"}, {"kireka", "2025-03-04"}}, rec.calls)
	assert.Empty(t, d.Pending())

	clock = clock.Add(24 * time.Hour)
	d.Check(ctx)
	assert.Equal(t, 4, rec.count())
	assert.Equal(t, openCall{"kireka", "2025-03-05"}, rec.calls[3])
}

func TestDayOpener_RetriesFailedLocations(t *testing.T) {
	rec := &recordingOpener{fail: map[string]int{"kireka": 5}}
	clock := time.Date(2025, 3, 4, 6, 0, 0, 0, time.UTC)
	d, logs := newTestOpener(t, rec, &clock)
	ctx := context.Background()

	d.Check(ctx)
	assert.Equal(t, []string{"kireka"}, d.Pending())
	d.Check(ctx)
	d.Check(ctx)

	// one success for nakawa plus two attempts for kireka
	assert.Equal(t, 3, rec.count())
	assert.Equal(t, []string{"kireka"}, d.Pending())
	assert.Equal(t, 2, logs.FilterMessage("Failed to open day").Len())
}

func TestDayOpener_StartStop(t *testing.T) {
	rec := &recordingOpener{}
	clock := time.Date(2025, 3, 4, 6, 0, 0, 0, time.UTC)
	d, _ := newTestOpener(t, rec, &clock)
	d.config.CheckInterval = time.Hour

	require.NoError(t, d.Start(context.Background()))
	require.NoError(t, d.Start(context.Background()))
	assert.Eventually(t, func() bool { return rec.count() == 2 }, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, d.Stop(ctx))
	require.NoError(t, d.Stop(ctx))
}
