// Package scheduler runs time-triggered reconciliation jobs.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/retailstock/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// OpenFunc opens the business day for one location
type OpenFunc func(ctx context.Context, location string, day time.Time) error

// DayOpenerConfig holds configuration for the day opener
type DayOpenerConfig struct {
	Locations []string
	Timezone  *time.Location
	// OpenHour and OpenMinute are the local time the day is opened at
	OpenHour   int
	OpenMinute int
	// CheckInterval is how often the clock is checked; failed locations are retried on each check
	CheckInterval time.Duration
	MaxRetries    int
}

// DayOpener opens every location's day once the configured local time has passed,
// so the first dashboard load of the morning finds the records already carried forward.
type DayOpener struct {
	config DayOpenerConfig
	open   OpenFunc
	now    func() time.Time
	logger *zap.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	isRunning bool
	lastDay   string
	pending   map[string]int // location -> attempts so far, for lastDay
}

// NewDayOpener creates a new day opener
func NewDayOpener(config DayOpenerConfig, open OpenFunc, logger *zap.Logger) *DayOpener {
	if config.Timezone == nil {
		config.Timezone = time.UTC
	}
	if config.CheckInterval <= 0 {
		config.CheckInterval = time.Minute
	}
	if config.MaxRetries <= 0 {
		config.MaxRetries = 3
	}
	return &DayOpener{
		config:  config,
		open:    open,
		now:     time.Now,
		logger:  logger,
		pending: map[string]int{},
	}
}

// Start starts the check loop
func (d *DayOpener) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = true
	d.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	d.wg.Add(1)
	go d.runLoop(ctx)

	d.logger.Info("Day opener started",
		zap.Int("open_hour", d.config.OpenHour),
		zap.Int("open_minute", d.config.OpenMinute),
		zap.String("timezone", d.config.Timezone.String()),
		zap.Strings("locations", d.config.Locations),
	)
	return nil
}

// Stop stops the loop and waits for a running check to finish
func (d *DayOpener) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.isRunning {
		d.mu.Unlock()
		return nil
	}
	d.isRunning = false
	d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Day opener stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *DayOpener) runLoop(ctx context.Context) {
	defer d.wg.Done()

	ticker := time.NewTicker(d.config.CheckInterval)
	defer ticker.Stop()

	d.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Check(ctx)
		}
	}
}

// Check opens the current day for every location that has not been opened yet.
// Before the configured time nothing happens.
func (d *DayOpener) Check(ctx context.Context) {
	local := d.now().In(d.config.Timezone)
	openAt := time.Date(local.Year(), local.Month(), local.Day(), d.config.OpenHour, d.config.OpenMinute, 0, 0, d.config.Timezone)
	if local.Before(openAt) {
		return
	}
	day := shared.Day(local)
	key := day.Format(shared.DateLayout)

	d.mu.Lock()
	if d.lastDay != key {
		d.lastDay = key
		d.pending = make(map[string]int, len(d.config.Locations))
		for _, loc := range d.config.Locations {
			d.pending[loc] = 0
		}
	}
	todo := make([]string, 0, len(d.pending))
	for _, loc := range d.config.Locations {
		if attempts, ok := d.pending[loc]; ok && attempts < d.config.MaxRetries {
			todo = append(todo, loc)
		}
	}
	d.mu.Unlock()

	for _, loc := range todo {
		err := d.open(ctx, loc, day)

		d.mu.Lock()
		if err == nil {
			delete(d.pending, loc)
		} else {
			d.pending[loc]++
		}
		attempts := d.pending[loc]
		d.mu.Unlock()

		if err != nil {
			d.logger.Error("Failed to open day",
				zap.String("location", loc),
				zap.String("date", key),
				zap.Int("attempt", attempts),
				zap.Error(err),
			)
			continue
		}
		d.logger.Info("Day opened", zap.String("location", loc), zap.String("date", key))
	}
}

// Pending returns the locations still to be opened for the current day
func (d *DayOpener) Pending() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.pending))
	for _, loc := range d.config.Locations {
		if _, ok := d.pending[loc]; ok {
			out = append(out, loc)
		}
	}
	return out
}
