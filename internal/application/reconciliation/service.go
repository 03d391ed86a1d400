// Package reconciliation runs the daily inventory reconciliation for each location.
package reconciliation

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/catalog"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/domain/stock"
	"github.com/retailstock/backend/internal/infrastructure/telemetry"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const serviceName = "reconciliation"

// RecordCache is the read-through cache in front of the record repository
type RecordCache interface {
	Get(ctx context.Context, key stock.RecordKey) (*stock.DailyInventoryRecord, bool, error)
	Set(ctx context.Context, record *stock.DailyInventoryRecord) error
	Invalidate(ctx context.Context, key stock.RecordKey) error
}

// Options configures a Service
type Options struct {
	Locations []string
	// Timezone decides which calendar day "today" is
	Timezone *time.Location
	Now      func() time.Time
	NewID    stock.IDGenerator
}

// Service opens, restocks, edits and settles daily records.
// Mutations of one (product, location, day) are serialized.
type Service struct {
	products  catalog.ProductRepository
	records   stock.DailyRecordRepository
	locations *LocationDirectory
	timezone  *time.Location
	now       func() time.Time
	newID     stock.IDGenerator
	locks     *keyedMutex
	logger    *zap.Logger

	cache     RecordCache
	publisher shared.EventPublisher
	metrics   *telemetry.ReconciliationMetrics
}

// NewService creates a Service
func NewService(products catalog.ProductRepository, records stock.DailyRecordRepository, opts Options, logger *zap.Logger) *Service {
	if opts.Timezone == nil {
		opts.Timezone = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = stock.DefaultIDGenerator
	}
	return &Service{
		products:  products,
		records:   records,
		locations: NewLocationDirectory(opts.Locations),
		timezone:  opts.Timezone,
		now:       opts.Now,
		newID:     opts.NewID,
		locks:     newKeyedMutex(),
		logger:    logger,
	}
}

// SetCache sets the record cache
func (s *Service) SetCache(cache RecordCache) {
	s.cache = cache
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.publisher = publisher
}

// SetMetrics sets the business metrics collector
func (s *Service) SetMetrics(m *telemetry.ReconciliationMetrics) {
	s.metrics = m
}

// Locations returns the configured locations
func (s *Service) Locations() []LocationDTO {
	return s.locations.List()
}

// Today returns the current business day in the configured timezone
func (s *Service) Today() time.Time {
	return shared.Day(s.now().In(s.timezone))
}

// ResolveDate parses a YYYY-MM-DD date; an empty string means today
func (s *Service) ResolveDate(raw string) (time.Time, error) {
	if raw == "" {
		return s.Today(), nil
	}
	day, err := shared.ParseDay(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", raw, shared.ErrInvalidInput)
	}
	return day, nil
}

// OpenDay returns a record for every product active at location on date.
// Products without a stored record are opened from their latest earlier record and saved.
func (s *Service) OpenDay(ctx context.Context, location string, date time.Time) (*DailyViewDTO, error) {
	loc, err := s.locations.Resolve(location)
	if err != nil {
		return nil, err
	}
	day := shared.Day(date)

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "open_day",
		telemetry.SpanAttrLocation, loc,
		telemetry.SpanAttrBusinessDate, day.Format(shared.DateLayout),
	)
	defer span.End()
	defer s.observe(ctx, "open_day", time.Now())

	records, err := s.openAll(ctx, loc, day)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, "record_count", len(records))

	view := &DailyViewDTO{
		Location:     loc,
		LocationName: DisplayName(loc),
		Date:         day.Format(shared.DateLayout),
		Categories:   make([]CategoryGroupDTO, 0),
	}
	groups := make(map[string]int)
	for _, r := range records {
		i, ok := groups[r.Category]
		if !ok {
			i = len(view.Categories)
			groups[r.Category] = i
			view.Categories = append(view.Categories, CategoryGroupDTO{Category: r.Category})
		}
		view.Categories[i].Records = append(view.Categories[i].Records, ToRecordDTO(r))
	}
	return view, nil
}

// GetRecord returns one product's record, opening it if needed
func (s *Service) GetRecord(ctx context.Context, location string, productID uuid.UUID, date time.Time) (*RecordDTO, error) {
	return s.mutate(ctx, "get_record", location, productID, date, func(r *stock.DailyInventoryRecord) (*stock.DailyInventoryRecord, []shared.DomainEvent, error) {
		return r, nil, nil
	})
}

// Restock adds a batch received during the day
func (s *Service) Restock(ctx context.Context, in RestockInput) (*RecordDTO, error) {
	return s.mutate(ctx, "restock", in.Location, in.ProductID, in.Date, func(r *stock.DailyInventoryRecord) (*stock.DailyInventoryRecord, []shared.DomainEvent, error) {
		next, err := r.ApplyRestock(in.Quantity, in.ExpiryDate, s.newID)
		if err != nil {
			return nil, nil, err
		}
		added := next.NewBatches[len(next.NewBatches)-1]
		if s.metrics != nil {
			s.metrics.RecordRestock(ctx, next.Location, in.Quantity)
		}
		return next, []shared.DomainEvent{stock.NewRestockAppliedEvent(next, added)}, nil
	})
}

// EditEnding replaces the ending ledger with the counted batches
func (s *Service) EditEnding(ctx context.Context, in EditInput) (*RecordDTO, error) {
	return s.mutate(ctx, "edit_ending", in.Location, in.ProductID, in.Date, func(r *stock.DailyInventoryRecord) (*stock.DailyInventoryRecord, []shared.DomainEvent, error) {
		next, err := r.EditEndingQuantity(in.Batches)
		if err != nil {
			return nil, nil, err
		}
		if s.metrics != nil {
			sales, _ := next.Sales.Sub(r.Sales).Float64()
			profit, _ := next.Profit.Sub(r.Profit).Float64()
			s.metrics.RecordSales(ctx, next.Location, next.Category, next.QuantitySold-r.QuantitySold, sales, profit)
		}
		events := []shared.DomainEvent{stock.NewEndingQuantityEditedEvent(next)}
		if next.IsLowStock() {
			events = append(events, stock.NewStockBelowThresholdEvent(next))
		}
		return next, events, nil
	})
}

// Settle validates a record and closes it. Settling a settled record returns it unchanged.
func (s *Service) Settle(ctx context.Context, location string, productID uuid.UUID, date time.Time) (*RecordDTO, error) {
	return s.mutate(ctx, "settle", location, productID, date, func(r *stock.DailyInventoryRecord) (*stock.DailyInventoryRecord, []shared.DomainEvent, error) {
		if r.State == stock.StateSettled {
			return r, nil, nil
		}
		next, err := r.Settle()
		if err != nil {
			return nil, nil, err
		}
		return next, []shared.DomainEvent{stock.NewDaySettledEvent(next)}, nil
	})
}

// Summary totals a location's day and lists the products below their reorder threshold
func (s *Service) Summary(ctx context.Context, location string, date time.Time) (*SummaryDTO, error) {
	loc, err := s.locations.Resolve(location)
	if err != nil {
		return nil, err
	}
	day := shared.Day(date)

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, "summary",
		telemetry.SpanAttrLocation, loc,
		telemetry.SpanAttrBusinessDate, day.Format(shared.DateLayout),
	)
	defer span.End()

	records, err := s.openAll(ctx, loc, day)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	sum := &SummaryDTO{
		Location:     loc,
		LocationName: DisplayName(loc),
		Date:         day.Format(shared.DateLayout),
		Products:     len(records),
		Sales:        decimal.Zero,
		Profit:       decimal.Zero,
		LowStock:     make([]LowStockDTO, 0),
	}
	var counts stock.StatusCounts
	for _, r := range records {
		sum.QtyYesterday += r.QtyYesterday
		sum.QtyRestocked += r.QtyRestocked
		sum.QuantityAtStart += r.QuantityAtStart
		sum.QuantityAtEnd += r.QuantityAtEnd
		sum.QuantitySold += r.QuantitySold
		sum.Sales = sum.Sales.Add(r.Sales)
		sum.Profit = sum.Profit.Add(r.Profit)
		counts.Merge(r.StatusCounts)
		if r.State == stock.StateSettled {
			sum.Settled++
		}
		if r.IsLowStock() {
			sum.LowStock = append(sum.LowStock, LowStockDTO{
				ProductID:     r.ProductID,
				ProductName:   r.ProductName,
				Category:      r.Category,
				QuantityAtEnd: r.QuantityAtEnd,
				Threshold:     r.ReorderThreshold,
			})
		}
	}
	sum.StatusCounts = toStatusCountsDTO(counts)
	sort.SliceStable(sum.LowStock, func(i, j int) bool {
		return sum.LowStock[i].QuantityAtEnd < sum.LowStock[j].QuantityAtEnd
	})

	if s.metrics != nil {
		s.metrics.RecordLowStock(ctx, loc, int64(len(sum.LowStock)))
	}
	return sum, nil
}

// ActiveProducts returns the catalog as it stood on date, grouped by category
func (s *Service) ActiveProducts(ctx context.Context, date time.Time) ([]ProductGroupDTO, error) {
	products, err := s.products.FindActiveOn(ctx, shared.Day(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	names, groups := catalog.GroupByCategory(products)
	out := make([]ProductGroupDTO, 0, len(names))
	for _, name := range names {
		g := ProductGroupDTO{Category: name, Products: make([]ProductDTO, 0, len(groups[name]))}
		for i := range groups[name] {
			g.Products = append(g.Products, ToProductDTO(&groups[name][i]))
		}
		out = append(out, g)
	}
	return out, nil
}

// RecentlyDeleted lists products deleted within the advisory window ending on date
func (s *Service) RecentlyDeleted(ctx context.Context, date time.Time) ([]catalog.DeletionAdvisory, error) {
	day := shared.Day(date)
	from := day.AddDate(0, 0, -catalog.RecentlyDeletedWindowDays)
	products, err := s.products.FindDeletedBetween(ctx, from, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list deleted products: %w", err)
	}
	return catalog.RecentlyDeleted(products, day), nil
}

type mutation func(*stock.DailyInventoryRecord) (*stock.DailyInventoryRecord, []shared.DomainEvent, error)

// mutate loads the record under its key lock, applies fn and persists the result when it changed
func (s *Service) mutate(ctx context.Context, op, location string, productID uuid.UUID, date time.Time, fn mutation) (*RecordDTO, error) {
	loc, err := s.locations.Resolve(location)
	if err != nil {
		return nil, s.reject(ctx, op, err)
	}
	key := stock.NewRecordKey(productID, loc, date)

	ctx, span := telemetry.StartServiceSpan(ctx, serviceName, op,
		telemetry.SpanAttrLocation, loc,
		telemetry.SpanAttrBusinessDate, key.Date.Format(shared.DateLayout),
		telemetry.SpanAttrProductID, productID.String(),
	)
	defer span.End()
	defer s.observe(ctx, op, time.Now())

	unlock := s.locks.Lock(key.String())
	defer unlock()

	current, err := s.load(ctx, key)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, s.reject(ctx, op, err)
	}

	var (
		next   *stock.DailyInventoryRecord
		events []shared.DomainEvent
	)
	telemetry.WithProfilingLabels(ctx, telemetry.OperationLabels(op, loc), func(context.Context) {
		next, events, err = fn(current)
	})
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, s.reject(ctx, op, err)
	}

	if next != current {
		var later []stock.DailyInventoryRecord
		if !next.SameEnding(current) {
			if later, err = s.laterRecords(ctx, key); err != nil {
				telemetry.RecordError(span, err)
				return nil, s.reject(ctx, op, err)
			}
		}
		if err := s.persist(ctx, next); err != nil {
			telemetry.RecordError(span, err)
			return nil, err
		}
		s.publish(ctx, events...)
		s.propagate(ctx, later)
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrState, string(next.State),
		telemetry.SpanAttrBatchCount, len(next.Batches),
	)
	dto := ToRecordDTO(next)
	return &dto, nil
}

// openAll returns the day's records for every active product, in catalog order
func (s *Service) openAll(ctx context.Context, loc string, day time.Time) ([]*stock.DailyInventoryRecord, error) {
	products, err := s.products.FindActiveOn(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	stored, err := s.records.FindByDay(ctx, loc, day)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for %s on %s: %w", loc, day.Format(shared.DateLayout), err)
	}
	byProduct := make(map[uuid.UUID]*stock.DailyInventoryRecord, len(stored))
	for i := range stored {
		byProduct[stored[i].ProductID] = &stored[i]
	}

	names, groups := catalog.GroupByCategory(products)
	out := make([]*stock.DailyInventoryRecord, 0, len(products))
	for _, name := range names {
		for i := range groups[name] {
			p := &groups[name][i]
			if r, ok := byProduct[p.ID]; ok && r.State == stock.StateSettled {
				out = append(out, r)
				continue
			}
			r, err := s.openLocked(ctx, p, stock.NewRecordKey(p.ID, loc, day))
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *Service) openLocked(ctx context.Context, product *catalog.Product, key stock.RecordKey) (*stock.DailyInventoryRecord, error) {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	// another request may have opened it since FindByDay
	r, err := s.records.FindByKey(ctx, key)
	if err == nil {
		return s.reconcile(ctx, r)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, fmt.Errorf("failed to load record %s: %w", key, err)
	}
	return s.open(ctx, product, key)
}

// load returns the stored record for key, opening a new one when none exists
func (s *Service) load(ctx context.Context, key stock.RecordKey) (*stock.DailyInventoryRecord, error) {
	if s.cache != nil {
		r, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Record cache read failed", zap.String("key", key.String()), zap.Error(err))
		} else if ok {
			return s.reconcile(ctx, r)
		}
	}

	r, err := s.records.FindByKey(ctx, key)
	switch {
	case err == nil:
		if r, err = s.reconcile(ctx, r); err != nil {
			return nil, err
		}
		s.remember(ctx, r)
		return r, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, fmt.Errorf("failed to load record %s: %w", key, err)
	}

	product, err := s.products.FindByID(ctx, key.ProductID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, fmt.Errorf("product %s: %w", key.ProductID, shared.ErrUnknownProduct)
		}
		return nil, fmt.Errorf("failed to load product %s: %w", key.ProductID, err)
	}
	return s.open(ctx, product, key)
}

// open builds the day's opening record from the latest earlier record and saves it
func (s *Service) open(ctx context.Context, product *catalog.Product, key stock.RecordKey) (*stock.DailyInventoryRecord, error) {
	previous, err := s.previous(ctx, key)
	if err != nil {
		return nil, err
	}

	r, err := stock.OpenDay(product, previous, nil, stock.DayContext{
		Date:     key.Date,
		Location: key.Location,
		NewID:    s.newID,
	})
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, r); err != nil {
		return nil, err
	}

	s.logger.Debug("Day opened",
		zap.String("key", key.String()),
		zap.Int64("qty_yesterday", r.QtyYesterday),
		zap.Int("batches", len(r.Batches)),
	)
	s.publish(ctx, stock.NewDayOpenedEvent(r))
	return r, nil
}

// previous returns the latest record before key's day, or nil when there is none
func (s *Service) previous(ctx context.Context, key stock.RecordKey) (*stock.DailyInventoryRecord, error) {
	previous, err := s.records.FindLatestBefore(ctx, key.ProductID, key.Location, key.Date)
	switch {
	case err == nil:
		return previous, nil
	case errors.Is(err, shared.ErrNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("failed to load previous record for %s: %w", key, err)
	}
}

// reconcile rebuilds an unsettled record whose opening no longer matches the previous day's close.
// The caller holds the record's key lock.
func (s *Service) reconcile(ctx context.Context, r *stock.DailyInventoryRecord) (*stock.DailyInventoryRecord, error) {
	if r.State == stock.StateSettled {
		return r, nil
	}
	previous, err := s.previous(ctx, r.Key())
	if err != nil {
		return nil, err
	}
	if r.Continues(previous) {
		return r, nil
	}

	rebuilt, err := r.Rebase(previous)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild record %s: %w", r.Key(), err)
	}
	if err := s.persist(ctx, rebuilt); err != nil {
		return nil, err
	}
	s.logger.Info("Record rebuilt from previous day",
		zap.String("key", r.Key().String()),
		zap.Int64("qty_yesterday_was", r.QtyYesterday),
		zap.Int64("qty_yesterday", rebuilt.QtyYesterday),
		zap.String("state", string(rebuilt.State)),
	)
	return rebuilt, nil
}

// laterRecords returns the records after key's day, refusing when one of them is already settled
func (s *Service) laterRecords(ctx context.Context, key stock.RecordKey) ([]stock.DailyInventoryRecord, error) {
	later, err := s.records.FindAfter(ctx, key.ProductID, key.Location, key.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load records after %s: %w", key, err)
	}
	for i := range later {
		if later[i].State == stock.StateSettled {
			return nil, fmt.Errorf("%s is settled: %w", later[i].Key(), shared.ErrInvalidState)
		}
	}
	return later, nil
}

// propagate rebuilds later records in date order after an earlier day's ending changed.
// Failures are logged; the record is rebuilt again on its next load.
func (s *Service) propagate(ctx context.Context, later []stock.DailyInventoryRecord) {
	for i := range later {
		if err := s.reconcileKey(ctx, later[i].Key()); err != nil {
			s.logger.Warn("Failed to rebuild later record", zap.String("key", later[i].Key().String()), zap.Error(err))
			return
		}
	}
}

func (s *Service) reconcileKey(ctx context.Context, key stock.RecordKey) error {
	unlock := s.locks.Lock(key.String())
	defer unlock()

	r, err := s.records.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	_, err = s.reconcile(ctx, r)
	return err
}

func (s *Service) persist(ctx context.Context, r *stock.DailyInventoryRecord) error {
	if err := s.records.Save(ctx, r); err != nil {
		if s.cache != nil {
			_ = s.cache.Invalidate(ctx, r.Key())
		}
		return fmt.Errorf("failed to save record %s: %w", r.Key(), err)
	}
	s.remember(ctx, r)
	return nil
}

func (s *Service) remember(ctx context.Context, r *stock.DailyInventoryRecord) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, r); err != nil {
		s.logger.Warn("Record cache write failed", zap.String("key", r.Key().String()), zap.Error(err))
	}
}

func (s *Service) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Error("Failed to publish events", zap.Int("count", len(events)), zap.Error(err))
	}
}

// reject counts a refused operation by its domain error code and passes err through
func (s *Service) reject(ctx context.Context, op string, err error) error {
	var de *shared.DomainError
	if !errors.As(err, &de) {
		return err
	}
	s.logger.Info("Operation rejected",
		zap.String("operation", op),
		zap.String("code", de.Code),
		zap.Error(err),
	)
	if s.metrics != nil {
		s.metrics.RecordRejection(ctx, op, de.Code)
	}
	return err
}

func (s *Service) observe(ctx context.Context, op string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordDuration(ctx, op, time.Since(start))
	}
}
