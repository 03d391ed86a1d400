package reconciliation

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/retailstock/backend/internal/domain/catalog"
	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/domain/stock"
	"github.com/stretchr/testify/mock"
)

// memoryProducts is an in-memory catalog.ProductRepository
type memoryProducts struct {
	mu       sync.Mutex
	products map[uuid.UUID]catalog.Product
}

func newMemoryProducts(products ...*catalog.Product) *memoryProducts {
	m := &memoryProducts{products: make(map[uuid.UUID]catalog.Product)}
	for _, p := range products {
		m.products[p.ID] = *p
	}
	return m
}

func (m *memoryProducts) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return &p, nil
}

func (m *memoryProducts) FindAll(_ context.Context) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]catalog.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryProducts) FindActiveOn(ctx context.Context, date time.Time) ([]catalog.Product, error) {
	all, _ := m.FindAll(ctx)
	return catalog.FilterActive(all, date), nil
}

func (m *memoryProducts) FindDeletedBetween(ctx context.Context, from, to time.Time) ([]catalog.Product, error) {
	all, _ := m.FindAll(ctx)
	out := make([]catalog.Product, 0)
	for _, p := range all {
		if p.DeletedAt == nil {
			continue
		}
		d := shared.Day(*p.DeletedAt)
		if !d.Before(shared.Day(from)) && !d.After(shared.Day(to)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memoryProducts) Save(_ context.Context, p *catalog.Product) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products[p.ID] = *p
	return nil
}

// memoryRecords is an in-memory stock.DailyRecordRepository
type memoryRecords struct {
	mu      sync.Mutex
	records map[stock.RecordKey]*stock.DailyInventoryRecord
	saves   int
}

func newMemoryRecords() *memoryRecords {
	return &memoryRecords{records: make(map[stock.RecordKey]*stock.DailyInventoryRecord)}
}

func (m *memoryRecords) FindByKey(_ context.Context, key stock.RecordKey) (*stock.DailyInventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.records[key]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return r.Clone(), nil
}

func (m *memoryRecords) FindLatestBefore(_ context.Context, productID uuid.UUID, location string, date time.Time) (*stock.DailyInventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *stock.DailyInventoryRecord
	for k, r := range m.records {
		if k.ProductID != productID || k.Location != location || !k.Date.Before(shared.Day(date)) {
			continue
		}
		if latest == nil || r.Date.After(latest.Date) {
			latest = r
		}
	}
	if latest == nil {
		return nil, shared.ErrNotFound
	}
	return latest.Clone(), nil
}

func (m *memoryRecords) FindAfter(_ context.Context, productID uuid.UUID, location string, date time.Time) ([]stock.DailyInventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]stock.DailyInventoryRecord, 0)
	for k, r := range m.records {
		if k.ProductID == productID && k.Location == location && k.Date.After(shared.Day(date)) {
			out = append(out, *r.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (m *memoryRecords) FindByDay(_ context.Context, location string, date time.Time) ([]stock.DailyInventoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]stock.DailyInventoryRecord, 0)
	for k, r := range m.records {
		if k.Location == location && k.Date.Equal(shared.Day(date)) {
			out = append(out, *r.Clone())
		}
	}
	return out, nil
}

func (m *memoryRecords) Save(_ context.Context, r *stock.DailyInventoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[r.Key()] = r.Clone()
	m.saves++
	return nil
}

func (m *memoryRecords) saveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// recordingPublisher collects published events
type recordingPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, events ...shared.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType())
	}
	return out
}

// MockDailyRecordRepository is a mock implementation of stock.DailyRecordRepository
type MockDailyRecordRepository struct {
	mock.Mock
}

func (m *MockDailyRecordRepository) FindByKey(ctx context.Context, key stock.RecordKey) (*stock.DailyInventoryRecord, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.DailyInventoryRecord), args.Error(1)
}

func (m *MockDailyRecordRepository) FindLatestBefore(ctx context.Context, productID uuid.UUID, location string, date time.Time) (*stock.DailyInventoryRecord, error) {
	args := m.Called(ctx, productID, location, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.DailyInventoryRecord), args.Error(1)
}

func (m *MockDailyRecordRepository) FindAfter(ctx context.Context, productID uuid.UUID, location string, date time.Time) ([]stock.DailyInventoryRecord, error) {
	args := m.Called(ctx, productID, location, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.DailyInventoryRecord), args.Error(1)
}

func (m *MockDailyRecordRepository) FindByDay(ctx context.Context, location string, date time.Time) ([]stock.DailyInventoryRecord, error) {
	args := m.Called(ctx, location, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]stock.DailyInventoryRecord), args.Error(1)
}

func (m *MockDailyRecordRepository) Save(ctx context.Context, record *stock.DailyInventoryRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}
