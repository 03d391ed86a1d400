package event

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/retailstock/backend/internal/domain/shared"
	"github.com/retailstock/backend/internal/domain/stock"
)

// EventSerializer encodes the registered event types as JSON
type EventSerializer struct {
	mu       sync.RWMutex
	registry map[string]reflect.Type
}

// NewEventSerializer creates a serializer that knows every reconciliation event
func NewEventSerializer() *EventSerializer {
	s := &EventSerializer{registry: make(map[string]reflect.Type)}
	s.Register(stock.EventTypeDayOpened, &stock.DayOpenedEvent{})
	s.Register(stock.EventTypeRestockApplied, &stock.RestockAppliedEvent{})
	s.Register(stock.EventTypeEndingQuantityEdited, &stock.EndingQuantityEditedEvent{})
	s.Register(stock.EventTypeDaySettled, &stock.DaySettledEvent{})
	s.Register(stock.EventTypeStockBelowThreshold, &stock.StockBelowThresholdEvent{})
	return s
}

// Register maps eventType to the concrete type of instance
func (s *EventSerializer) Register(eventType string, instance shared.DomainEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := reflect.TypeOf(instance)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	s.registry[eventType] = t
}

// Serialize encodes ev as JSON. Events whose type is not registered, or is
// registered to a different Go type, are refused so consumers never see an
// unknown payload shape.
func (s *EventSerializer) Serialize(ev shared.DomainEvent) ([]byte, error) {
	s.mu.RLock()
	want, ok := s.registry[ev.EventType()]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown event type: %s", ev.EventType())
	}

	got := reflect.TypeOf(ev)
	if got.Kind() == reflect.Ptr {
		got = got.Elem()
	}
	if got != want {
		return nil, fmt.Errorf("%s is registered as %s, got %s", ev.EventType(), want, got)
	}
	return json.Marshal(ev)
}

// RegisteredTypes returns the known event types sorted by name
func (s *EventSerializer) RegisteredTypes() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	types := make([]string, 0, len(s.registry))
	for t := range s.registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
