package events

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(ctx context.Context, event interface{}) error
}

// Supplier domain events
type SupplierCreatedEvent struct {
	SupplierID  int64            `json:"supplier_id"`
	CompanyName string           `json:"company_name"`
	Email       string           `json:"email,omitempty"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

type SupplierUpdatedEvent struct {
	SupplierID  int64            `json:"supplier_id"`
	CompanyName string           `json:"company_name"`
	Rating      *decimal.Decimal `json:"rating,omitempty"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

type SupplierDeletedEvent struct {
	SupplierID  int64     `json:"supplier_id"`
	HadProducts bool      `json:"had_products"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Product domain events
type ProductCreatedEvent struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Code          string          `json:"code,omitempty"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	SupplierID    int64           `json:"supplier_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type ProductUpdatedEvent struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Category      string          `json:"category"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	SupplierID    int64           `json:"supplier_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

type ProductDeletedEvent struct {
	ProductID  int64     `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type StockQuantityUpdatedEvent struct {
	ProductID   int64     `json:"product_id"`
	NewQuantity int       `json:"new_quantity"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// DefaultEventRetention is how many recent events the in-memory publisher keeps.
const DefaultEventRetention = 1000

// InMemoryEventPublisher keeps the most recent published events in process.
// It is the default when no broker is configured; older events are dropped.
type InMemoryEventPublisher struct {
	logger *zap.Logger
	mu     sync.Mutex
	events []interface{}
	next   int
	full   bool
}

func NewEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	return newEventPublisher(logger, DefaultEventRetention)
}

func newEventPublisher(logger *zap.Logger, retention int) *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]interface{}, retention),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event interface{}) error {
	p.mu.Lock()
	p.events[p.next] = event
	p.next = (p.next + 1) % len(p.events)
	if p.next == 0 {
		p.full = true
	}
	p.mu.Unlock()
	p.logger.Debug("Event published (in-memory)", zap.String("event-type", EventType(event)))
	return nil
}

// Events returns the retained events, oldest first.
func (p *InMemoryEventPublisher) Events() []interface{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.full {
		return append([]interface{}(nil), p.events[:p.next]...)
	}
	out := make([]interface{}, 0, len(p.events))
	out = append(out, p.events[p.next:]...)
	return append(out, p.events[:p.next]...)
}

// EventType returns the event type as string
func EventType(event interface{}) string {
	switch event.(type) {
	case SupplierCreatedEvent:
		return "SupplierCreated"
	case SupplierUpdatedEvent:
		return "SupplierUpdated"
	case SupplierDeletedEvent:
		return "SupplierDeleted"
	case ProductCreatedEvent:
		return "ProductCreated"
	case ProductUpdatedEvent:
		return "ProductUpdated"
	case ProductDeletedEvent:
		return "ProductDeleted"
	case StockQuantityUpdatedEvent:
		return "StockQuantityUpdated"
	default:
		return "Unknown"
	}
}
