// Package memory provides a mutex-guarded in-memory implementation of
// store.Repository for tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/store"
)

// Ensure the port is satisfied at compile time.
var _ store.Repository = (*Repository)(nil)

// Repository keeps everything in maps. Orders are stored and returned by
// value copy so callers can never mutate shared state behind the lock.
type Repository struct {
	mu     sync.RWMutex
	orders map[string]domain.Order
	events map[string][]domain.OrderEvent
	seqs   map[string]int64
}

func New() *Repository {
	return &Repository{
		orders: make(map[string]domain.Order),
		events: make(map[string][]domain.OrderEvent),
		seqs:   make(map[string]int64),
	}
}

func (r *Repository) CreateOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = *order
	return nil
}

func (r *Repository) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return &order, nil
}

func (r *Repository) ListOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orders []*domain.Order
	for _, order := range r.orders {
		if status != "" && order.Status != status {
			continue
		}
		o := order
		orders = append(orders, &o)
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *Repository) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedAt time.Time, event *domain.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.Status = status
	order.UpdatedAt = updatedAt
	r.orders[orderID] = order
	r.events[orderID] = append(r.events[orderID], *event)
	return nil
}

func (r *Repository) SetPaymentStatus(ctx context.Context, orderID string, payment domain.PaymentStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	order.PaymentStatus = payment
	order.UpdatedAt = updatedAt
	r.orders[orderID] = order
	return nil
}

func (r *Repository) AppendEvent(ctx context.Context, event *domain.OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events[event.OrderID] = append(r.events[event.OrderID], *event)
	return nil
}

func (r *Repository) ListEvents(ctx context.Context, orderID string) ([]domain.OrderEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	events := make([]domain.OrderEvent, len(r.events[orderID]))
	copy(events, r.events[orderID])
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}

func (r *Repository) NextOrderSeq(ctx context.Context, day string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seqs[day]++
	return r.seqs[day], nil
}
