// Package store defines the persistence port for the order core.
//
// The lifecycle service depends on this abstraction, not on SQLite
// directly, so the implementation can be swapped for Postgres or for the
// in-memory store used by tests and local development.
package store

import (
	"context"
	"time"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
)

// Repository is the port for order persistence. Implementations return
// domain.ErrOrderNotFound for unknown ids and otherwise propagate their
// own storage errors unchanged; the core performs no retries.
type Repository interface {
	// CreateOrder persists a new order.
	CreateOrder(ctx context.Context, order *domain.Order) error

	// GetOrder returns the order with the given id.
	GetOrder(ctx context.Context, id string) (*domain.Order, error)

	// ListOrders returns orders filtered by status, newest first.
	// An empty status returns every order.
	ListOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)

	// SetStatus updates the order's status and updated_at and appends the
	// transition event. Implementations with transactional storage must
	// perform both writes in a single transaction so the audit trail can
	// never miss a transition that took effect.
	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus, updatedAt time.Time, event *domain.OrderEvent) error

	// SetPaymentStatus updates only payment_status and updated_at.
	SetPaymentStatus(ctx context.Context, orderID string, payment domain.PaymentStatus, updatedAt time.Time) error

	// AppendEvent appends a manual event to the order's audit trail.
	// The log is append-only: no update or delete operation exists.
	AppendEvent(ctx context.Context, event *domain.OrderEvent) error

	// ListEvents returns the order's events ascending by created_at,
	// fully materialized.
	ListEvents(ctx context.Context, orderID string) ([]domain.OrderEvent, error)

	// NextOrderSeq returns the next value of the per-day order-number
	// sequence for the given day key (YYYY-MM-DD).
	NextOrderSeq(ctx context.Context, day string) (int64, error)
}
