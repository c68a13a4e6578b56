// Package lifecycle is the only component allowed to mutate an order's
// status and payment fields. Every status transition appends exactly one
// event to the order's audit trail; the repository performs both writes in
// a single transaction where the storage supports it.
package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/pricing"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/progress"
	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/store"
)

// CreateOrderInput is everything the ordering flow supplies for a new order.
type CreateOrderInput struct {
	Config   domain.CakeConfiguration
	Delivery domain.DeliveryDetails

	// BasePrice, when set, overrides the size table: the customer started
	// from a catalog item that carries its own price.
	BasePrice *domain.Money
}

// Progress is the read model for the customer-facing tracker.
type Progress struct {
	Percent   int                `json:"percent"`
	Countdown progress.Countdown `json:"countdown"`
}

// Service is the order lifecycle controller and read model.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error)
	GetEvents(ctx context.Context, orderID string) ([]domain.OrderEvent, error)
	GetProgress(ctx context.Context, orderID string) (*Progress, error)

	SetStatus(ctx context.Context, orderID string, status domain.OrderStatus, staffID, notes string, estimatedCompletion *time.Time) (*domain.Order, error)
	SetPaymentStatus(ctx context.Context, orderID string, payment domain.PaymentStatus) (*domain.Order, error)
	AddTrackingNote(ctx context.Context, orderID, staffID, eventType, description, notes string, estimatedCompletion *time.Time) (*domain.OrderEvent, error)
}

func NewService(repo store.Repository) Service {
	return &service{repo: repo}
}

type service struct {
	repo store.Repository
}

// CreateOrder validates the configuration, prices it once, and persists the
// order in the initial pending state. The stored total is never recomputed.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*domain.Order, error) {
	if err := input.Config.Validate(); err != nil {
		return nil, err
	}

	var total domain.Money
	if input.BasePrice != nil {
		total = pricing.PriceFromBase(*input.BasePrice, input.Config)
	} else {
		total = pricing.Price(input.Config)
	}
	total = pricing.ApplyExtras(total, input.Config.Customization)

	number, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:            uuid.NewString(),
		OrderNumber:   number,
		CakeConfig:    input.Config,
		TotalAmount:   total,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		Delivery:      input.Delivery,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "order created",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"total_amount", int64(order.TotalAmount),
	)
	return order, nil
}

func (s *service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, status domain.OrderStatus) ([]*domain.Order, error) {
	if status != "" && !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.ListOrders(ctx, status)
}

func (s *service) GetEvents(ctx context.Context, orderID string) ([]domain.OrderEvent, error) {
	if _, err := s.repo.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListEvents(ctx, orderID)
}

// GetProgress derives the tracker values from current state. Nothing is
// stored: recomputing on every read avoids staleness when the status or
// delivery date changes.
func (s *service) GetProgress(ctx context.Context, orderID string) (*Progress, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &Progress{
		Percent:   progress.Percent(order.Status),
		Countdown: progress.Until(order.Delivery.Date, time.Now().UTC()),
	}, nil
}

// SetStatus moves the order to the given status and records the transition.
// The graph is deliberately permissive: staff may set any non-terminal order
// to any status, forward or backward. Only terminal orders are locked.
func (s *service) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus, staffID, notes string, estimatedCompletion *time.Time) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, domain.ErrInvalidStatus
	}

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.Status.IsTerminal() {
		return nil, domain.ErrOrderCompleted
	}

	now := time.Now().UTC()
	event := s.newEvent(ctx, orderID, staffID, now)
	event.EventType = domain.EventStatusUpdated
	event.Description = fmt.Sprintf("Order status updated to %s", status)
	event.Notes = notes
	event.EstimatedCompletion = estimatedCompletion
	if status == domain.StatusDelivered {
		event.ActualCompletion = &now
	}

	if err := s.repo.SetStatus(ctx, orderID, status, now, event); err != nil {
		return nil, err
	}

	order.Status = status
	order.UpdatedAt = now

	slog.InfoContext(ctx, "order status updated",
		"order_id", orderID,
		"status", string(status),
		"staff_id", staffID,
	)
	return order, nil
}

// SetPaymentStatus updates the payment sub-state. It is independent of the
// fulfillment status and does not append an audit event.
func (s *service) SetPaymentStatus(ctx context.Context, orderID string, payment domain.PaymentStatus) (*domain.Order, error) {
	if !payment.IsValid() {
		return nil, domain.ErrInvalidPaymentStatus
	}

	order, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.repo.SetPaymentStatus(ctx, orderID, payment, now); err != nil {
		return nil, err
	}

	order.PaymentStatus = payment
	order.UpdatedAt = now

	slog.InfoContext(ctx, "order payment status updated",
		"order_id", orderID,
		"payment_status", string(payment),
	)
	return order, nil
}

// AddTrackingNote appends a free-form staff event outside any status change.
// Staff tooling may supply its own short event code; an empty eventType
// falls back to "tracking_note".
func (s *service) AddTrackingNote(ctx context.Context, orderID, staffID, eventType, description, notes string, estimatedCompletion *time.Time) (*domain.OrderEvent, error) {
	if _, err := s.repo.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}

	if eventType == "" {
		eventType = domain.EventTrackingNote
	}

	event := s.newEvent(ctx, orderID, staffID, time.Now().UTC())
	event.EventType = eventType
	event.Description = description
	event.Notes = notes
	event.EstimatedCompletion = estimatedCompletion

	if err := s.repo.AppendEvent(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

func (s *service) newEvent(ctx context.Context, orderID, staffID string, at time.Time) *domain.OrderEvent {
	ti := extractTraceInfo(ctx)
	return &domain.OrderEvent{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		TraceID:   ti.TraceID,
		SpanID:    ti.SpanID,
		CreatedAt: at,
		CreatedBy: staffID,
	}
}

// nextOrderNumber builds the human-readable number from a per-day sequence,
// e.g. "DB-20260831-004".
func (s *service) nextOrderNumber(ctx context.Context) (string, error) {
	day := time.Now().UTC().Format("2006-01-02")
	seq, err := s.repo.NextOrderSeq(ctx, day)
	if err != nil {
		return "", fmt.Errorf("generate order number: %w", err)
	}
	compact := day[:4] + day[5:7] + day[8:]
	return fmt.Sprintf("DB-%s-%03d", compact, seq), nil
}
