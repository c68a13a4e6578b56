package httpx

import (
	"time"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
)

type CreateOrderRequest struct {
	CakeConfig domain.CakeConfiguration `json:"cake_config"`
	Delivery   DeliveryDTO              `json:"delivery"`

	// BasePrice overrides the size table when ordering from the catalog.
	BasePrice *int64 `json:"base_price,omitempty"`
}

type DeliveryDTO struct {
	Date                string `json:"date"`
	TimeWindow          string `json:"time_window,omitempty"`
	Address             string `json:"address,omitempty"`
	SpecialInstructions string `json:"special_instructions,omitempty"`
}

type UpdateStatusRequest struct {
	Status              string     `json:"status"`
	StaffID             string     `json:"staff_id"`
	Notes               string     `json:"notes,omitempty"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
}

type UpdatePaymentRequest struct {
	PaymentStatus string `json:"payment_status"`
}

type AddEventRequest struct {
	StaffID string `json:"staff_id"`

	// EventType is an optional short code; defaults to "tracking_note".
	EventType           string     `json:"event_type,omitempty"`
	Description         string     `json:"description"`
	Notes               string     `json:"notes,omitempty"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
}

type OrderResponse struct {
	ID          string                   `json:"id"`
	OrderNumber string                   `json:"order_number"`
	CakeConfig  domain.CakeConfiguration `json:"cake_config"`

	// Servings is derived from the cake size for display; 0 when the
	// stored size predates the current size table.
	Servings      int         `json:"servings"`
	TotalAmount   int64       `json:"total_amount"`
	Status        string      `json:"status"`
	PaymentStatus string      `json:"payment_status"`
	Delivery      DeliveryDTO `json:"delivery"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
}

type EventResponse struct {
	ID                  string     `json:"id"`
	OrderID             string     `json:"order_id"`
	EventType           string     `json:"event_type"`
	Description         string     `json:"description"`
	Notes               string     `json:"notes,omitempty"`
	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
	ActualCompletion    *time.Time `json:"actual_completion,omitempty"`
	CreatedAt           string     `json:"created_at"`
	CreatedBy           string     `json:"created_by"`
}

type ProgressResponse struct {
	Percent        int    `json:"percent"`
	CountdownLabel string `json:"countdown_label"`
	Urgency        string `json:"urgency"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
