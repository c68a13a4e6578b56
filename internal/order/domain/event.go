package domain

import "time"

// Event types written by the lifecycle service. Staff may also record
// free-form tracking notes with their own short codes.
const (
	EventStatusUpdated = "status_updated"
	EventTrackingNote  = "tracking_note"
)

// OrderEvent is one immutable entry in an order's audit trail. Events are
// appended on every status transition and on manual staff notes; they are
// never edited or deleted. The sequence ordered by created_at is the
// authoritative history of the order.
type OrderEvent struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`

	// EventType is a short code such as "status_updated".
	EventType   string `json:"event_type"`
	Description string `json:"description"`
	Notes       string `json:"notes,omitempty"`

	EstimatedCompletion *time.Time `json:"estimated_completion,omitempty"`
	ActualCompletion    *time.Time `json:"actual_completion,omitempty"`

	// TraceID/SpanID are the W3C identifiers of the span active when the
	// event was written. Empty when no span was active (e.g. unit tests).
	TraceID string `json:"trace_id,omitempty"`
	SpanID  string `json:"span_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	CreatedBy string    `json:"created_by"`
}
