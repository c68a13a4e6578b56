package domain

// OrderStatus is the fulfillment stage of an order. The documented forward
// order is pending → confirmed → preparing → baking → decorating → ready →
// out_for_delivery → delivered, with cancelled reachable from any
// non-terminal state. Staff tooling may jump between non-terminal states
// freely; only the terminal states are guarded.
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusPreparing      OrderStatus = "preparing"
	StatusBaking         OrderStatus = "baking"
	StatusDecorating     OrderStatus = "decorating"
	StatusReady          OrderStatus = "ready"
	StatusOutForDelivery OrderStatus = "out_for_delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// AllStatuses lists every status in forward order, cancelled last.
// Used by validation and by the admin board's column layout.
func AllStatuses() []OrderStatus {
	return []OrderStatus{
		StatusPending,
		StatusConfirmed,
		StatusPreparing,
		StatusBaking,
		StatusDecorating,
		StatusReady,
		StatusOutForDelivery,
		StatusDelivered,
		StatusCancelled,
	}
}

// IsValid reports whether s is one of the nine enumerated statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusBaking,
		StatusDecorating, StatusReady, StatusOutForDelivery,
		StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// PaymentStatus is the payment-collection state of an order. It is
// orthogonal to OrderStatus: staff may mark an order delivered while
// payment is still pending.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// IsValid reports whether p is one of the four enumerated payment states.
func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return true
	}
	return false
}
