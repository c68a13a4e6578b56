package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrOrderNotFound is returned for operations referencing an unknown
	// order id. Storage errors are never folded into it.
	ErrOrderNotFound = errors.New("order not found")

	// ErrOrderCompleted is returned when mutating an order whose status is
	// terminal (delivered or cancelled).
	ErrOrderCompleted = errors.New("order is in a terminal state")

	// ErrInvalidStatus is returned when a caller supplies a status value
	// outside the enumerated set.
	ErrInvalidStatus = errors.New("invalid order status")

	// ErrInvalidPaymentStatus is returned when a caller supplies a payment
	// status value outside the enumerated set.
	ErrInvalidPaymentStatus = errors.New("invalid payment status")
)

// ValidationError describes a cake configuration rejected at the
// order-creation boundary.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid cake configuration: %s", e.Reason)
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
