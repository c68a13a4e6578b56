package domain

import "time"

// Money is an amount in whole currency units. The pricing engine rounds to
// the nearest unit, so fractional amounts never reach storage.
type Money int64

// DeliveryDetails is where and when the finished cake should arrive.
type DeliveryDetails struct {
	Date                time.Time `json:"date"`
	TimeWindow          string    `json:"time_window,omitempty"`
	Address             string    `json:"address,omitempty"`
	SpecialInstructions string    `json:"special_instructions,omitempty"`
}

// Order is the aggregate combining a cake configuration, its computed price,
// delivery details, and fulfillment state. Status, payment status, and
// updated_at are mutated exclusively by the lifecycle service; everything
// else is written once at creation. Orders are never deleted: cancellation
// is a status value, not removal.
type Order struct {
	ID          string            `json:"id"`
	OrderNumber string            `json:"order_number"`
	CakeConfig  CakeConfiguration `json:"cake_config"`

	// TotalAmount is computed once by the pricing engine at creation and
	// stored. It is not recomputed when the configuration is viewed later.
	TotalAmount Money `json:"total_amount"`

	Status        OrderStatus   `json:"status"`
	PaymentStatus PaymentStatus `json:"payment_status"`

	Delivery DeliveryDetails `json:"delivery"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
