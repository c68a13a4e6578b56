// Package progress derives read-only display values from an order's status
// and delivery date. Nothing here mutates state or keeps a timer: both
// functions are pure over their inputs and are evaluated on demand by
// whoever renders them, so they can never go stale.
package progress

import (
	"fmt"
	"time"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/order/domain"
)

var percentByStatus = map[domain.OrderStatus]int{
	domain.StatusPending:        15,
	domain.StatusConfirmed:      25,
	domain.StatusPreparing:      40,
	domain.StatusBaking:         60,
	domain.StatusDecorating:     80,
	domain.StatusReady:          90,
	domain.StatusOutForDelivery: 95,
	domain.StatusDelivered:      100,
	domain.StatusCancelled:      0,
}

// Percent maps a fulfillment status to a 0–100 progress value for the
// customer-facing tracker. Unknown statuses map to 0 rather than erroring:
// a renderer should never fail over a display value.
func Percent(status domain.OrderStatus) int {
	return percentByStatus[status]
}

// Urgency buckets a countdown for styling: how loudly the UI should flag
// the remaining time.
type Urgency string

const (
	UrgencyPassed Urgency = "passed"
	UrgencyToday  Urgency = "today"
	UrgencyHours  Urgency = "hours"
	UrgencyDays   Urgency = "days"
)

// Countdown is the customer-facing time-to-delivery label.
type Countdown struct {
	Label   string  `json:"label"`
	Urgency Urgency `json:"urgency"`
}

// Until computes the countdown from the wall-clock difference between the
// delivery date and now: past due, same calendar day, under 24 hours, or a
// day count. Safe to call arbitrarily often.
func Until(deliveryDate, now time.Time) Countdown {
	if deliveryDate.Before(now) {
		return Countdown{Label: "Delivery date passed", Urgency: UrgencyPassed}
	}

	ny, nm, nd := now.Date()
	dy, dm, dd := deliveryDate.Date()
	if ny == dy && nm == dm && nd == dd {
		return Countdown{Label: "Delivery today", Urgency: UrgencyToday}
	}

	remaining := deliveryDate.Sub(now)
	if remaining < 24*time.Hour {
		hours := int(remaining.Hours())
		if hours <= 1 {
			return Countdown{Label: "1 hour remaining", Urgency: UrgencyHours}
		}
		return Countdown{Label: fmt.Sprintf("%d hours remaining", hours), Urgency: UrgencyHours}
	}

	days := int(remaining.Hours() / 24)
	if days == 1 {
		return Countdown{Label: "1 day remaining", Urgency: UrgencyDays}
	}
	return Countdown{Label: fmt.Sprintf("%d days remaining", days), Urgency: UrgencyDays}
}
