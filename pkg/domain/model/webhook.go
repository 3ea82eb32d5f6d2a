package model

import "time"

// DeliveryOutcome represents how a webhook delivery attempt ended
type DeliveryOutcome string

const (
	DeliveryDelivered DeliveryOutcome = "delivered"
	DeliveryRejected  DeliveryOutcome = "rejected" // endpoint answered with a non-success status
	DeliveryFailed    DeliveryOutcome = "failed"   // transport or serialization failure
	DeliverySkipped   DeliveryOutcome = "skipped"  // nothing to deliver
)

// Delivery records a single webhook delivery attempt. It is informational
// only; failures are never propagated to the trigger.
type Delivery struct {
	ID         string          // Sent as X-Herald-Delivery header
	Outcome    DeliveryOutcome // Result of the attempt
	StatusCode int             // HTTP status, zero when no response was received
	Duration   time.Duration   // Time spent on the attempt
}

// IsSuccess checks if the endpoint accepted the payload
func (d *Delivery) IsSuccess() bool {
	return d != nil && d.Outcome == DeliveryDelivered
}
