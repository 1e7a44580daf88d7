package domain

import "time"

type AttemptOutcome string

const (
	AttemptOutcomeAttempted AttemptOutcome = "attempted"
	AttemptOutcomeDelivered AttemptOutcome = "delivered"
	AttemptOutcomeReturned  AttemptOutcome = "returned"
)

// DeliveryAttempt records a courier's visit to the customer. Failed
// attempts keep the order in transit; the delivered attempt carries the
// proof-of-delivery artifact.
type DeliveryAttempt struct {
	ID            int64
	OrderID       int64
	CourierID     int64
	Reason        string
	Notes         string
	ProofRef      string
	OTPUsed       bool
	SignatureFlag bool
	Outcome       AttemptOutcome
	AttemptedAt   time.Time
}
