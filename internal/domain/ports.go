package domain

import (
	"context"
	"io"
	"time"
)

// OrderEvent is what goes out to the message bus on every lifecycle change.
type OrderEvent struct {
	OrderID    int64       `json:"order_id"`
	Invoice    string      `json:"invoice"`
	UserID     int64       `json:"user_id"`
	Status     OrderStatus `json:"status"`
	Amount     float64     `json:"amount"`
	Actor      string      `json:"actor"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event OrderEvent) error
}

// ReferralClient credits the buyer's referrer once an order is delivered.
type ReferralClient interface {
	AccrueDeliveryReward(ctx context.Context, userID, orderID int64, amount float64) error
}

// Notifier pushes order updates to an external callback. Best effort.
type Notifier interface {
	NotifyOrderUpdate(orderID int64, invoice string, status OrderStatus, message string)
}

// ProofStore persists delivery proof uploads and returns an opaque reference.
type ProofStore interface {
	SaveProof(ctx context.Context, orderID int64, filename string, r io.Reader) (string, error)
}
