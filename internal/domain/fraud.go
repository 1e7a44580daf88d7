package domain

import (
	"context"
	"time"
)

type FraudDecision string

const (
	FraudPass  FraudDecision = "pass"
	FraudBlock FraudDecision = "block"
)

// Fraud indicator names, kept stable because they are persisted and
// reported to the back office.
const (
	IndicatorHighAmount      = "unusual_high_amount"
	IndicatorOrderVelocity   = "rapid_order_creation"
	IndicatorSuspiciousIP    = "suspicious_ip"
	IndicatorUnusualQuantity = "unusual_quantity"
	IndicatorHighCODAmount   = "high_cod_amount"
	IndicatorVelocityAbuse   = "velocity_abuse"
)

// OrderRiskInput is what the gate sees at order creation / payment time.
// OrderID is zero when the order does not exist yet.
type OrderRiskInput struct {
	UserID         int64
	OrderID        int64
	Amount         float64
	PaymentMethod  PaymentMethod
	ItemQuantities []int
	IP             string
}

// FraudAssessment is immutable once created: it records what the gate saw
// and decided, whether or not the call was ultimately rejected.
type FraudAssessment struct {
	ID         int64
	TraceID    string
	UserID     int64
	OrderID    int64
	Amount     float64
	Score      int
	Indicators []string
	Decision   FraudDecision
	Enforced   bool
	IP         string
	CreatedAt  time.Time
}

// FraudAttempt is one durable gate consultation. Rate limiting, duplicate
// detection and account-velocity counters are all count(*) queries over
// these rows so that stateless instances share one view.
type FraudAttempt struct {
	ID        int64
	Key       string
	UserID    int64
	OrderID   int64
	Amount    float64
	IP        string
	CreatedAt time.Time
}

type FraudRepository interface {
	SaveAssessment(ctx context.Context, assessment *FraudAssessment) error
	RecordAttempt(ctx context.Context, attempt *FraudAttempt) error
	CountAttemptsByKey(ctx context.Context, key string, since time.Time) (int64, error)
	CountAttemptsByUser(ctx context.Context, userID int64, since time.Time) (int64, error)
	CountDuplicates(ctx context.Context, userID, orderID int64, amount float64, since time.Time) (int64, error)
	CountDistinctUsersByIP(ctx context.Context, ip string, excludeUserID int64, since time.Time) (int64, error)
}

// FraudGate is consulted before an order is accepted. Detection always
// runs and the assessment is always persisted; only enforcement of the
// block decision is policy-gated.
type FraudGate interface {
	Screen(ctx context.Context, input OrderRiskInput) (*FraudAssessment, error)
}
