package domain

import "time"

type SettlementStatus string

const (
	SettlementPending   SettlementStatus = "pending"
	SettlementCollected SettlementStatus = "collected"
	// SettlementSettled is terminal; settled rows are immutable.
	SettlementSettled SettlementStatus = "settled"
)

// CODSettlement tracks cash a courier holds for one order. It is opened
// pending at delivery confirmation of a COD order, marked collected when
// the courier reports the cash, and settled when the back office clears
// the courier's batch.
type CODSettlement struct {
	ID                int64
	OrderID           int64
	CourierID         int64
	CollectedAmount   float64
	CollectedAt       *time.Time
	SettlementBatchID *int64
	Status            SettlementStatus
	Notes             string
	CreatedAt         time.Time
}

// SettlementBatch groups one courier's collected cash for clearing.
type SettlementBatch struct {
	ID          int64
	CourierID   int64
	TotalAmount float64
	OrderCount  int
	CreatedAt   time.Time
}
