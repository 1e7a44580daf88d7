package orderdto

import (
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

type OrderOutput struct {
	Order      *domain.Order
	Assessment *domain.FraudAssessment
}

// BulkAssignResult reports the per-order outcome of a bulk assignment.
// Failed entries carry the reason; the call as a whole never fails half
// way through silently.
type BulkAssignResult struct {
	Assigned []int64
	Failed   map[int64]string
}

type CourierStats struct {
	CourierID      int64
	OpenOrders     int64
	CollectedCash  float64
	CollectedCount int
}

type SettleBatchOutput struct {
	Batch     *domain.SettlementBatch
	SettledAt time.Time
}
