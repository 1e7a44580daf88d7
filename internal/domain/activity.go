package domain

import "time"

// Activity actions. Transitions log the action matching the target status
// so the trail reads like the courier/staff timeline.
const (
	ActionOrderCreated      = "order_created"
	ActionOrderAssigned     = "order_assigned"
	ActionOrderReassigned   = "order_reassigned"
	ActionStatusChanged     = "status_changed"
	ActionPackaged          = "packaged"
	ActionDeliveryAttempted = "delivery_attempted"
	ActionDelivered         = "delivered"
	ActionCODCollected      = "cod_collected"
	ActionBatchSettled      = "cod_batch_settled"
)

// OrderActivity is one entry of the append-only audit trail. Rows are
// never updated or deleted; history views are built from this table only.
type OrderActivity struct {
	ID        int64
	OrderID   int64
	Action    string
	Actor     string
	Payload   string
	CreatedAt time.Time
}
