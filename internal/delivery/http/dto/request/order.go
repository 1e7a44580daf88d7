package request

type CartItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity" binding:"required"`
	UnitPrice   float64 `json:"unit_price"`
}

type CreateOrderRequest struct {
	UserID          int64      `json:"user_id" binding:"required"`
	Items           []CartItem `json:"items" binding:"required"`
	PaymentMethod   string     `json:"payment_method" binding:"required"`
	ShippingAddress string     `json:"shipping_address" binding:"required"`
	DeliveryCity    string     `json:"delivery_city"`
}

type ActorRequest struct {
	ActorID   int64  `json:"actor_id" binding:"required"`
	ActorRole string `json:"actor_role" binding:"required"`
}

type TransitionRequest struct {
	ActorRequest
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

type AssignRequest struct {
	ActorRequest
	Role     string `json:"role" binding:"required"`
	WorkerID int64  `json:"worker_id" binding:"required"`
}

type BulkAssignRequest struct {
	ActorRequest
	Role     string  `json:"role" binding:"required"`
	WorkerID int64   `json:"worker_id" binding:"required"`
	OrderIDs []int64 `json:"order_ids" binding:"required"`
}

type PackageRequest struct {
	ActorRequest
	Note string `json:"note"`
}

type AttemptDeliveryRequest struct {
	ActorRequest
	Reason string `json:"reason" binding:"required"`
	Notes  string `json:"notes"`
}

type CollectCODRequest struct {
	ActorRequest
	Amount float64 `json:"amount"`
	Notes  string  `json:"notes"`
}

type SettleCourierRequest struct {
	ActorRequest
}
