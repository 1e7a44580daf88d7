package orderdto

import "github.com/LavaJover/shvark-fulfillment-service/internal/domain"

type CartItem struct {
	ProductName string
	Quantity    int
	UnitPrice   float64
}

type CreateOrderInput struct {
	UserID          int64
	Items           []CartItem
	PaymentMethod   domain.PaymentMethod
	ShippingAddress string
	DeliveryCity    string
	ClientIP        string
}

func (in *CreateOrderInput) TotalAmount() float64 {
	total := 0.0
	for _, item := range in.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}

func (in *CreateOrderInput) Quantities() []int {
	quantities := make([]int, 0, len(in.Items))
	for _, item := range in.Items {
		quantities = append(quantities, item.Quantity)
	}
	return quantities
}

type TransitionInput struct {
	OrderID int64
	Actor   domain.Actor
	Target  domain.OrderStatus
	Note    string
}

type AssignInput struct {
	OrderID  int64
	Actor    domain.Actor
	Role     domain.ActorRole
	WorkerID int64
}

type BulkAssignInput struct {
	Actor    domain.Actor
	Role     domain.ActorRole
	WorkerID int64
	OrderIDs []int64
}

type AttemptDeliveryInput struct {
	OrderID int64
	Actor   domain.Actor
	Reason  string
	Notes   string
}

type ConfirmDeliveryInput struct {
	OrderID       int64
	Actor         domain.Actor
	ProofRef      string
	OTPUsed       bool
	SignatureFlag bool
	Notes         string
}

type CollectCODInput struct {
	OrderID int64
	Actor   domain.Actor
	Amount  float64
	Notes   string
}
