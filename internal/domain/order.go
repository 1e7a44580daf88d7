package domain

import "time"

type OrderStatus string

const (
	StatusPending         OrderStatus = "pending"
	StatusConfirmed       OrderStatus = "confirmed"
	StatusProcessing      OrderStatus = "processing"
	StatusReadyForPickup  OrderStatus = "ready_for_pickup"
	StatusPickedUp        OrderStatus = "picked_up"
	StatusInTransit       OrderStatus = "in_transit"
	StatusShipped         OrderStatus = "shipped"
	StatusDelivered       OrderStatus = "delivered"
	StatusCancelled       OrderStatus = "cancelled"
	StatusReturnRequested OrderStatus = "return_requested"
	StatusReturnPickedUp  OrderStatus = "return_picked_up"
	StatusReturnInTransit OrderStatus = "return_in_transit"
	StatusReturned        OrderStatus = "returned"
)

// AllStatuses lists every lifecycle state, used by the transition table
// tests and by request validation.
var AllStatuses = []OrderStatus{
	StatusPending, StatusConfirmed, StatusProcessing, StatusReadyForPickup,
	StatusPickedUp, StatusInTransit, StatusShipped, StatusDelivered,
	StatusCancelled, StatusReturnRequested, StatusReturnPickedUp,
	StatusReturnInTransit, StatusReturned,
}

func (s OrderStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal states accept no further writes.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusReturned
}

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodEsewa  PaymentMethod = "esewa"
	PaymentMethodKhalti PaymentMethod = "khalti"
	PaymentMethodCard   PaymentMethod = "card"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID                int64
	Invoice           string
	UserID            int64
	Status            OrderStatus
	PaymentStatus     PaymentStatus
	PaymentMethod     PaymentMethod
	TotalAmount       float64
	AssignedStaffID   *int64
	AssignedCourierID *int64
	DeliveryCity      string
	ShippingAddress   string
	PackagedCount     int
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeliveredAt       *time.Time
}

func (o *Order) IsCOD() bool {
	return o.PaymentMethod == PaymentMethodCOD
}

// AssigneeFor returns the worker currently bound for the given role,
// or nil when the order is unclaimed for that role.
func (o *Order) AssigneeFor(role ActorRole) *int64 {
	switch role {
	case RoleStaff:
		return o.AssignedStaffID
	case RoleCourier:
		return o.AssignedCourierID
	}
	return nil
}
