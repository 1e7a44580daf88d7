package response

import (
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type OrderResponse struct {
	ID                int64      `json:"id"`
	Invoice           string     `json:"invoice"`
	UserID            int64      `json:"user_id"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"payment_status"`
	PaymentMethod     string     `json:"payment_method"`
	TotalAmount       float64    `json:"total_amount"`
	AssignedStaffID   *int64     `json:"assigned_staff_id,omitempty"`
	AssignedCourierID *int64     `json:"assigned_courier_id,omitempty"`
	DeliveryCity      string     `json:"delivery_city"`
	ShippingAddress   string     `json:"shipping_address"`
	PackagedCount     int        `json:"packaged_count"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
	DeliveredAt       *time.Time `json:"delivered_at,omitempty"`
}

func ToOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                order.ID,
		Invoice:           order.Invoice,
		UserID:            order.UserID,
		Status:            string(order.Status),
		PaymentStatus:     string(order.PaymentStatus),
		PaymentMethod:     string(order.PaymentMethod),
		TotalAmount:       order.TotalAmount,
		AssignedStaffID:   order.AssignedStaffID,
		AssignedCourierID: order.AssignedCourierID,
		DeliveryCity:      order.DeliveryCity,
		ShippingAddress:   order.ShippingAddress,
		PackagedCount:     order.PackagedCount,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
		DeliveredAt:       order.DeliveredAt,
	}
}

func ToOrderResponses(orders []*domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, ToOrderResponse(order))
	}
	return out
}

type CreateOrderResponse struct {
	Order        OrderResponse `json:"order"`
	FraudTraceID string        `json:"fraud_trace_id"`
	FraudScore   int           `json:"fraud_score"`
}

type ActivityResponse struct {
	ID        int64     `json:"id"`
	Action    string    `json:"action"`
	Actor     string    `json:"actor"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ToActivityResponses(activities []*domain.OrderActivity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		out = append(out, ActivityResponse{
			ID:        activity.ID,
			Action:    activity.Action,
			Actor:     activity.Actor,
			Payload:   activity.Payload,
			CreatedAt: activity.CreatedAt,
		})
	}
	return out
}

type AttemptResponse struct {
	ID            int64     `json:"id"`
	CourierID     int64     `json:"courier_id"`
	Reason        string    `json:"reason,omitempty"`
	Notes         string    `json:"notes,omitempty"`
	ProofRef      string    `json:"proof_ref,omitempty"`
	OTPUsed       bool      `json:"otp_used"`
	SignatureFlag bool      `json:"signature_flag"`
	Outcome       string    `json:"outcome"`
	AttemptedAt   time.Time `json:"attempted_at"`
}

func ToAttemptResponses(attempts []*domain.DeliveryAttempt) []AttemptResponse {
	out := make([]AttemptResponse, 0, len(attempts))
	for _, attempt := range attempts {
		out = append(out, AttemptResponse{
			ID:            attempt.ID,
			CourierID:     attempt.CourierID,
			Reason:        attempt.Reason,
			Notes:         attempt.Notes,
			ProofRef:      attempt.ProofRef,
			OTPUsed:       attempt.OTPUsed,
			SignatureFlag: attempt.SignatureFlag,
			Outcome:       string(attempt.Outcome),
			AttemptedAt:   attempt.AttemptedAt,
		})
	}
	return out
}

type SettlementResponse struct {
	ID              int64      `json:"id"`
	OrderID         int64      `json:"order_id"`
	CourierID       int64      `json:"courier_id"`
	CollectedAmount float64    `json:"collected_amount"`
	CollectedAt     *time.Time `json:"collected_at,omitempty"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes,omitempty"`
}

func ToSettlementResponse(settlement *domain.CODSettlement) SettlementResponse {
	return SettlementResponse{
		ID:              settlement.ID,
		OrderID:         settlement.OrderID,
		CourierID:       settlement.CourierID,
		CollectedAmount: settlement.CollectedAmount,
		CollectedAt:     settlement.CollectedAt,
		Status:          string(settlement.Status),
		Notes:           settlement.Notes,
	}
}

type BatchResponse struct {
	ID          int64     `json:"id"`
	CourierID   int64     `json:"courier_id"`
	TotalAmount float64   `json:"total_amount"`
	OrderCount  int       `json:"order_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type BulkAssignResponse struct {
	Assigned []int64          `json:"assigned"`
	Failed   map[int64]string `json:"failed,omitempty"`
}

type CourierStatsResponse struct {
	CourierID      int64   `json:"courier_id"`
	OpenOrders     int64   `json:"open_orders"`
	CollectedCash  float64 `json:"collected_cash"`
	CollectedCount int     `json:"collected_count"`
}
