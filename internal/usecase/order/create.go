package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
	"github.com/jaevor/go-nanoid"
)

// knownCities are the operating regions recognized inside free-form
// shipping addresses when the client does not send a delivery city.
var knownCities = []string{
	"kathmandu", "pokhara", "lalitpur", "bhaktapur", "biratnagar",
	"birgunj", "dharan", "butwal", "hetauda", "nepalgunj",
	"itahari", "dhangadhi", "janakpur", "bharatpur",
}

func cityFromAddress(address string) string {
	lowered := strings.ToLower(address)
	for _, city := range knownCities {
		if strings.Contains(lowered, city) {
			return city
		}
	}
	return ""
}

func validateCreateOrder(input *orderdto.CreateOrderInput) error {
	if input.UserID <= 0 {
		return &domain.ValidationError{Field: "user_id", Message: "must be positive"}
	}
	if len(input.Items) == 0 {
		return &domain.ValidationError{Field: "items", Message: "cart is empty"}
	}
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return &domain.ValidationError{Field: "items", Message: "quantity must be positive"}
		}
		if item.UnitPrice < 0 {
			return &domain.ValidationError{Field: "items", Message: "unit price must not be negative"}
		}
	}
	switch input.PaymentMethod {
	case domain.PaymentMethodCOD, domain.PaymentMethodEsewa, domain.PaymentMethodKhalti, domain.PaymentMethodCard:
	default:
		return &domain.ValidationError{Field: "payment_method", Message: "unknown payment method"}
	}
	if strings.TrimSpace(input.ShippingAddress) == "" {
		return &domain.ValidationError{Field: "shipping_address", Message: "must not be empty"}
	}
	return nil
}

func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error) {
	if err := validateCreateOrder(input); err != nil {
		return nil, err
	}

	total := input.TotalAmount()
	assessment, err := uc.Gate.Screen(ctx, domain.OrderRiskInput{
		UserID:         input.UserID,
		Amount:         total,
		PaymentMethod:  input.PaymentMethod,
		ItemQuantities: input.Quantities(),
		IP:             input.ClientIP,
	})
	if err != nil {
		return nil, err
	}

	invoiceGenerator, err := nanoid.Standard(15)
	if err != nil {
		return nil, err
	}

	city := strings.ToLower(strings.TrimSpace(input.DeliveryCity))
	if city == "" {
		city = cityFromAddress(input.ShippingAddress)
	}

	order := &domain.Order{
		Invoice:         invoiceGenerator(),
		UserID:          input.UserID,
		Status:          domain.StatusPending,
		PaymentStatus:   domain.PaymentPending,
		PaymentMethod:   input.PaymentMethod,
		TotalAmount:     total,
		DeliveryCity:    city,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		return nil, &domain.PersistenceError{Op: "order.CreateOrder", Err: err}
	}

	customer := fmt.Sprintf("user_%d", input.UserID)
	if err := uc.appendActivity(ctx, order.ID, domain.ActionOrderCreated, customer, map[string]any{
		"invoice":        order.Invoice,
		"amount":         order.TotalAmount,
		"payment_method": order.PaymentMethod,
		"fraud_trace_id": assessment.TraceID,
	}); err != nil {
		return nil, err
	}

	uc.autoAssignStaff(ctx, order)

	uc.publishEvent(ctx, order, customer)
	uc.notify(order, "order placed")
	if uc.Metrics != nil {
		uc.Metrics.RecordOrderCreated(string(order.PaymentMethod), order.DeliveryCity, order.TotalAmount)
		uc.Metrics.RecordFraudDecision(string(assessment.Decision), assessment.Score)
	}

	uc.Log.Info("order created",
		"order_id", order.ID,
		"invoice", order.Invoice,
		"user_id", order.UserID,
		"amount", order.TotalAmount,
		"city", order.DeliveryCity,
	)

	return &orderdto.OrderOutput{Order: order, Assessment: assessment}, nil
}

// autoAssignStaff binds a packaging worker right at placement when one is
// available. Placement never fails because the pool is empty.
func (uc *DefaultOrderUsecase) autoAssignStaff(ctx context.Context, order *domain.Order) {
	worker, err := uc.Resolver.Resolve(ctx, domain.RoleStaff, order.DeliveryCity)
	if err != nil {
		uc.Log.Warn("staff auto-assignment skipped", "order_id", order.ID, "city", order.DeliveryCity, "error", err)
		return
	}
	if err := uc.OrderRepo.AssignWorker(ctx, order.ID, domain.RoleStaff, worker.ID, true); err != nil {
		uc.Log.Warn("staff auto-assignment failed", "order_id", order.ID, "worker_id", worker.ID, "error", err)
		return
	}
	order.AssignedStaffID = &worker.ID

	assignee := domain.Actor{ID: worker.ID, Role: domain.RoleStaff}
	if err := uc.appendActivity(ctx, order.ID, domain.ActionOrderAssigned, assignee.Ref(), map[string]any{
		"role":      domain.RoleStaff,
		"worker_id": worker.ID,
		"auto":      true,
	}); err != nil {
		uc.Log.Warn("auto-assignment activity append failed", "order_id", order.ID, "error", err)
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordAssignment(string(domain.RoleStaff), true)
	}
}
