package usecase

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-fulfillment-service/internal/usecase/assignment"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*orderdto.OrderOutput, error)

	TransitionOrder(ctx context.Context, input *orderdto.TransitionInput) (*domain.Order, error)
	AssignOrder(ctx context.Context, input *orderdto.AssignInput) (*domain.Order, error)
	BulkAssignOrders(ctx context.Context, input *orderdto.BulkAssignInput) (*orderdto.BulkAssignResult, error)
	MarkPackaged(ctx context.Context, orderID int64, actor domain.Actor, note string) (*domain.Order, error)

	AttemptDelivery(ctx context.Context, input *orderdto.AttemptDeliveryInput) (*domain.DeliveryAttempt, error)
	ConfirmDelivery(ctx context.Context, input *orderdto.ConfirmDeliveryInput) (*domain.Order, error)

	CollectCOD(ctx context.Context, input *orderdto.CollectCODInput) (*domain.CODSettlement, error)
	SettleCourier(ctx context.Context, actor domain.Actor, courierID int64) (*orderdto.SettleBatchOutput, error)

	GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error)
	GetOrderByInvoice(ctx context.Context, invoice string) (*domain.Order, error)
	GetOrderActivity(ctx context.Context, orderID int64) ([]*domain.OrderActivity, error)
	GetDeliveryAttempts(ctx context.Context, orderID int64) ([]*domain.DeliveryAttempt, error)
	GetOrdersByWorker(ctx context.Context, role domain.ActorRole, workerID int64) ([]*domain.Order, error)
	GetUnassignedOrders(ctx context.Context, role domain.ActorRole) ([]*domain.Order, error)
	GetCourierStats(ctx context.Context, courierID int64) (*orderdto.CourierStats, error)
}

type DefaultOrderUsecase struct {
	OrderRepo      domain.OrderRepository
	WorkerRepo     domain.WorkerRepository
	ActivityRepo   domain.ActivityRepository
	AttemptRepo    domain.DeliveryAttemptRepository
	SettlementRepo domain.SettlementRepository
	Gate           domain.FraudGate
	Resolver       *assignment.Resolver
	Publisher      domain.OrderEventPublisher
	Referral       domain.ReferralClient
	Notifier       domain.Notifier
	Metrics        *metrics.FulfillmentMetrics
	Log            *slog.Logger
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	workerRepo domain.WorkerRepository,
	activityRepo domain.ActivityRepository,
	attemptRepo domain.DeliveryAttemptRepository,
	settlementRepo domain.SettlementRepository,
	gate domain.FraudGate,
	resolver *assignment.Resolver,
	publisher domain.OrderEventPublisher,
	referral domain.ReferralClient,
	notifier domain.Notifier,
	fulfillmentMetrics *metrics.FulfillmentMetrics,
	log *slog.Logger) *DefaultOrderUsecase {

	return &DefaultOrderUsecase{
		OrderRepo:      orderRepo,
		WorkerRepo:     workerRepo,
		ActivityRepo:   activityRepo,
		AttemptRepo:    attemptRepo,
		SettlementRepo: settlementRepo,
		Gate:           gate,
		Resolver:       resolver,
		Publisher:      publisher,
		Referral:       referral,
		Notifier:       notifier,
		Metrics:        fulfillmentMetrics,
		Log:            log,
	}
}

// appendActivity writes one audit row. The trail is part of the contract,
// a failed append fails the whole operation.
func (uc *DefaultOrderUsecase) appendActivity(ctx context.Context, orderID int64, action, actorRef string, payload any) error {
	body := ""
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return &domain.PersistenceError{Op: "activity.Marshal", Err: err}
		}
		body = string(raw)
	}
	if err := uc.ActivityRepo.Append(ctx, &domain.OrderActivity{
		OrderID:   orderID,
		Action:    action,
		Actor:     actorRef,
		Payload:   body,
		CreatedAt: time.Now(),
	}); err != nil {
		return &domain.PersistenceError{Op: "activity.Append", Err: err}
	}
	return nil
}

// publishEvent is best effort: the bus lags behind the database, it never
// rolls an operation back.
func (uc *DefaultOrderUsecase) publishEvent(ctx context.Context, order *domain.Order, actorRef string) {
	if uc.Publisher == nil {
		return
	}
	event := domain.OrderEvent{
		OrderID:    order.ID,
		Invoice:    order.Invoice,
		UserID:     order.UserID,
		Status:     order.Status,
		Amount:     order.TotalAmount,
		Actor:      actorRef,
		OccurredAt: time.Now(),
	}
	if err := uc.Publisher.PublishOrderEvent(ctx, event); err != nil {
		uc.Log.Warn("order event publish failed", "order_id", order.ID, "status", order.Status, "error", err)
	}
}

func (uc *DefaultOrderUsecase) notify(order *domain.Order, message string) {
	if uc.Notifier == nil {
		return
	}
	uc.Notifier.NotifyOrderUpdate(order.ID, order.Invoice, order.Status, message)
}

// authorizeWorker checks that the actor may touch the order for its role.
// An unassigned order may be claimed by any worker of the role; the claim
// itself happens in the repository CAS. Returns whether a claim is needed.
func (uc *DefaultOrderUsecase) authorizeWorker(order *domain.Order, actor domain.Actor, action string) (claim bool, err error) {
	if actor.Role == domain.RoleAdmin {
		return false, nil
	}
	assignee := order.AssigneeFor(actor.Role)
	if assignee == nil {
		return true, nil
	}
	if *assignee != actor.ID {
		return false, &domain.AuthorizationError{Actor: actor, Action: action}
	}
	return false, nil
}
