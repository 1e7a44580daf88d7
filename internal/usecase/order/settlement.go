package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
)

// CollectCOD records cash the courier took at the doorstep. The amount is
// recorded as reported; discrepancies against the order total surface in
// the settlement report, not here.
func (uc *DefaultOrderUsecase) CollectCOD(ctx context.Context, input *orderdto.CollectCODInput) (*domain.CODSettlement, error) {
	if input.Actor.Role != domain.RoleCourier && input.Actor.Role != domain.RoleAdmin {
		return nil, &domain.AuthorizationError{Actor: input.Actor, Action: "collect cod payment"}
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !order.IsCOD() {
		return nil, &domain.ValidationError{Field: "order_id", Message: "order is not cash on delivery"}
	}
	if order.Status != domain.StatusDelivered {
		return nil, &domain.ValidationError{Field: "order_id", Message: "order is not delivered yet"}
	}
	if order.PaymentStatus != domain.PaymentPending {
		return nil, &domain.ValidationError{Field: "order_id", Message: "payment already settled"}
	}
	if input.Actor.Role == domain.RoleCourier {
		if order.AssignedCourierID == nil || *order.AssignedCourierID != input.Actor.ID {
			return nil, &domain.AuthorizationError{Actor: input.Actor, Action: "collect cod payment"}
		}
	}

	if input.Amount < 0 {
		return nil, &domain.ValidationError{Field: "amount", Message: "must not be negative"}
	}
	amount := input.Amount
	if amount == 0 {
		amount = order.TotalAmount
	}
	now := time.Now()

	courierID := input.Actor.ID
	if order.AssignedCourierID != nil {
		courierID = *order.AssignedCourierID
	}

	settlement, err := uc.SettlementRepo.GetByOrderID(ctx, order.ID)
	switch {
	case err == nil:
		if settlement.Status == domain.SettlementSettled {
			return nil, &domain.ValidationError{Field: "order_id", Message: "settlement already cleared"}
		}
		if err := uc.SettlementRepo.MarkCollected(ctx, settlement.ID, amount, now, input.Notes); err != nil {
			return nil, &domain.PersistenceError{Op: "settlement.MarkCollected", Err: err}
		}
		settlement.Status = domain.SettlementCollected
		settlement.CollectedAmount = amount
		settlement.CollectedAt = &now
		settlement.Notes = input.Notes
	case errors.Is(err, domain.ErrSettlementNotFound):
		settlement = &domain.CODSettlement{
			OrderID:         order.ID,
			CourierID:       courierID,
			CollectedAmount: amount,
			CollectedAt:     &now,
			Status:          domain.SettlementCollected,
			Notes:           input.Notes,
			CreatedAt:       now,
		}
		if err := uc.SettlementRepo.CreateSettlement(ctx, settlement); err != nil {
			return nil, &domain.PersistenceError{Op: "settlement.CreateSettlement", Err: err}
		}
	default:
		return nil, &domain.PersistenceError{Op: "settlement.GetByOrderID", Err: err}
	}

	if err := uc.OrderRepo.MarkPaid(ctx, order.ID, domain.PaymentPending); err != nil {
		return nil, err
	}
	order.PaymentStatus = domain.PaymentPaid

	if err := uc.appendActivity(ctx, order.ID, domain.ActionCODCollected, input.Actor.Ref(), map[string]any{
		"amount":       amount,
		"order_amount": order.TotalAmount,
		"notes":        input.Notes,
	}); err != nil {
		return nil, err
	}

	uc.publishEvent(ctx, order, input.Actor.Ref())
	if uc.Metrics != nil {
		uc.Metrics.RecordCODCollected(amount)
	}

	uc.Log.Info("cod payment collected", "order_id", order.ID, "courier_id", courierID, "amount", amount)
	return settlement, nil
}

// SettleCourier clears all cash a courier currently holds into one batch.
func (uc *DefaultOrderUsecase) SettleCourier(ctx context.Context, actor domain.Actor, courierID int64) (*orderdto.SettleBatchOutput, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, &domain.AuthorizationError{Actor: actor, Action: "settle courier batch"}
	}

	collected, err := uc.SettlementRepo.ListCollectedByCourier(ctx, courierID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "settlement.ListCollectedByCourier", Err: err}
	}
	if len(collected) == 0 {
		return nil, &domain.ValidationError{Field: "courier_id", Message: "courier holds no collected cash"}
	}

	batch, err := uc.SettlementRepo.SettleCourier(ctx, courierID)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "settlement.SettleCourier", Err: err}
	}

	for _, settlement := range collected {
		if err := uc.appendActivity(ctx, settlement.OrderID, domain.ActionBatchSettled, actor.Ref(), map[string]any{
			"batch_id": batch.ID,
			"amount":   settlement.CollectedAmount,
		}); err != nil {
			uc.Log.Warn("batch settlement activity append failed", "order_id", settlement.OrderID, "error", err)
		}
	}

	if uc.Metrics != nil {
		uc.Metrics.RecordBatchSettled(batch.TotalAmount, batch.OrderCount)
	}

	uc.Log.Info("courier batch settled",
		"courier_id", courierID,
		"batch_id", batch.ID,
		"orders", batch.OrderCount,
		"total", batch.TotalAmount,
	)
	return &orderdto.SettleBatchOutput{Batch: batch, SettledAt: batch.CreatedAt}, nil
}
