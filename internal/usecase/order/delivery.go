package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
)

func deliverableFrom(status domain.OrderStatus) bool {
	return status == domain.StatusInTransit ||
		status == domain.StatusPickedUp ||
		status == domain.StatusShipped
}

// AttemptDelivery records a failed doorstep visit. The order status does
// not move, the attempt only feeds the audit trail and courier stats.
func (uc *DefaultOrderUsecase) AttemptDelivery(ctx context.Context, input *orderdto.AttemptDeliveryInput) (*domain.DeliveryAttempt, error) {
	if input.Actor.Role != domain.RoleCourier {
		return nil, &domain.AuthorizationError{Actor: input.Actor, Action: "record delivery attempt"}
	}
	if input.Reason == "" {
		return nil, &domain.ValidationError{Field: "reason", Message: "must not be empty"}
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if !deliverableFrom(order.Status) {
		return nil, &domain.InvalidTransitionError{
			Current:   order.Status,
			Requested: order.Status,
			Role:      input.Actor.Role,
		}
	}

	claim, err := uc.authorizeWorker(order, input.Actor, "record delivery attempt")
	if err != nil {
		return nil, err
	}
	if claim {
		upd := domain.TransitionUpdate{From: order.Status, To: order.Status}
		if err := uc.applyTransition(ctx, order, input.Actor, true, upd); err != nil {
			return nil, err
		}
	}

	attempt := &domain.DeliveryAttempt{
		OrderID:     order.ID,
		CourierID:   input.Actor.ID,
		Reason:      input.Reason,
		Notes:       input.Notes,
		Outcome:     domain.AttemptOutcomeAttempted,
		AttemptedAt: time.Now(),
	}
	if err := uc.AttemptRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, &domain.PersistenceError{Op: "delivery.CreateAttempt", Err: err}
	}

	if err := uc.appendActivity(ctx, order.ID, domain.ActionDeliveryAttempted, input.Actor.Ref(), map[string]any{
		"reason": input.Reason,
		"notes":  input.Notes,
	}); err != nil {
		return nil, err
	}

	uc.notify(order, "delivery attempted: "+input.Reason)
	if uc.Metrics != nil {
		uc.Metrics.RecordDeliveryAttempt(string(domain.AttemptOutcomeAttempted))
	}
	return attempt, nil
}

// ConfirmDelivery closes the courier leg. The proof reference is
// mandatory; for cash-on-delivery orders a pending settlement is opened so
// the courier's cash becomes trackable.
func (uc *DefaultOrderUsecase) ConfirmDelivery(ctx context.Context, input *orderdto.ConfirmDeliveryInput) (*domain.Order, error) {
	if input.Actor.Role != domain.RoleCourier && input.Actor.Role != domain.RoleAdmin {
		return nil, &domain.AuthorizationError{Actor: input.Actor, Action: "confirm delivery"}
	}
	if input.ProofRef == "" {
		return nil, domain.ErrMissingProof
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if err := domain.CanTransition(order.Status, domain.StatusDelivered, input.Actor.Role); err != nil {
		return nil, err
	}

	claim, err := uc.authorizeWorker(order, input.Actor, "confirm delivery")
	if err != nil {
		return nil, err
	}

	now := time.Now()
	upd := domain.TransitionUpdate{
		From:        order.Status,
		To:          domain.StatusDelivered,
		DeliveredAt: &now,
	}
	if err := uc.applyTransition(ctx, order, input.Actor, claim, upd); err != nil {
		return nil, err
	}

	courierID := input.Actor.ID
	if order.AssignedCourierID != nil {
		courierID = *order.AssignedCourierID
	}
	attempt := &domain.DeliveryAttempt{
		OrderID:       order.ID,
		CourierID:     courierID,
		Notes:         input.Notes,
		ProofRef:      input.ProofRef,
		OTPUsed:       input.OTPUsed,
		SignatureFlag: input.SignatureFlag,
		Outcome:       domain.AttemptOutcomeDelivered,
		AttemptedAt:   now,
	}
	if err := uc.AttemptRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, &domain.PersistenceError{Op: "delivery.CreateAttempt", Err: err}
	}

	if err := uc.appendActivity(ctx, order.ID, domain.ActionDelivered, input.Actor.Ref(), map[string]any{
		"proof_ref":      input.ProofRef,
		"otp_used":       input.OTPUsed,
		"signature_flag": input.SignatureFlag,
	}); err != nil {
		return nil, err
	}

	if order.IsCOD() && order.PaymentStatus == domain.PaymentPending {
		if err := uc.openSettlement(ctx, order, courierID); err != nil {
			return nil, err
		}
	}

	uc.afterTransition(ctx, order, input.Actor, upd)
	if uc.Metrics != nil {
		uc.Metrics.RecordDeliveryAttempt(string(domain.AttemptOutcomeDelivered))
	}
	return order, nil
}

func (uc *DefaultOrderUsecase) openSettlement(ctx context.Context, order *domain.Order, courierID int64) error {
	_, err := uc.SettlementRepo.GetByOrderID(ctx, order.ID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrSettlementNotFound) {
		return &domain.PersistenceError{Op: "settlement.GetByOrderID", Err: err}
	}
	if err := uc.SettlementRepo.CreateSettlement(ctx, &domain.CODSettlement{
		OrderID:   order.ID,
		CourierID: courierID,
		Status:    domain.SettlementPending,
		CreatedAt: time.Now(),
	}); err != nil {
		return &domain.PersistenceError{Op: "settlement.CreateSettlement", Err: err}
	}
	return nil
}
