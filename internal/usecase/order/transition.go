package usecase

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
)

// TransitionOrder is the generic lifecycle move. Delivery confirmation has
// its own entry point because it carries a proof artifact; couriers asking
// for delivered here are redirected by the proof requirement.
func (uc *DefaultOrderUsecase) TransitionOrder(ctx context.Context, input *orderdto.TransitionInput) (*domain.Order, error) {
	if !input.Target.Valid() {
		return nil, &domain.ValidationError{Field: "status", Message: "unknown status " + string(input.Target)}
	}
	if !input.Actor.Role.Valid() {
		return nil, &domain.ValidationError{Field: "role", Message: "unknown role " + string(input.Actor.Role)}
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanTransition(order.Status, input.Target, input.Actor.Role); err != nil {
		return nil, err
	}
	if input.Target == domain.StatusDelivered && input.Actor.Role != domain.RoleAdmin {
		return nil, domain.ErrMissingProof
	}

	claim, err := uc.authorizeWorker(order, input.Actor, "transition order "+string(input.Target))
	if err != nil {
		return nil, err
	}

	upd := domain.TransitionUpdate{From: order.Status, To: input.Target}
	if input.Target == domain.StatusDelivered {
		now := time.Now()
		upd.DeliveredAt = &now
	}
	if err := uc.applyTransition(ctx, order, input.Actor, claim, upd); err != nil {
		return nil, err
	}

	if err := uc.appendActivity(ctx, order.ID, domain.ActionStatusChanged, input.Actor.Ref(), map[string]any{
		"from": upd.From,
		"to":   upd.To,
		"note": input.Note,
	}); err != nil {
		return nil, err
	}

	if upd.To == domain.StatusReturned && input.Actor.Role == domain.RoleCourier {
		if err := uc.AttemptRepo.CreateAttempt(ctx, &domain.DeliveryAttempt{
			OrderID:     order.ID,
			CourierID:   input.Actor.ID,
			Notes:       input.Note,
			Outcome:     domain.AttemptOutcomeReturned,
			AttemptedAt: time.Now(),
		}); err != nil {
			return nil, &domain.PersistenceError{Op: "delivery.CreateAttempt", Err: err}
		}
		if uc.Metrics != nil {
			uc.Metrics.RecordDeliveryAttempt(string(domain.AttemptOutcomeReturned))
		}
	}

	uc.afterTransition(ctx, order, input.Actor, upd)
	return order, nil
}

// applyTransition runs the repository CAS, claiming the order for the
// actor when it was unclaimed, and mutates the in-memory order on success.
func (uc *DefaultOrderUsecase) applyTransition(ctx context.Context, order *domain.Order, actor domain.Actor, claim bool, upd domain.TransitionUpdate) error {
	var err error
	if claim && actor.Role != domain.RoleAdmin {
		err = uc.OrderRepo.ClaimAndTransition(ctx, order.ID, actor, upd)
	} else {
		err = uc.OrderRepo.ApplyTransition(ctx, order.ID, upd)
	}
	if err != nil {
		return err
	}

	order.Status = upd.To
	order.UpdatedAt = time.Now()
	if upd.DeliveredAt != nil {
		order.DeliveredAt = upd.DeliveredAt
	}
	if upd.PaymentStatus != nil {
		order.PaymentStatus = *upd.PaymentStatus
	}
	if claim && actor.Role != domain.RoleAdmin {
		id := actor.ID
		switch actor.Role {
		case domain.RoleStaff:
			order.AssignedStaffID = &id
		case domain.RoleCourier:
			order.AssignedCourierID = &id
		}
	}
	return nil
}

func (uc *DefaultOrderUsecase) afterTransition(ctx context.Context, order *domain.Order, actor domain.Actor, upd domain.TransitionUpdate) {
	uc.publishEvent(ctx, order, actor.Ref())
	uc.notify(order, "order status changed to "+string(upd.To))
	if uc.Metrics != nil {
		uc.Metrics.RecordTransition(string(upd.From), string(upd.To), string(actor.Role))
	}

	if upd.To == domain.StatusDelivered {
		uc.accrueReferralReward(order)
	}

	uc.Log.Info("order transitioned",
		"order_id", order.ID,
		"from", upd.From,
		"to", upd.To,
		"actor", actor.Ref(),
	)
}

// accrueReferralReward credits the buyer's referrer. Fire and forget, the
// delivery is already committed.
func (uc *DefaultOrderUsecase) accrueReferralReward(order *domain.Order) {
	if uc.Referral == nil {
		return
	}
	orderID, userID, amount := order.ID, order.UserID, order.TotalAmount
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := uc.Referral.AccrueDeliveryReward(ctx, userID, orderID, amount); err != nil {
			uc.Log.Warn("referral reward accrual failed", "order_id", orderID, "user_id", userID, "error", err)
		}
	}()
}
