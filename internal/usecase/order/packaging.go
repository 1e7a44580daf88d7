package usecase

import (
	"context"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

// MarkPackaged records one packaged parcel. The first packaging action of
// an order also moves it into processing and claims it for the staff
// member when nobody holds it yet.
func (uc *DefaultOrderUsecase) MarkPackaged(ctx context.Context, orderID int64, actor domain.Actor, note string) (*domain.Order, error) {
	if actor.Role != domain.RoleStaff && actor.Role != domain.RoleAdmin {
		return nil, &domain.AuthorizationError{Actor: actor, Action: "mark order packaged"}
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	claim, err := uc.authorizeWorker(order, actor, "mark order packaged")
	if err != nil {
		return nil, err
	}

	if order.Status != domain.StatusProcessing {
		if err := domain.CanTransition(order.Status, domain.StatusProcessing, actor.Role); err != nil {
			return nil, err
		}
	}

	upd := domain.TransitionUpdate{From: order.Status, To: domain.StatusProcessing}
	if claim || upd.From != upd.To {
		if err := uc.applyTransition(ctx, order, actor, claim, upd); err != nil {
			return nil, err
		}
	}

	count, err := uc.OrderRepo.IncrementPackagedCount(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	order.PackagedCount = count

	if err := uc.appendActivity(ctx, order.ID, domain.ActionPackaged, actor.Ref(), map[string]any{
		"packaged_count": count,
		"note":           note,
	}); err != nil {
		return nil, err
	}

	if upd.From != upd.To {
		uc.afterTransition(ctx, order, actor, upd)
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordPackaged()
	}
	return order, nil
}
