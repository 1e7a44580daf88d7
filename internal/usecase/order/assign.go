package usecase

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) checkAssignable(ctx context.Context, role domain.ActorRole, workerID int64) (*domain.Worker, error) {
	if role != domain.RoleStaff && role != domain.RoleCourier {
		return nil, &domain.ValidationError{Field: "role", Message: "only staff and courier orders can be assigned"}
	}
	worker, err := uc.WorkerRepo.GetWorkerByID(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if worker.Role != role {
		return nil, &domain.ValidationError{Field: "worker_id", Message: "worker role mismatch"}
	}
	if !worker.Active {
		return nil, &domain.ValidationError{Field: "worker_id", Message: "worker is not active"}
	}
	return worker, nil
}

// AssignOrder binds a worker to an order, replacing any previous assignee.
// Assigning the current assignee again is a no-op.
func (uc *DefaultOrderUsecase) AssignOrder(ctx context.Context, input *orderdto.AssignInput) (*domain.Order, error) {
	if input.Actor.Role != domain.RoleAdmin {
		return nil, &domain.AuthorizationError{Actor: input.Actor, Action: "assign order"}
	}
	worker, err := uc.checkAssignable(ctx, input.Role, input.WorkerID)
	if err != nil {
		return nil, err
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status.Terminal() {
		return nil, &domain.ValidationError{Field: "order_id", Message: "order is in a terminal state"}
	}

	previous := order.AssigneeFor(input.Role)
	if previous != nil && *previous == worker.ID {
		return order, nil
	}

	if err := uc.OrderRepo.AssignWorker(ctx, order.ID, input.Role, worker.ID, false); err != nil {
		return nil, err
	}

	action := domain.ActionOrderAssigned
	payload := map[string]any{"role": input.Role, "worker_id": worker.ID}
	if previous != nil {
		action = domain.ActionOrderReassigned
		payload["previous_worker_id"] = *previous
	}
	if err := uc.appendActivity(ctx, order.ID, action, input.Actor.Ref(), payload); err != nil {
		return nil, err
	}

	id := worker.ID
	switch input.Role {
	case domain.RoleStaff:
		order.AssignedStaffID = &id
	case domain.RoleCourier:
		order.AssignedCourierID = &id
	}
	if uc.Metrics != nil {
		uc.Metrics.RecordAssignment(string(input.Role), false)
	}

	uc.Log.Info("order assigned", "order_id", order.ID, "role", input.Role, "worker_id", worker.ID)
	return order, nil
}

// BulkAssignOrders assigns a batch, skipping orders another admin raced us
// to. Each failure is reported per order, successes are never rolled back.
func (uc *DefaultOrderUsecase) BulkAssignOrders(ctx context.Context, input *orderdto.BulkAssignInput) (*orderdto.BulkAssignResult, error) {
	if input.Actor.Role != domain.RoleAdmin {
		return nil, &domain.AuthorizationError{Actor: input.Actor, Action: "bulk assign orders"}
	}
	if len(input.OrderIDs) == 0 {
		return nil, &domain.ValidationError{Field: "order_ids", Message: "must not be empty"}
	}
	worker, err := uc.checkAssignable(ctx, input.Role, input.WorkerID)
	if err != nil {
		return nil, err
	}

	result := &orderdto.BulkAssignResult{Failed: map[int64]string{}}
	for _, orderID := range input.OrderIDs {
		order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
		if err != nil {
			result.Failed[orderID] = err.Error()
			continue
		}
		if order.Status.Terminal() {
			result.Failed[orderID] = "order is in a terminal state"
			continue
		}
		if order.AssigneeFor(input.Role) != nil {
			result.Failed[orderID] = "already assigned"
			continue
		}
		if err := uc.OrderRepo.AssignWorker(ctx, orderID, input.Role, worker.ID, true); err != nil {
			if errors.Is(err, domain.ErrConcurrencyConflict) {
				result.Failed[orderID] = "already assigned"
			} else {
				result.Failed[orderID] = err.Error()
			}
			continue
		}
		if err := uc.appendActivity(ctx, orderID, domain.ActionOrderAssigned, input.Actor.Ref(), map[string]any{
			"role":      input.Role,
			"worker_id": worker.ID,
			"bulk":      true,
		}); err != nil {
			uc.Log.Warn("bulk assignment activity append failed", "order_id", orderID, "error", err)
		}
		result.Assigned = append(result.Assigned, orderID)
		if uc.Metrics != nil {
			uc.Metrics.RecordAssignment(string(input.Role), false)
		}
	}

	uc.Log.Info("bulk assignment finished",
		"role", input.Role,
		"worker_id", worker.ID,
		"assigned", len(result.Assigned),
		"failed", len(result.Failed),
	)
	return result, nil
}
