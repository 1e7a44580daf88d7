package usecase

import (
	"context"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByID(ctx, orderID)
}

func (uc *DefaultOrderUsecase) GetOrderByInvoice(ctx context.Context, invoice string) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByInvoice(ctx, invoice)
}

func (uc *DefaultOrderUsecase) GetOrderActivity(ctx context.Context, orderID int64) ([]*domain.OrderActivity, error) {
	if _, err := uc.OrderRepo.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.ActivityRepo.ListByOrderID(ctx, orderID)
}

func (uc *DefaultOrderUsecase) GetDeliveryAttempts(ctx context.Context, orderID int64) ([]*domain.DeliveryAttempt, error) {
	if _, err := uc.OrderRepo.GetOrderByID(ctx, orderID); err != nil {
		return nil, err
	}
	return uc.AttemptRepo.ListByOrderID(ctx, orderID)
}

func (uc *DefaultOrderUsecase) GetOrdersByWorker(ctx context.Context, role domain.ActorRole, workerID int64) ([]*domain.Order, error) {
	return uc.OrderRepo.GetOrdersByWorker(ctx, role, workerID)
}

func (uc *DefaultOrderUsecase) GetUnassignedOrders(ctx context.Context, role domain.ActorRole) ([]*domain.Order, error) {
	return uc.OrderRepo.GetUnassignedOrders(ctx, role)
}

func (uc *DefaultOrderUsecase) GetCourierStats(ctx context.Context, courierID int64) (*orderdto.CourierStats, error) {
	open, err := uc.OrderRepo.CountOpenOrdersByWorker(ctx, domain.RoleCourier, courierID)
	if err != nil {
		return nil, err
	}
	collected, err := uc.SettlementRepo.ListCollectedByCourier(ctx, courierID)
	if err != nil {
		return nil, err
	}

	stats := &orderdto.CourierStats{
		CourierID:  courierID,
		OpenOrders: open,
	}
	for _, settlement := range collected {
		stats.CollectedCash += settlement.CollectedAmount
		stats.CollectedCount++
	}
	return stats, nil
}
