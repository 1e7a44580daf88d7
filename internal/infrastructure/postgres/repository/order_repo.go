package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

var terminalStatuses = []domain.OrderStatus{
	domain.StatusDelivered,
	domain.StatusCancelled,
	domain.StatusReturned,
}

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func assignmentColumn(role domain.ActorRole) (string, error) {
	switch role {
	case domain.RoleStaff:
		return "assigned_staff_id", nil
	case domain.RoleCourier:
		return "assigned_courier_id", nil
	}
	return "", fmt.Errorf("role %s has no assignment column", role)
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return err
	}
	order.ID = orderModel.ID
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) GetOrderByInvoice(ctx context.Context, invoice string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "invoice = ?", invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return mappers.ToDomainOrder(&order), nil
}

func transitionUpdates(upd domain.TransitionUpdate) map[string]any {
	updates := map[string]any{
		"status":     upd.To,
		"updated_at": time.Now(),
	}
	if upd.DeliveredAt != nil {
		updates["delivered_at"] = *upd.DeliveredAt
	}
	if upd.PaymentStatus != nil {
		updates["payment_status"] = *upd.PaymentStatus
	}
	return updates
}

// resolveConflict turns a zero-row CAS update into the right domain error
// by re-reading the row.
func (r *DefaultOrderRepository) resolveConflict(ctx context.Context, orderID int64) error {
	if _, err := r.GetOrderByID(ctx, orderID); err != nil {
		return err
	}
	return domain.ErrConcurrencyConflict
}

func (r *DefaultOrderRepository) ApplyTransition(ctx context.Context, orderID int64, upd domain.TransitionUpdate) error {
	result := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, upd.From).
		Updates(transitionUpdates(upd))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.resolveConflict(ctx, orderID)
	}
	return nil
}

func (r *DefaultOrderRepository) ClaimAndTransition(ctx context.Context, orderID int64, actor domain.Actor, upd domain.TransitionUpdate) error {
	column, err := assignmentColumn(actor.Role)
	if err != nil {
		return err
	}

	updates := transitionUpdates(upd)
	updates[column] = actor.ID

	result := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where(fmt.Sprintf("id = ? AND status = ? AND (%s IS NULL OR %s = ?)", column, column), orderID, upd.From, actor.ID).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.resolveConflict(ctx, orderID)
	}
	return nil
}

func (r *DefaultOrderRepository) AssignWorker(ctx context.Context, orderID int64, role domain.ActorRole, workerID int64, onlyIfUnassigned bool) error {
	column, err := assignmentColumn(role)
	if err != nil {
		return err
	}

	query := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", orderID)
	if onlyIfUnassigned {
		query = query.Where(column + " IS NULL")
	}

	result := query.Updates(map[string]any{
		column:       workerID,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.resolveConflict(ctx, orderID)
	}
	return nil
}

func (r *DefaultOrderRepository) IncrementPackagedCount(ctx context.Context, orderID int64) (int, error) {
	var count int
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.OrderModel{}).
			Where("id = ?", orderID).
			Updates(map[string]any{
				"packaged_count": gorm.Expr("packaged_count + 1"),
				"updated_at":     time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrOrderNotFound
		}
		return tx.Model(&models.OrderModel{}).
			Select("packaged_count").
			Where("id = ?", orderID).
			Scan(&count).Error
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DefaultOrderRepository) MarkPaid(ctx context.Context, orderID int64, from domain.PaymentStatus) error {
	result := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ? AND payment_status = ?", orderID, from).
		Updates(map[string]any{
			"payment_status": domain.PaymentPaid,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return r.resolveConflict(ctx, orderID)
	}
	return nil
}

func (r *DefaultOrderRepository) GetUnassignedOrders(ctx context.Context, role domain.ActorRole) ([]*domain.Order, error) {
	column, err := assignmentColumn(role)
	if err != nil {
		return nil, err
	}

	var orderModels []models.OrderModel
	if err := r.DB.WithContext(ctx).
		Where(column+" IS NULL").
		Where("status NOT IN (?)", terminalStatuses).
		Order("created_at ASC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, mappers.ToDomainOrder(&orderModels[i]))
	}
	return orders, nil
}

func (r *DefaultOrderRepository) GetOrdersByWorker(ctx context.Context, role domain.ActorRole, workerID int64) ([]*domain.Order, error) {
	column, err := assignmentColumn(role)
	if err != nil {
		return nil, err
	}

	var orderModels []models.OrderModel
	if err := r.DB.WithContext(ctx).
		Where(column+" = ?", workerID).
		Order("created_at DESC").
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, 0, len(orderModels))
	for i := range orderModels {
		orders = append(orders, mappers.ToDomainOrder(&orderModels[i]))
	}
	return orders, nil
}

func (r *DefaultOrderRepository) CountOpenOrdersByWorker(ctx context.Context, role domain.ActorRole, workerID int64) (int64, error) {
	column, err := assignmentColumn(role)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where(column+" = ?", workerID).
		Where("status NOT IN (?)", terminalStatuses).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *DefaultOrderRepository) CountRecentOrdersByUser(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var count int64
	if err := r.DB.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
