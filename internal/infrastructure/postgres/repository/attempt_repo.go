package repository

import (
	"context"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDeliveryAttemptRepository struct {
	DB *gorm.DB
}

func NewDefaultDeliveryAttemptRepository(db *gorm.DB) *DefaultDeliveryAttemptRepository {
	return &DefaultDeliveryAttemptRepository{DB: db}
}

func (r *DefaultDeliveryAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.DeliveryAttempt) error {
	model := mappers.ToGORMAttempt(attempt)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	attempt.ID = model.ID
	return nil
}

func (r *DefaultDeliveryAttemptRepository) ListByOrderID(ctx context.Context, orderID int64) ([]*domain.DeliveryAttempt, error) {
	var attemptModels []models.DeliveryAttemptModel
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("attempted_at ASC").
		Find(&attemptModels).Error; err != nil {
		return nil, err
	}

	attempts := make([]*domain.DeliveryAttempt, 0, len(attemptModels))
	for i := range attemptModels {
		attempts = append(attempts, mappers.ToDomainAttempt(&attemptModels[i]))
	}
	return attempts, nil
}
