package repository

import (
	"context"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultActivityRepository is append-only: there is no update or delete
// path for audit rows.
type DefaultActivityRepository struct {
	DB *gorm.DB
}

func NewDefaultActivityRepository(db *gorm.DB) *DefaultActivityRepository {
	return &DefaultActivityRepository{DB: db}
}

func (r *DefaultActivityRepository) Append(ctx context.Context, activity *domain.OrderActivity) error {
	model := mappers.ToGORMActivity(activity)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	activity.ID = model.ID
	return nil
}

func (r *DefaultActivityRepository) ListByOrderID(ctx context.Context, orderID int64) ([]*domain.OrderActivity, error) {
	var activityModels []models.OrderActivityModel
	if err := r.DB.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&activityModels).Error; err != nil {
		return nil, err
	}

	activities := make([]*domain.OrderActivity, 0, len(activityModels))
	for i := range activityModels {
		activities = append(activities, mappers.ToDomainActivity(&activityModels[i]))
	}
	return activities, nil
}
