package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

// DefaultFraudRepository keeps the gate's counters in Postgres so every
// service instance shares the same view of attempt history.
type DefaultFraudRepository struct {
	DB *gorm.DB
}

func NewDefaultFraudRepository(db *gorm.DB) *DefaultFraudRepository {
	return &DefaultFraudRepository{DB: db}
}

func (r *DefaultFraudRepository) SaveAssessment(ctx context.Context, assessment *domain.FraudAssessment) error {
	model := mappers.ToGORMAssessment(assessment)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	assessment.ID = model.ID
	return nil
}

func (r *DefaultFraudRepository) RecordAttempt(ctx context.Context, attempt *domain.FraudAttempt) error {
	model := mappers.ToGORMFraudAttempt(attempt)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	attempt.ID = model.ID
	return nil
}

func (r *DefaultFraudRepository) CountAttemptsByKey(ctx context.Context, key string, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.FraudAttemptModel{}).
		Where("attempt_key = ? AND created_at >= ?", key, since).
		Count(&count).Error
	return count, err
}

func (r *DefaultFraudRepository) CountAttemptsByUser(ctx context.Context, userID int64, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.FraudAttemptModel{}).
		Where("user_id = ? AND created_at >= ?", userID, since).
		Count(&count).Error
	return count, err
}

func (r *DefaultFraudRepository) CountDuplicates(ctx context.Context, userID, orderID int64, amount float64, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.FraudAttemptModel{}).
		Where("user_id = ? AND order_id = ? AND amount = ? AND created_at >= ?", userID, orderID, amount, since).
		Count(&count).Error
	return count, err
}

func (r *DefaultFraudRepository) CountDistinctUsersByIP(ctx context.Context, ip string, excludeUserID int64, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.FraudAttemptModel{}).
		Distinct("user_id").
		Where("ip = ? AND user_id <> ? AND created_at >= ?", ip, excludeUserID, since).
		Count(&count).Error
	return count, err
}
