package repository

import (
	"context"
	"errors"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultWorkerRepository struct {
	DB *gorm.DB
}

func NewDefaultWorkerRepository(db *gorm.DB) *DefaultWorkerRepository {
	return &DefaultWorkerRepository{DB: db}
}

func (r *DefaultWorkerRepository) GetWorkerByID(ctx context.Context, workerID int64) (*domain.Worker, error) {
	var worker models.WorkerModel
	if err := r.DB.WithContext(ctx).First(&worker, "id = ?", workerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrWorkerNotFound
		}
		return nil, err
	}
	return mappers.ToDomainWorker(&worker), nil
}

func (r *DefaultWorkerRepository) findWorkers(ctx context.Context, conds func(*gorm.DB) *gorm.DB) ([]*domain.Worker, error) {
	var workerModels []models.WorkerModel
	if err := conds(r.DB.WithContext(ctx).Where("active = ?", true)).
		Find(&workerModels).Error; err != nil {
		return nil, err
	}

	workers := make([]*domain.Worker, 0, len(workerModels))
	for i := range workerModels {
		workers = append(workers, mappers.ToDomainWorker(&workerModels[i]))
	}
	return workers, nil
}

func (r *DefaultWorkerRepository) FindActiveByRole(ctx context.Context, role domain.ActorRole) ([]*domain.Worker, error) {
	return r.findWorkers(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("role = ?", role)
	})
}

func (r *DefaultWorkerRepository) FindActiveByRoleAndCity(ctx context.Context, role domain.ActorRole, city string) ([]*domain.Worker, error) {
	return r.findWorkers(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("role = ? AND LOWER(TRIM(city)) = ?", role, city)
	})
}

func (r *DefaultWorkerRepository) FindFallbackPool(ctx context.Context, role domain.ActorRole) ([]*domain.Worker, error) {
	return r.findWorkers(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Where("role = ? AND fallback_pool = ?", role, true)
	})
}
