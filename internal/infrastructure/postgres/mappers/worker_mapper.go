package mappers

import (
	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainWorker(model *models.WorkerModel) *domain.Worker {
	return &domain.Worker{
		ID:           model.ID,
		Name:         model.Name,
		Role:         model.Role,
		City:         model.City,
		Active:       model.Active,
		FallbackPool: model.FallbackPool,
		CreatedAt:    model.CreatedAt,
	}
}

func ToGORMWorker(worker *domain.Worker) *models.WorkerModel {
	return &models.WorkerModel{
		ID:           worker.ID,
		Name:         worker.Name,
		Role:         worker.Role,
		City:         worker.City,
		Active:       worker.Active,
		FallbackPool: worker.FallbackPool,
		CreatedAt:    worker.CreatedAt,
	}
}

func ToDomainActivity(model *models.OrderActivityModel) *domain.OrderActivity {
	return &domain.OrderActivity{
		ID:        model.ID,
		OrderID:   model.OrderID,
		Action:    model.Action,
		Actor:     model.Actor,
		Payload:   model.Payload,
		CreatedAt: model.CreatedAt,
	}
}

func ToGORMActivity(activity *domain.OrderActivity) *models.OrderActivityModel {
	return &models.OrderActivityModel{
		ID:        activity.ID,
		OrderID:   activity.OrderID,
		Action:    activity.Action,
		Actor:     activity.Actor,
		Payload:   activity.Payload,
		CreatedAt: activity.CreatedAt,
	}
}
