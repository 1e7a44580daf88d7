package repository

import (
	"context"
	"errors"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultSettlementRepository struct {
	DB *gorm.DB
}

func NewDefaultSettlementRepository(db *gorm.DB) *DefaultSettlementRepository {
	return &DefaultSettlementRepository{DB: db}
}

func (r *DefaultSettlementRepository) GetByOrderID(ctx context.Context, orderID int64) (*domain.CODSettlement, error) {
	var settlement models.CODSettlementModel
	if err := r.DB.WithContext(ctx).First(&settlement, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSettlementNotFound
		}
		return nil, err
	}
	return mappers.ToDomainSettlement(&settlement), nil
}

func (r *DefaultSettlementRepository) CreateSettlement(ctx context.Context, settlement *domain.CODSettlement) error {
	model := mappers.ToGORMSettlement(settlement)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		return err
	}
	settlement.ID = model.ID
	return nil
}

func (r *DefaultSettlementRepository) MarkCollected(ctx context.Context, settlementID int64, amount float64, collectedAt time.Time, notes string) error {
	result := r.DB.WithContext(ctx).
		Model(&models.CODSettlementModel{}).
		Where("id = ? AND status <> ?", settlementID, domain.SettlementSettled).
		Updates(map[string]any{
			"status":           domain.SettlementCollected,
			"collected_amount": amount,
			"collected_at":     collectedAt,
			"notes":            notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrSettlementNotFound
	}
	return nil
}

func (r *DefaultSettlementRepository) ListCollectedByCourier(ctx context.Context, courierID int64) ([]*domain.CODSettlement, error) {
	var settlementModels []models.CODSettlementModel
	if err := r.DB.WithContext(ctx).
		Where("courier_id = ? AND status = ?", courierID, domain.SettlementCollected).
		Order("collected_at ASC").
		Find(&settlementModels).Error; err != nil {
		return nil, err
	}

	settlements := make([]*domain.CODSettlement, 0, len(settlementModels))
	for i := range settlementModels {
		settlements = append(settlements, mappers.ToDomainSettlement(&settlementModels[i]))
	}
	return settlements, nil
}

// SettleCourier moves every collected settlement of the courier into a new
// batch. The sum, the batch insert and the settlement flip happen in one
// transaction so a crash cannot leave cash half-cleared.
func (r *DefaultSettlementRepository) SettleCourier(ctx context.Context, courierID int64) (*domain.SettlementBatch, error) {
	var batchModel models.SettlementBatchModel

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var settlementModels []models.CODSettlementModel
		if err := tx.
			Where("courier_id = ? AND status = ?", courierID, domain.SettlementCollected).
			Find(&settlementModels).Error; err != nil {
			return err
		}
		if len(settlementModels) == 0 {
			return domain.ErrSettlementNotFound
		}

		total := 0.0
		ids := make([]int64, 0, len(settlementModels))
		for _, settlement := range settlementModels {
			total += settlement.CollectedAmount
			ids = append(ids, settlement.ID)
		}

		batchModel = models.SettlementBatchModel{
			CourierID:   courierID,
			TotalAmount: total,
			OrderCount:  len(settlementModels),
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&batchModel).Error; err != nil {
			return err
		}

		result := tx.Model(&models.CODSettlementModel{}).
			Where("id IN (?) AND status = ?", ids, domain.SettlementCollected).
			Updates(map[string]any{
				"status":              domain.SettlementSettled,
				"settlement_batch_id": batchModel.ID,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected != int64(len(ids)) {
			return domain.ErrConcurrencyConflict
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mappers.ToDomainBatch(&batchModel), nil
}
