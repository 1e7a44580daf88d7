package mappers

import (
	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainAttempt(model *models.DeliveryAttemptModel) *domain.DeliveryAttempt {
	return &domain.DeliveryAttempt{
		ID:            model.ID,
		OrderID:       model.OrderID,
		CourierID:     model.CourierID,
		Reason:        model.Reason,
		Notes:         model.Notes,
		ProofRef:      model.ProofRef,
		OTPUsed:       model.OTPUsed,
		SignatureFlag: model.SignatureFlag,
		Outcome:       model.Outcome,
		AttemptedAt:   model.AttemptedAt,
	}
}

func ToGORMAttempt(attempt *domain.DeliveryAttempt) *models.DeliveryAttemptModel {
	return &models.DeliveryAttemptModel{
		ID:            attempt.ID,
		OrderID:       attempt.OrderID,
		CourierID:     attempt.CourierID,
		Reason:        attempt.Reason,
		Notes:         attempt.Notes,
		ProofRef:      attempt.ProofRef,
		OTPUsed:       attempt.OTPUsed,
		SignatureFlag: attempt.SignatureFlag,
		Outcome:       attempt.Outcome,
		AttemptedAt:   attempt.AttemptedAt,
	}
}

func ToDomainSettlement(model *models.CODSettlementModel) *domain.CODSettlement {
	return &domain.CODSettlement{
		ID:                model.ID,
		OrderID:           model.OrderID,
		CourierID:         model.CourierID,
		CollectedAmount:   model.CollectedAmount,
		CollectedAt:       model.CollectedAt,
		SettlementBatchID: model.SettlementBatchID,
		Status:            model.Status,
		Notes:             model.Notes,
		CreatedAt:         model.CreatedAt,
	}
}

func ToGORMSettlement(settlement *domain.CODSettlement) *models.CODSettlementModel {
	return &models.CODSettlementModel{
		ID:                settlement.ID,
		OrderID:           settlement.OrderID,
		CourierID:         settlement.CourierID,
		CollectedAmount:   settlement.CollectedAmount,
		CollectedAt:       settlement.CollectedAt,
		SettlementBatchID: settlement.SettlementBatchID,
		Status:            settlement.Status,
		Notes:             settlement.Notes,
		CreatedAt:         settlement.CreatedAt,
	}
}

func ToDomainBatch(model *models.SettlementBatchModel) *domain.SettlementBatch {
	return &domain.SettlementBatch{
		ID:          model.ID,
		CourierID:   model.CourierID,
		TotalAmount: model.TotalAmount,
		OrderCount:  model.OrderCount,
		CreatedAt:   model.CreatedAt,
	}
}
