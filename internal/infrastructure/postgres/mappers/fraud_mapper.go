package mappers

import (
	"encoding/json"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainAssessment(model *models.FraudAssessmentModel) *domain.FraudAssessment {
	var indicators []string
	if model.Indicators != "" {
		_ = json.Unmarshal([]byte(model.Indicators), &indicators)
	}
	return &domain.FraudAssessment{
		ID:         model.ID,
		TraceID:    model.TraceID,
		UserID:     model.UserID,
		OrderID:    model.OrderID,
		Amount:     model.Amount,
		Score:      model.Score,
		Indicators: indicators,
		Decision:   model.Decision,
		Enforced:   model.Enforced,
		IP:         model.IP,
		CreatedAt:  model.CreatedAt,
	}
}

func ToGORMAssessment(assessment *domain.FraudAssessment) *models.FraudAssessmentModel {
	indicators, _ := json.Marshal(assessment.Indicators)
	return &models.FraudAssessmentModel{
		ID:         assessment.ID,
		TraceID:    assessment.TraceID,
		UserID:     assessment.UserID,
		OrderID:    assessment.OrderID,
		Amount:     assessment.Amount,
		Score:      assessment.Score,
		Indicators: string(indicators),
		Decision:   assessment.Decision,
		Enforced:   assessment.Enforced,
		IP:         assessment.IP,
		CreatedAt:  assessment.CreatedAt,
	}
}

func ToGORMFraudAttempt(attempt *domain.FraudAttempt) *models.FraudAttemptModel {
	return &models.FraudAttemptModel{
		ID:        attempt.ID,
		Key:       attempt.Key,
		UserID:    attempt.UserID,
		OrderID:   attempt.OrderID,
		Amount:    attempt.Amount,
		IP:        attempt.IP,
		CreatedAt: attempt.CreatedAt,
	}
}
