package models

import (
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

type FraudAssessmentModel struct {
	ID         int64                `gorm:"primaryKey;autoIncrement"`
	TraceID    string               `gorm:"uniqueIndex;size:36;not null"`
	UserID     int64                `gorm:"index:idx_assessment_user"`
	OrderID    int64
	Amount     float64
	Score      int
	Indicators string               `gorm:"type:jsonb"`
	Decision   domain.FraudDecision `gorm:"size:8;not null"`
	Enforced   bool
	IP         string               `gorm:"size:45"`
	CreatedAt  time.Time            `gorm:"index:idx_assessment_created"`
}

func (FraudAssessmentModel) TableName() string {
	return "fraud_assessments"
}

type FraudAttemptModel struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	Key       string  `gorm:"column:attempt_key;size:64;index:idx_attempt_key_created,priority:1;not null"`
	UserID    int64   `gorm:"index:idx_attempt_user_created,priority:1"`
	OrderID   int64
	Amount    float64
	IP        string    `gorm:"size:45;index:idx_attempt_ip_created,priority:1"`
	CreatedAt time.Time `gorm:"index:idx_attempt_key_created,priority:2;index:idx_attempt_user_created,priority:2;index:idx_attempt_ip_created,priority:2"`
}

func (FraudAttemptModel) TableName() string {
	return "fraud_attempts"
}
