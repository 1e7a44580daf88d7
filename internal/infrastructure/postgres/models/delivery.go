package models

import (
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

type DeliveryAttemptModel struct {
	ID            int64                 `gorm:"primaryKey;autoIncrement"`
	OrderID       int64                 `gorm:"index:idx_attempt_order;not null"`
	CourierID     int64                 `gorm:"index:idx_attempt_courier;not null"`
	Reason        string                `gorm:"size:255"`
	Notes         string
	ProofRef      string                `gorm:"size:255"`
	OTPUsed       bool
	SignatureFlag bool
	Outcome       domain.AttemptOutcome `gorm:"size:16;not null"`
	AttemptedAt   time.Time
}

func (DeliveryAttemptModel) TableName() string {
	return "delivery_attempts"
}
