package models

import (
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

type CODSettlementModel struct {
	ID                int64                   `gorm:"primaryKey;autoIncrement"`
	OrderID           int64                   `gorm:"uniqueIndex;not null"`
	CourierID         int64                   `gorm:"index:idx_settlement_courier;not null"`
	CollectedAmount   float64
	CollectedAt       *time.Time
	SettlementBatchID *int64                  `gorm:"index:idx_settlement_batch"`
	Status            domain.SettlementStatus `gorm:"size:16;index:idx_settlement_status;not null"`
	Notes             string
	CreatedAt         time.Time
}

func (CODSettlementModel) TableName() string {
	return "cod_settlements"
}

type SettlementBatchModel struct {
	ID          int64 `gorm:"primaryKey;autoIncrement"`
	CourierID   int64 `gorm:"index:idx_batch_courier;not null"`
	TotalAmount float64
	OrderCount  int
	CreatedAt   time.Time
}

func (SettlementBatchModel) TableName() string {
	return "settlement_batches"
}
