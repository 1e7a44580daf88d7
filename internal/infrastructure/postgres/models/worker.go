package models

import (
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

type WorkerModel struct {
	ID           int64            `gorm:"primaryKey;autoIncrement"`
	Name         string           `gorm:"size:128;not null"`
	Role         domain.ActorRole `gorm:"size:16;index:idx_role_city;not null"`
	City         string           `gorm:"size:64;index:idx_role_city"`
	Active       bool             `gorm:"not null;default:true"`
	FallbackPool bool             `gorm:"not null;default:false"`
	CreatedAt    time.Time
}

func (WorkerModel) TableName() string {
	return "workers"
}
