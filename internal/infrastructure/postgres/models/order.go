package models

import (
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

type OrderModel struct {
	ID                int64                `gorm:"primaryKey;autoIncrement"`
	Invoice           string               `gorm:"uniqueIndex;size:32;not null"`
	UserID            int64                `gorm:"index:idx_user_created"`
	Status            domain.OrderStatus   `gorm:"index:idx_status;size:32;not null"`
	PaymentStatus     domain.PaymentStatus `gorm:"size:16;not null"`
	PaymentMethod     domain.PaymentMethod `gorm:"size:16;not null"`
	TotalAmount       float64              `gorm:"not null"`
	AssignedStaffID   *int64               `gorm:"index:idx_staff"`
	AssignedCourierID *int64               `gorm:"index:idx_courier"`
	DeliveryCity      string               `gorm:"size:64;index:idx_city"`
	ShippingAddress   string
	PackagedCount     int        `gorm:"not null;default:0"`
	CreatedAt         time.Time  `gorm:"index:idx_user_created"`
	UpdatedAt         time.Time
	DeliveredAt       *time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}
