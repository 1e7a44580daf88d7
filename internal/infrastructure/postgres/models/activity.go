package models

import "time"

type OrderActivityModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	OrderID   int64  `gorm:"index:idx_activity_order;not null"`
	Action    string `gorm:"size:48;not null"`
	Actor     string `gorm:"size:64;not null"`
	Payload   string `gorm:"type:jsonb"`
	CreatedAt time.Time
}

func (OrderActivityModel) TableName() string {
	return "order_activities"
}
