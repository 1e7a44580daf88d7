package mappers

import (
	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	return &domain.Order{
		ID:                model.ID,
		Invoice:           model.Invoice,
		UserID:            model.UserID,
		Status:            model.Status,
		PaymentStatus:     model.PaymentStatus,
		PaymentMethod:     model.PaymentMethod,
		TotalAmount:       model.TotalAmount,
		AssignedStaffID:   model.AssignedStaffID,
		AssignedCourierID: model.AssignedCourierID,
		DeliveryCity:      model.DeliveryCity,
		ShippingAddress:   model.ShippingAddress,
		PackagedCount:     model.PackagedCount,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
		DeliveredAt:       model.DeliveredAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	return &models.OrderModel{
		ID:                order.ID,
		Invoice:           order.Invoice,
		UserID:            order.UserID,
		Status:            order.Status,
		PaymentStatus:     order.PaymentStatus,
		PaymentMethod:     order.PaymentMethod,
		TotalAmount:       order.TotalAmount,
		AssignedStaffID:   order.AssignedStaffID,
		AssignedCourierID: order.AssignedCourierID,
		DeliveryCity:      order.DeliveryCity,
		ShippingAddress:   order.ShippingAddress,
		PackagedCount:     order.PackagedCount,
		CreatedAt:         order.CreatedAt,
		UpdatedAt:         order.UpdatedAt,
		DeliveredAt:       order.DeliveredAt,
	}
}
