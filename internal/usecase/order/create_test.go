package usecase_test

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codCart() []orderdto.CartItem {
	return []orderdto.CartItem{
		{ProductName: "thermos", Quantity: 2, UnitPrice: 1500},
		{ProductName: "headlamp", Quantity: 1, UnitPrice: 2400},
	}
}

func TestCreateOrder(t *testing.T) {
	f := newFixture(&domain.Worker{ID: 11, Name: "Sita", Role: domain.RoleStaff, City: "kathmandu", Active: true})

	out, err := f.uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		UserID:          7,
		Items:           codCart(),
		PaymentMethod:   domain.PaymentMethodCOD,
		ShippingAddress: "Thamel, Kathmandu",
		ClientIP:        "10.0.0.1",
	})
	require.NoError(t, err)

	order := out.Order
	assert.Len(t, order.Invoice, 15)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, domain.PaymentPending, order.PaymentStatus)
	assert.Equal(t, 5400.0, order.TotalAmount)
	assert.Equal(t, "kathmandu", order.DeliveryCity, "city comes from the address when not sent explicitly")
	require.NotNil(t, order.AssignedStaffID)
	assert.Equal(t, int64(11), *order.AssignedStaffID)
	assert.Equal(t, "trace-test", out.Assessment.TraceID)

	assert.Equal(t, []string{domain.ActionOrderCreated, domain.ActionOrderAssigned}, f.activities.actions(order.ID))
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, order.Invoice, f.publisher.events[0].Invoice)
	assert.Equal(t, "user_7", f.publisher.events[0].Actor)
}

func TestCreateOrderWithoutStaffPool(t *testing.T) {
	f := newFixture()

	out, err := f.uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		UserID:          7,
		Items:           codCart(),
		PaymentMethod:   domain.PaymentMethodEsewa,
		ShippingAddress: "Lakeside",
		DeliveryCity:    "Pokhara",
	})
	require.NoError(t, err, "an empty staff pool must not fail placement")

	assert.Equal(t, "pokhara", out.Order.DeliveryCity)
	assert.Nil(t, out.Order.AssignedStaffID)
	assert.Equal(t, []string{domain.ActionOrderCreated}, f.activities.actions(out.Order.ID))
}

func TestCreateOrderBlockedByFraudGate(t *testing.T) {
	f := newFixture()
	f.gate.err = &domain.FraudBlockedError{TraceID: "trace-x", Score: 70}

	_, err := f.uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		UserID:          7,
		Items:           codCart(),
		PaymentMethod:   domain.PaymentMethodCOD,
		ShippingAddress: "Thamel, Kathmandu",
	})

	var blocked *domain.FraudBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, 70, blocked.Score)
	assert.Empty(t, f.orders.orders, "rejected orders are never persisted")
	assert.Empty(t, f.publisher.events)
}

func TestCreateOrderValidation(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name  string
		input orderdto.CreateOrderInput
		field string
	}{
		{
			name:  "empty cart",
			input: orderdto.CreateOrderInput{UserID: 7, PaymentMethod: domain.PaymentMethodCOD, ShippingAddress: "Thamel"},
			field: "items",
		},
		{
			name: "zero quantity",
			input: orderdto.CreateOrderInput{
				UserID:          7,
				Items:           []orderdto.CartItem{{ProductName: "thermos", Quantity: 0, UnitPrice: 100}},
				PaymentMethod:   domain.PaymentMethodCOD,
				ShippingAddress: "Thamel",
			},
			field: "items",
		},
		{
			name: "unknown payment method",
			input: orderdto.CreateOrderInput{
				UserID:          7,
				Items:           codCart(),
				PaymentMethod:   "cheque",
				ShippingAddress: "Thamel",
			},
			field: "payment_method",
		},
		{
			name: "blank address",
			input: orderdto.CreateOrderInput{
				UserID:        7,
				Items:         codCart(),
				PaymentMethod: domain.PaymentMethodCOD,
			},
			field: "shipping_address",
		},
		{
			name: "missing user",
			input: orderdto.CreateOrderInput{
				Items:           codCart(),
				PaymentMethod:   domain.PaymentMethodCOD,
				ShippingAddress: "Thamel",
			},
			field: "user_id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateOrder(context.Background(), &tc.input)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
