package usecase_test

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = domain.Actor{ID: 1, Role: domain.RoleAdmin}

func TestAssignOrder(t *testing.T) {
	f := newFixture(
		&domain.Worker{ID: 21, Name: "Ram", Role: domain.RoleCourier, City: "kathmandu", Active: true},
		&domain.Worker{ID: 22, Name: "Hari", Role: domain.RoleCourier, City: "pokhara", Active: true},
	)
	seeded := f.orders.seed(&domain.Order{UserID: 7, Status: domain.StatusProcessing})

	order, err := f.uc.AssignOrder(context.Background(), &orderdto.AssignInput{
		OrderID:  seeded.ID,
		Actor:    admin,
		Role:     domain.RoleCourier,
		WorkerID: 21,
	})
	require.NoError(t, err)
	require.NotNil(t, order.AssignedCourierID)
	assert.Equal(t, int64(21), *order.AssignedCourierID)

	// Assigning the same courier again is a no-op with no new audit row.
	_, err = f.uc.AssignOrder(context.Background(), &orderdto.AssignInput{
		OrderID:  seeded.ID,
		Actor:    admin,
		Role:     domain.RoleCourier,
		WorkerID: 21,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{domain.ActionOrderAssigned}, f.activities.actions(seeded.ID))

	order, err = f.uc.AssignOrder(context.Background(), &orderdto.AssignInput{
		OrderID:  seeded.ID,
		Actor:    admin,
		Role:     domain.RoleCourier,
		WorkerID: 22,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(22), *order.AssignedCourierID)
	assert.Equal(t, []string{domain.ActionOrderAssigned, domain.ActionOrderReassigned}, f.activities.actions(seeded.ID))
}

func TestAssignOrderGuards(t *testing.T) {
	f := newFixture(
		&domain.Worker{ID: 21, Role: domain.RoleCourier, City: "kathmandu", Active: true},
		&domain.Worker{ID: 23, Role: domain.RoleCourier, City: "kathmandu", Active: false},
		&domain.Worker{ID: 11, Role: domain.RoleStaff, City: "kathmandu", Active: true},
	)
	open := f.orders.seed(&domain.Order{UserID: 7, Status: domain.StatusProcessing})
	closed := f.orders.seed(&domain.Order{UserID: 7, Status: domain.StatusCancelled})

	t.Run("non-admin denied", func(t *testing.T) {
		_, err := f.uc.AssignOrder(context.Background(), &orderdto.AssignInput{
			OrderID: open.ID, Actor: domain.Actor{ID: 11, Role: domain.RoleStaff}, Role: domain.RoleCourier, WorkerID: 21,
		})
		var authErr *domain.AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})

	t.Run("unknown worker", func(t *testing.T) {
		_, err := f.uc.AssignOrder(context.Background(), &orderdto.AssignInput{
			OrderID: open.ID, Actor: admin, Role: domain.RoleCourier, WorkerID: 404,
		})
		require.ErrorIs(t, err, domain.ErrWorkerNotFound)
	})

	t.Run("role mismatch", func(t *testing.T) {
		_, err := f.uc.AssignOrder(context.Background(), &orderdto.AssignInput{
			OrderID: open.ID, Actor: admin, Role: domain.RoleCourier, WorkerID: 11,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "worker_id", verr.Field)
	})

	t.Run("inactive worker", func(t *testing.T) {
		_, err := f.uc.AssignOrder(context.Background(), &orderdto.AssignInput{
			OrderID: open.ID, Actor: admin, Role: domain.RoleCourier, WorkerID: 23,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("terminal order", func(t *testing.T) {
		_, err := f.uc.AssignOrder(context.Background(), &orderdto.AssignInput{
			OrderID: closed.ID, Actor: admin, Role: domain.RoleCourier, WorkerID: 21,
		})
		var verr *domain.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "order_id", verr.Field)
	})
}

func TestBulkAssignOrders(t *testing.T) {
	f := newFixture(&domain.Worker{ID: 21, Role: domain.RoleCourier, City: "kathmandu", Active: true})

	fresh1 := f.orders.seed(&domain.Order{UserID: 7, Status: domain.StatusProcessing})
	fresh2 := f.orders.seed(&domain.Order{UserID: 8, Status: domain.StatusReadyForPickup})
	taken := f.orders.seed(&domain.Order{UserID: 9, Status: domain.StatusProcessing, AssignedCourierID: ptr(22)})
	done := f.orders.seed(&domain.Order{UserID: 9, Status: domain.StatusDelivered})

	result, err := f.uc.BulkAssignOrders(context.Background(), &orderdto.BulkAssignInput{
		Actor:    admin,
		Role:     domain.RoleCourier,
		WorkerID: 21,
		OrderIDs: []int64{fresh1.ID, fresh2.ID, taken.ID, done.ID, 404},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []int64{fresh1.ID, fresh2.ID}, result.Assigned)
	assert.Equal(t, "already assigned", result.Failed[taken.ID])
	assert.Equal(t, "order is in a terminal state", result.Failed[done.ID])
	assert.Contains(t, result.Failed, int64(404))

	stored, _ := f.orders.GetOrderByID(context.Background(), taken.ID)
	assert.Equal(t, int64(22), *stored.AssignedCourierID, "bulk assignment never steals a held order")
}

func TestBulkAssignRequiresOrderIDs(t *testing.T) {
	f := newFixture(&domain.Worker{ID: 21, Role: domain.RoleCourier, Active: true})

	_, err := f.uc.BulkAssignOrders(context.Background(), &orderdto.BulkAssignInput{
		Actor: admin, Role: domain.RoleCourier, WorkerID: 21,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "order_ids", verr.Field)
}
