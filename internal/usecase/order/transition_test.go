package usecase_test

import (
	"context"
	"testing"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	orderdto "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/dto/order"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(id int64) *int64 { return &id }

func TestTransitionClaimsUnassignedOrder(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{
		UserID:        7,
		Status:        domain.StatusPending,
		PaymentStatus: domain.PaymentPending,
		PaymentMethod: domain.PaymentMethodCOD,
	})

	staff := domain.Actor{ID: 11, Role: domain.RoleStaff}
	order, err := f.uc.TransitionOrder(context.Background(), &orderdto.TransitionInput{
		OrderID: seeded.ID,
		Actor:   staff,
		Target:  domain.StatusProcessing,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusProcessing, order.Status)
	require.NotNil(t, order.AssignedStaffID, "first action claims the order")
	assert.Equal(t, int64(11), *order.AssignedStaffID)

	stored, err := f.orders.GetOrderByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, stored.Status)
	require.NotNil(t, stored.AssignedStaffID)
	assert.Equal(t, int64(11), *stored.AssignedStaffID)

	assert.Equal(t, []string{domain.ActionStatusChanged}, f.activities.actions(seeded.ID))
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, "staff_11", f.publisher.events[0].Actor)
}

func TestTransitionRejectsForeignAssignee(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{
		UserID:          7,
		Status:          domain.StatusPending,
		AssignedStaffID: ptr(11),
	})

	_, err := f.uc.TransitionOrder(context.Background(), &orderdto.TransitionInput{
		OrderID: seeded.ID,
		Actor:   domain.Actor{ID: 12, Role: domain.RoleStaff},
		Target:  domain.StatusProcessing,
	})

	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)

	stored, _ := f.orders.GetOrderByID(context.Background(), seeded.ID)
	assert.Equal(t, domain.StatusPending, stored.Status)
}

func TestTransitionAdminBypassesAssignment(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{
		UserID:          7,
		Status:          domain.StatusPending,
		AssignedStaffID: ptr(11),
	})

	order, err := f.uc.TransitionOrder(context.Background(), &orderdto.TransitionInput{
		OrderID: seeded.ID,
		Actor:   domain.Actor{ID: 1, Role: domain.RoleAdmin},
		Target:  domain.StatusCancelled,
		Note:    "customer called",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, order.Status)
	require.NotNil(t, order.AssignedStaffID)
	assert.Equal(t, int64(11), *order.AssignedStaffID, "admin actions never rebind assignment")
}

func TestTransitionRejectsIllegalEdge(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{UserID: 7, Status: domain.StatusPending})

	_, err := f.uc.TransitionOrder(context.Background(), &orderdto.TransitionInput{
		OrderID: seeded.ID,
		Actor:   domain.Actor{ID: 11, Role: domain.RoleStaff},
		Target:  domain.StatusShipped,
	})

	var transErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transErr)
	assert.Equal(t, domain.StatusPending, transErr.Current)
	assert.Equal(t, domain.StatusShipped, transErr.Requested)
}

func TestTransitionToDeliveredRequiresProof(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{
		UserID:            7,
		Status:            domain.StatusInTransit,
		AssignedCourierID: ptr(21),
	})

	_, err := f.uc.TransitionOrder(context.Background(), &orderdto.TransitionInput{
		OrderID: seeded.ID,
		Actor:   domain.Actor{ID: 21, Role: domain.RoleCourier},
		Target:  domain.StatusDelivered,
	})
	require.ErrorIs(t, err, domain.ErrMissingProof)

	order, err := f.uc.TransitionOrder(context.Background(), &orderdto.TransitionInput{
		OrderID: seeded.ID,
		Actor:   domain.Actor{ID: 1, Role: domain.RoleAdmin},
		Target:  domain.StatusDelivered,
	})
	require.NoError(t, err, "admin may force delivery without proof")
	assert.Equal(t, domain.StatusDelivered, order.Status)
	require.NotNil(t, order.DeliveredAt)
}

func TestTransitionReturnLeg(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{
		UserID:            7,
		Status:            domain.StatusReturnInTransit,
		AssignedCourierID: ptr(21),
	})

	order, err := f.uc.TransitionOrder(context.Background(), &orderdto.TransitionInput{
		OrderID: seeded.ID,
		Actor:   domain.Actor{ID: 21, Role: domain.RoleCourier},
		Target:  domain.StatusReturned,
		Note:    "customer refused parcel",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusReturned, order.Status)

	attempts, err := f.attempts.ListByOrderID(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Len(t, attempts, 1, "completing the return leg records an attempt")
	assert.Equal(t, domain.AttemptOutcomeReturned, attempts[0].Outcome)
	assert.Equal(t, int64(21), attempts[0].CourierID)
}

func TestTransitionUnknownOrder(t *testing.T) {
	f := newFixture()

	_, err := f.uc.TransitionOrder(context.Background(), &orderdto.TransitionInput{
		OrderID: 404,
		Actor:   domain.Actor{ID: 1, Role: domain.RoleAdmin},
		Target:  domain.StatusCancelled,
	})
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestMarkPackaged(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{UserID: 7, Status: domain.StatusConfirmed})
	staff := domain.Actor{ID: 11, Role: domain.RoleStaff}

	order, err := f.uc.MarkPackaged(context.Background(), seeded.ID, staff, "first parcel")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, order.Status, "first packaging action moves the order into processing")
	assert.Equal(t, 1, order.PackagedCount)
	require.NotNil(t, order.AssignedStaffID)
	assert.Equal(t, int64(11), *order.AssignedStaffID)

	order, err = f.uc.MarkPackaged(context.Background(), seeded.ID, staff, "second parcel")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusProcessing, order.Status)
	assert.Equal(t, 2, order.PackagedCount)

	assert.Equal(t, []string{domain.ActionPackaged, domain.ActionPackaged}, f.activities.actions(seeded.ID))
}

func TestMarkPackagedRejectsCourier(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{UserID: 7, Status: domain.StatusConfirmed})

	_, err := f.uc.MarkPackaged(context.Background(), seeded.ID, domain.Actor{ID: 21, Role: domain.RoleCourier}, "")
	var authErr *domain.AuthorizationError
	require.ErrorAs(t, err, &authErr)
}

func TestMarkPackagedPullsShippedOrderBack(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{
		UserID:          7,
		Status:          domain.StatusShipped,
		AssignedStaffID: ptr(11),
		PackagedCount:   1,
	})

	order, err := f.uc.MarkPackaged(context.Background(), seeded.ID, domain.Actor{ID: 11, Role: domain.RoleStaff}, "repack")
	require.NoError(t, err, "staff may pull a shipped order back for repackaging")
	assert.Equal(t, domain.StatusProcessing, order.Status)
	assert.Equal(t, 2, order.PackagedCount)
}

func TestMarkPackagedRejectsDeliveredOrder(t *testing.T) {
	f := newFixture()
	seeded := f.orders.seed(&domain.Order{
		UserID:          7,
		Status:          domain.StatusDelivered,
		AssignedStaffID: ptr(11),
	})

	_, err := f.uc.MarkPackaged(context.Background(), seeded.ID, domain.Actor{ID: 11, Role: domain.RoleStaff}, "")
	var transErr *domain.InvalidTransitionError
	require.ErrorAs(t, err, &transErr)
}
