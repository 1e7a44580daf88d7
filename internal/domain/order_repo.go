package domain

import (
	"context"
	"time"
)

// TransitionUpdate describes one status CAS. From is the status the caller
// read; the update only applies while the row still carries it.
type TransitionUpdate struct {
	From          OrderStatus
	To            OrderStatus
	DeliveredAt   *time.Time
	PaymentStatus *PaymentStatus
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID int64) (*Order, error)
	GetOrderByInvoice(ctx context.Context, invoice string) (*Order, error)

	// ApplyTransition performs the status CAS. A lost race surfaces as
	// ErrConcurrencyConflict; a missing row as ErrOrderNotFound.
	ApplyTransition(ctx context.Context, orderID int64, upd TransitionUpdate) error

	// ClaimAndTransition additionally binds the actor as assignee for its
	// role, in the same atomic update. It only succeeds while the order is
	// unassigned for that role or already assigned to the actor.
	ClaimAndTransition(ctx context.Context, orderID int64, actor Actor, upd TransitionUpdate) error

	// AssignWorker binds a worker. With onlyIfUnassigned the write is a
	// CAS against the unassigned state, used by bulk assignment.
	AssignWorker(ctx context.Context, orderID int64, role ActorRole, workerID int64, onlyIfUnassigned bool) error

	// IncrementPackagedCount atomically bumps packaged_count and returns
	// the new value.
	IncrementPackagedCount(ctx context.Context, orderID int64) (int, error)

	// MarkPaid is a CAS on payment_status used by COD collection.
	MarkPaid(ctx context.Context, orderID int64, from PaymentStatus) error

	GetUnassignedOrders(ctx context.Context, role ActorRole) ([]*Order, error)
	GetOrdersByWorker(ctx context.Context, role ActorRole, workerID int64) ([]*Order, error)
	CountOpenOrdersByWorker(ctx context.Context, role ActorRole, workerID int64) (int64, error)
	CountRecentOrdersByUser(ctx context.Context, userID int64, since time.Time) (int64, error)
}

type WorkerRepository interface {
	GetWorkerByID(ctx context.Context, workerID int64) (*Worker, error)
	FindActiveByRole(ctx context.Context, role ActorRole) ([]*Worker, error)
	FindActiveByRoleAndCity(ctx context.Context, role ActorRole, city string) ([]*Worker, error)
	FindFallbackPool(ctx context.Context, role ActorRole) ([]*Worker, error)
}

type ActivityRepository interface {
	Append(ctx context.Context, activity *OrderActivity) error
	ListByOrderID(ctx context.Context, orderID int64) ([]*OrderActivity, error)
}

type DeliveryAttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *DeliveryAttempt) error
	ListByOrderID(ctx context.Context, orderID int64) ([]*DeliveryAttempt, error)
}

type SettlementRepository interface {
	GetByOrderID(ctx context.Context, orderID int64) (*CODSettlement, error)
	CreateSettlement(ctx context.Context, settlement *CODSettlement) error
	MarkCollected(ctx context.Context, settlementID int64, amount float64, collectedAt time.Time, notes string) error
	ListCollectedByCourier(ctx context.Context, courierID int64) ([]*CODSettlement, error)

	// SettleCourier moves all of the courier's collected settlements into
	// a new batch in one transaction and returns the batch.
	SettleCourier(ctx context.Context, courierID int64) (*SettlementBatch, error)
}
