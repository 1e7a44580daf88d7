package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/LavaJover/shvark-fulfillment-service/internal/usecase/assignment"
	usecase "github.com/LavaJover/shvark-fulfillment-service/internal/usecase/order"
)

type memOrderRepo struct {
	mu     sync.Mutex
	nextID int64
	orders map[int64]*domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{orders: map[int64]*domain.Order{}}
}

func copyOrder(order *domain.Order) *domain.Order {
	clone := *order
	return &clone
}

func (r *memOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *memOrderRepo) GetOrderByID(ctx context.Context, orderID int64) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *memOrderRepo) GetOrderByInvoice(ctx context.Context, invoice string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.Invoice == invoice {
			return copyOrder(order), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *memOrderRepo) assignee(order *domain.Order, role domain.ActorRole) **int64 {
	if role == domain.RoleStaff {
		return &order.AssignedStaffID
	}
	return &order.AssignedCourierID
}

func (r *memOrderRepo) apply(order *domain.Order, upd domain.TransitionUpdate) {
	order.Status = upd.To
	order.UpdatedAt = time.Now()
	if upd.DeliveredAt != nil {
		order.DeliveredAt = upd.DeliveredAt
	}
	if upd.PaymentStatus != nil {
		order.PaymentStatus = *upd.PaymentStatus
	}
}

func (r *memOrderRepo) ApplyTransition(ctx context.Context, orderID int64, upd domain.TransitionUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if order.Status != upd.From {
		return domain.ErrConcurrencyConflict
	}
	r.apply(order, upd)
	return nil
}

func (r *memOrderRepo) ClaimAndTransition(ctx context.Context, orderID int64, actor domain.Actor, upd domain.TransitionUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	slot := r.assignee(order, actor.Role)
	if order.Status != upd.From || (*slot != nil && **slot != actor.ID) {
		return domain.ErrConcurrencyConflict
	}
	id := actor.ID
	*slot = &id
	r.apply(order, upd)
	return nil
}

func (r *memOrderRepo) AssignWorker(ctx context.Context, orderID int64, role domain.ActorRole, workerID int64, onlyIfUnassigned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	slot := r.assignee(order, role)
	if onlyIfUnassigned && *slot != nil {
		return domain.ErrConcurrencyConflict
	}
	id := workerID
	*slot = &id
	order.UpdatedAt = time.Now()
	return nil
}

func (r *memOrderRepo) IncrementPackagedCount(ctx context.Context, orderID int64) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return 0, domain.ErrOrderNotFound
	}
	order.PackagedCount++
	return order.PackagedCount, nil
}

func (r *memOrderRepo) MarkPaid(ctx context.Context, orderID int64, from domain.PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if order.PaymentStatus != from {
		return domain.ErrConcurrencyConflict
	}
	order.PaymentStatus = domain.PaymentPaid
	return nil
}

func (r *memOrderRepo) GetUnassignedOrders(ctx context.Context, role domain.ActorRole) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, order := range r.orders {
		if *r.assignee(order, role) == nil && !order.Status.Terminal() {
			out = append(out, copyOrder(order))
		}
	}
	return out, nil
}

func (r *memOrderRepo) GetOrdersByWorker(ctx context.Context, role domain.ActorRole, workerID int64) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Order
	for _, order := range r.orders {
		slot := r.assignee(order, role)
		if *slot != nil && **slot == workerID {
			out = append(out, copyOrder(order))
		}
	}
	return out, nil
}

func (r *memOrderRepo) CountOpenOrdersByWorker(ctx context.Context, role domain.ActorRole, workerID int64) (int64, error) {
	orders, err := r.GetOrdersByWorker(ctx, role, workerID)
	if err != nil {
		return 0, err
	}
	var count int64
	for _, order := range orders {
		if !order.Status.Terminal() {
			count++
		}
	}
	return count, nil
}

func (r *memOrderRepo) CountRecentOrdersByUser(ctx context.Context, userID int64, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, order := range r.orders {
		if order.UserID == userID && !order.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

// seed stores an order directly, bypassing the fraud gate.
func (r *memOrderRepo) seed(order *domain.Order) *domain.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	order.ID = r.nextID
	if order.Invoice == "" {
		order.Invoice = "INV" + time.Now().Format("150405.000")
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders[order.ID] = copyOrder(order)
	return copyOrder(order)
}

type memWorkerRepo struct {
	workers map[int64]*domain.Worker
}

func newMemWorkerRepo(workers ...*domain.Worker) *memWorkerRepo {
	repo := &memWorkerRepo{workers: map[int64]*domain.Worker{}}
	for _, worker := range workers {
		repo.workers[worker.ID] = worker
	}
	return repo
}

func (r *memWorkerRepo) GetWorkerByID(ctx context.Context, workerID int64) (*domain.Worker, error) {
	worker, ok := r.workers[workerID]
	if !ok {
		return nil, domain.ErrWorkerNotFound
	}
	return worker, nil
}

func (r *memWorkerRepo) list(filter func(*domain.Worker) bool) []*domain.Worker {
	var out []*domain.Worker
	for _, worker := range r.workers {
		if worker.Active && filter(worker) {
			out = append(out, worker)
		}
	}
	return out
}

func (r *memWorkerRepo) FindActiveByRole(ctx context.Context, role domain.ActorRole) ([]*domain.Worker, error) {
	return r.list(func(w *domain.Worker) bool { return w.Role == role }), nil
}

func (r *memWorkerRepo) FindActiveByRoleAndCity(ctx context.Context, role domain.ActorRole, city string) ([]*domain.Worker, error) {
	return r.list(func(w *domain.Worker) bool { return w.Role == role && w.City == city }), nil
}

func (r *memWorkerRepo) FindFallbackPool(ctx context.Context, role domain.ActorRole) ([]*domain.Worker, error) {
	return r.list(func(w *domain.Worker) bool { return w.Role == role && w.FallbackPool }), nil
}

type memActivityRepo struct {
	mu         sync.Mutex
	nextID     int64
	activities []*domain.OrderActivity
}

func (r *memActivityRepo) Append(ctx context.Context, activity *domain.OrderActivity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	activity.ID = r.nextID
	r.activities = append(r.activities, activity)
	return nil
}

func (r *memActivityRepo) ListByOrderID(ctx context.Context, orderID int64) ([]*domain.OrderActivity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.OrderActivity
	for _, activity := range r.activities {
		if activity.OrderID == orderID {
			out = append(out, activity)
		}
	}
	return out, nil
}

func (r *memActivityRepo) actions(orderID int64) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, activity := range r.activities {
		if activity.OrderID == orderID {
			out = append(out, activity.Action)
		}
	}
	return out
}

type memAttemptRepo struct {
	mu       sync.Mutex
	nextID   int64
	attempts []*domain.DeliveryAttempt
}

func (r *memAttemptRepo) CreateAttempt(ctx context.Context, attempt *domain.DeliveryAttempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	attempt.ID = r.nextID
	r.attempts = append(r.attempts, attempt)
	return nil
}

func (r *memAttemptRepo) ListByOrderID(ctx context.Context, orderID int64) ([]*domain.DeliveryAttempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.DeliveryAttempt
	for _, attempt := range r.attempts {
		if attempt.OrderID == orderID {
			out = append(out, attempt)
		}
	}
	return out, nil
}

type memSettlementRepo struct {
	mu          sync.Mutex
	nextID      int64
	nextBatchID int64
	settlements map[int64]*domain.CODSettlement
}

func newMemSettlementRepo() *memSettlementRepo {
	return &memSettlementRepo{settlements: map[int64]*domain.CODSettlement{}}
}

func (r *memSettlementRepo) GetByOrderID(ctx context.Context, orderID int64) (*domain.CODSettlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, settlement := range r.settlements {
		if settlement.OrderID == orderID {
			clone := *settlement
			return &clone, nil
		}
	}
	return nil, domain.ErrSettlementNotFound
}

func (r *memSettlementRepo) CreateSettlement(ctx context.Context, settlement *domain.CODSettlement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	settlement.ID = r.nextID
	clone := *settlement
	r.settlements[settlement.ID] = &clone
	return nil
}

func (r *memSettlementRepo) MarkCollected(ctx context.Context, settlementID int64, amount float64, collectedAt time.Time, notes string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	settlement, ok := r.settlements[settlementID]
	if !ok || settlement.Status == domain.SettlementSettled {
		return domain.ErrSettlementNotFound
	}
	settlement.Status = domain.SettlementCollected
	settlement.CollectedAmount = amount
	settlement.CollectedAt = &collectedAt
	settlement.Notes = notes
	return nil
}

func (r *memSettlementRepo) ListCollectedByCourier(ctx context.Context, courierID int64) ([]*domain.CODSettlement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CODSettlement
	for _, settlement := range r.settlements {
		if settlement.CourierID == courierID && settlement.Status == domain.SettlementCollected {
			clone := *settlement
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memSettlementRepo) SettleCourier(ctx context.Context, courierID int64) (*domain.SettlementBatch, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextBatchID++
	batch := &domain.SettlementBatch{
		ID:        r.nextBatchID,
		CourierID: courierID,
		CreatedAt: time.Now(),
	}
	for _, settlement := range r.settlements {
		if settlement.CourierID == courierID && settlement.Status == domain.SettlementCollected {
			settlement.Status = domain.SettlementSettled
			settlement.SettlementBatchID = &batch.ID
			batch.TotalAmount += settlement.CollectedAmount
			batch.OrderCount++
		}
	}
	if batch.OrderCount == 0 {
		return nil, domain.ErrSettlementNotFound
	}
	return batch, nil
}

type passGate struct {
	err        error
	assessment *domain.FraudAssessment
}

func (g *passGate) Screen(ctx context.Context, input domain.OrderRiskInput) (*domain.FraudAssessment, error) {
	if g.err != nil {
		return g.assessment, g.err
	}
	if g.assessment != nil {
		return g.assessment, nil
	}
	return &domain.FraudAssessment{
		TraceID:  "trace-test",
		UserID:   input.UserID,
		Amount:   input.Amount,
		Decision: domain.FraudPass,
	}, nil
}

type memPublisher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
}

func (p *memPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

type fixture struct {
	uc          *usecase.DefaultOrderUsecase
	orders      *memOrderRepo
	workers     *memWorkerRepo
	activities  *memActivityRepo
	attempts    *memAttemptRepo
	settlements *memSettlementRepo
	gate        *passGate
	publisher   *memPublisher
}

func newFixture(workers ...*domain.Worker) *fixture {
	f := &fixture{
		orders:      newMemOrderRepo(),
		workers:     newMemWorkerRepo(workers...),
		activities:  &memActivityRepo{},
		attempts:    &memAttemptRepo{},
		settlements: newMemSettlementRepo(),
		gate:        &passGate{},
		publisher:   &memPublisher{},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := assignment.NewResolver(f.workers, f.orders, log)
	f.uc = usecase.NewDefaultOrderUsecase(
		f.orders, f.workers, f.activities, f.attempts, f.settlements,
		f.gate, resolver, f.publisher, nil, nil, nil, log,
	)
	return f
}
