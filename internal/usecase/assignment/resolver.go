package assignment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
)

// WorkloadCounter is the slice of order storage the resolver needs to
// rank candidates.
type WorkloadCounter interface {
	CountOpenOrdersByWorker(ctx context.Context, role domain.ActorRole, workerID int64) (int64, error)
}

// Resolver picks the worker for an order: exact city match first, then the
// fallback pool. Ties break by open workload, fewest open orders wins.
type Resolver struct {
	workers domain.WorkerRepository
	orders  WorkloadCounter
	log     *slog.Logger
}

func NewResolver(workers domain.WorkerRepository, orders WorkloadCounter, log *slog.Logger) *Resolver {
	return &Resolver{workers: workers, orders: orders, log: log}
}

func normalizeCity(city string) string {
	return strings.ToLower(strings.TrimSpace(city))
}

// Resolve returns the best worker of the role for the given delivery city.
// It returns domain.ErrNoEligibleWorker when neither the city pool nor the
// fallback pool has an active worker.
func (r *Resolver) Resolve(ctx context.Context, role domain.ActorRole, city string) (*domain.Worker, error) {
	pool := []*domain.Worker{}

	if normalized := normalizeCity(city); normalized != "" {
		matched, err := r.workers.FindActiveByRoleAndCity(ctx, role, normalized)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "assignment.FindActiveByRoleAndCity", Err: err}
		}
		pool = matched
	}

	if len(pool) == 0 {
		fallback, err := r.workers.FindFallbackPool(ctx, role)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "assignment.FindFallbackPool", Err: err}
		}
		pool = fallback
		if len(pool) > 0 {
			r.log.Debug("assignment falling back to default pool", "role", role, "city", city)
		}
	}

	if len(pool) == 0 {
		return nil, domain.ErrNoEligibleWorker
	}

	return r.leastLoaded(ctx, role, pool)
}

func (r *Resolver) leastLoaded(ctx context.Context, role domain.ActorRole, pool []*domain.Worker) (*domain.Worker, error) {
	var best *domain.Worker
	var bestLoad int64

	for _, worker := range pool {
		load, err := r.orders.CountOpenOrdersByWorker(ctx, role, worker.ID)
		if err != nil {
			return nil, &domain.PersistenceError{Op: "assignment.CountOpenOrdersByWorker", Err: err}
		}
		if best == nil || load < bestLoad {
			best = worker
			bestLoad = load
		}
	}

	return best, nil
}
