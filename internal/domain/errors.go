package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrWorkerNotFound = errors.New("worker not found")
	ErrMissingProof   = errors.New("delivery proof reference is required")

	// ErrConcurrencyConflict signals a lost compare-and-set race on an
	// order row. The operation is safe to retry once against the fresh
	// order state.
	ErrConcurrencyConflict = errors.New("order was modified concurrently")

	ErrNoEligibleWorker   = errors.New("no eligible worker for assignment")
	ErrSettlementNotFound = errors.New("cod settlement not found")
)

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Message
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
}

type AuthorizationError struct {
	Actor  Actor
	Action string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("%s is not permitted to %s", e.Actor.Ref(), e.Action)
}

type InvalidTransitionError struct {
	Current   OrderStatus
	Requested OrderStatus
	Role      ActorRole
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition %s -> %s for role %s", e.Current, e.Requested, e.Role)
}

type FraudBlockedError struct {
	TraceID    string
	Score      int
	Indicators []string
}

func (e *FraudBlockedError) Error() string {
	return fmt.Sprintf("blocked by fraud gate: score=%d indicators=[%s] trace_id=%s",
		e.Score, strings.Join(e.Indicators, ","), e.TraceID)
}

type DuplicateSubmissionError struct {
	UserID  int64
	OrderID int64
	Amount  float64
}

func (e *DuplicateSubmissionError) Error() string {
	return fmt.Sprintf("duplicate submission for user=%d order=%d amount=%.2f", e.UserID, e.OrderID, e.Amount)
}

type RateLimitedError struct {
	Key string
}

func (e *RateLimitedError) Error() string {
	return "rate limit exceeded for key " + e.Key
}

// PersistenceError wraps storage failures so callers can distinguish them
// from domain rejections. It is surfaced, never auto-retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
