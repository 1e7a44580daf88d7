package fraud

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/LavaJover/shvark-fulfillment-service/internal/domain"
	"github.com/google/uuid"
)

// Policy carries the gate thresholds. Zero values are never used directly,
// construct with DefaultPolicy and override from config.
type Policy struct {
	Enforce bool

	HighAmountThreshold  float64
	CODCeiling           float64
	BlockScore           int
	MaxOrdersPerWindow   int64
	OrderWindow          time.Duration
	MaxAttemptsPerMinute int64
	VelocityPerMinute    int64
	DuplicateWindow      time.Duration
	MaxIPUsers           int64
}

func DefaultPolicy() Policy {
	return Policy{
		Enforce:              true,
		HighAmountThreshold:  100000,
		CODCeiling:           50000,
		BlockScore:           50,
		MaxOrdersPerWindow:   10,
		OrderWindow:          5 * time.Minute,
		MaxAttemptsPerMinute: 20,
		VelocityPerMinute:    10,
		DuplicateWindow:      5 * time.Minute,
		MaxIPUsers:           3,
	}
}

// OrderCounter is the slice of order storage the gate needs.
type OrderCounter interface {
	CountRecentOrdersByUser(ctx context.Context, userID int64, since time.Time) (int64, error)
}

type Gate struct {
	repo   domain.FraudRepository
	orders OrderCounter
	policy Policy
	log    *slog.Logger
}

func NewGate(repo domain.FraudRepository, orders OrderCounter, policy Policy, log *slog.Logger) *Gate {
	return &Gate{repo: repo, orders: orders, policy: policy, log: log}
}

func attemptKey(userID int64) string {
	return fmt.Sprintf("payment_%d", userID)
}

// Screen runs the full gate pipeline. The assessment is persisted whatever
// the decision; rejections are only returned as errors while enforcement
// is on. The returned assessment is non-nil on every non-storage error.
func (g *Gate) Screen(ctx context.Context, input domain.OrderRiskInput) (*domain.FraudAssessment, error) {
	now := time.Now()
	key := attemptKey(input.UserID)

	attempts, err := g.repo.CountAttemptsByKey(ctx, key, now.Add(-time.Minute))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fraud.CountAttemptsByKey", Err: err}
	}
	if attempts >= g.policy.MaxAttemptsPerMinute {
		g.log.Warn("fraud gate rate limit hit", "key", key, "attempts", attempts)
		if g.policy.Enforce {
			return nil, &domain.RateLimitedError{Key: key}
		}
	}

	dups, err := g.repo.CountDuplicates(ctx, input.UserID, input.OrderID, input.Amount, now.Add(-g.policy.DuplicateWindow))
	if err != nil {
		return nil, &domain.PersistenceError{Op: "fraud.CountDuplicates", Err: err}
	}
	if dups > 0 {
		g.log.Warn("fraud gate duplicate submission",
			"user_id", input.UserID,
			"order_id", input.OrderID,
			"amount", input.Amount,
			"duplicates", dups,
		)
		if g.policy.Enforce {
			return nil, &domain.DuplicateSubmissionError{
				UserID:  input.UserID,
				OrderID: input.OrderID,
				Amount:  input.Amount,
			}
		}
	}

	score, indicators, err := g.scoreOrder(ctx, input, now)
	if err != nil {
		return nil, err
	}

	assessment := &domain.FraudAssessment{
		TraceID:    uuid.New().String(),
		UserID:     input.UserID,
		OrderID:    input.OrderID,
		Amount:     input.Amount,
		Score:      score,
		Indicators: indicators,
		Decision:   domain.FraudPass,
		Enforced:   g.policy.Enforce,
		IP:         input.IP,
		CreatedAt:  now,
	}
	if score >= g.policy.BlockScore {
		assessment.Decision = domain.FraudBlock
	}

	if err := g.repo.SaveAssessment(ctx, assessment); err != nil {
		return nil, &domain.PersistenceError{Op: "fraud.SaveAssessment", Err: err}
	}
	if err := g.repo.RecordAttempt(ctx, &domain.FraudAttempt{
		Key:       key,
		UserID:    input.UserID,
		OrderID:   input.OrderID,
		Amount:    input.Amount,
		IP:        input.IP,
		CreatedAt: now,
	}); err != nil {
		return nil, &domain.PersistenceError{Op: "fraud.RecordAttempt", Err: err}
	}

	if assessment.Decision == domain.FraudBlock {
		g.log.Warn("fraud gate blocked order",
			"trace_id", assessment.TraceID,
			"user_id", input.UserID,
			"score", score,
			"indicators", indicators,
			"enforced", g.policy.Enforce,
		)
		if g.policy.Enforce {
			return assessment, &domain.FraudBlockedError{
				TraceID:    assessment.TraceID,
				Score:      score,
				Indicators: indicators,
			}
		}
	}

	return assessment, nil
}

func (g *Gate) scoreOrder(ctx context.Context, input domain.OrderRiskInput, now time.Time) (int, []string, error) {
	score := 0
	indicators := []string{}

	if input.Amount > g.policy.HighAmountThreshold {
		score += 30
		indicators = append(indicators, domain.IndicatorHighAmount)
	}

	recent, err := g.orders.CountRecentOrdersByUser(ctx, input.UserID, now.Add(-g.policy.OrderWindow))
	if err != nil {
		return 0, nil, &domain.PersistenceError{Op: "fraud.CountRecentOrdersByUser", Err: err}
	}
	if recent > g.policy.MaxOrdersPerWindow {
		score += 25
		indicators = append(indicators, domain.IndicatorOrderVelocity)
	}

	if input.IP != "" {
		users, err := g.repo.CountDistinctUsersByIP(ctx, input.IP, input.UserID, now.Add(-time.Hour))
		if err != nil {
			return 0, nil, &domain.PersistenceError{Op: "fraud.CountDistinctUsersByIP", Err: err}
		}
		if users > g.policy.MaxIPUsers {
			score += 20
			indicators = append(indicators, domain.IndicatorSuspiciousIP)
		}
	}

	for _, qty := range input.ItemQuantities {
		if qty > 100 {
			score += 15
			indicators = append(indicators, domain.IndicatorUnusualQuantity)
			break
		}
	}

	if input.PaymentMethod == domain.PaymentMethodCOD && input.Amount > g.policy.CODCeiling {
		score += 20
		indicators = append(indicators, domain.IndicatorHighCODAmount)
	}

	perMinute, err := g.repo.CountAttemptsByUser(ctx, input.UserID, now.Add(-time.Minute))
	if err != nil {
		return 0, nil, &domain.PersistenceError{Op: "fraud.CountAttemptsByUser", Err: err}
	}
	if perMinute > g.policy.VelocityPerMinute {
		score += 25
		indicators = append(indicators, domain.IndicatorVelocityAbuse)
	}

	return score, indicators, nil
}
