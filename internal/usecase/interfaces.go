package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// AccountReader fetches account snapshots from the remote account service.
// A failed lookup for a missing account returns domain.ErrAccountNotFound;
// any other failure is fatal to the evaluation (fail-closed).
type AccountReader interface {
	GetByNumber(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error)
}

// AggregateReader fetches the running total of a transaction kind already
// posted against an account for the given period. When the total cannot be
// computed it returns domain.ErrAggregateUnavailable; the evaluator treats
// that as "limit unknown, skip the check" (fail-open), trusting the backend
// to enforce the limit at commit time.
type AggregateReader interface {
	Total(ctx context.Context, accountNumber string, kind domain.TransactionKind, period domain.AggregatePeriod, referenceDate time.Time) (decimal.Decimal, error)
}

// DecisionRepository persists the evaluation audit log.
type DecisionRepository interface {
	Create(ctx context.Context, decision *domain.Decision) error
	GetByID(ctx context.Context, id string) (*domain.Decision, error)
	List(ctx context.Context, filter domain.DecisionFilter) ([]*domain.Decision, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
