package postgres

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// DecisionRepository implements usecase.DecisionRepository backed by
// PostgreSQL. The decision log is append-only.
type DecisionRepository struct {
	pool *pgxpool.Pool
}

// NewDecisionRepository creates a new DecisionRepository.
func NewDecisionRepository(pool *pgxpool.Pool) *DecisionRepository {
	return &DecisionRepository{pool: pool}
}

// Create inserts one decision record.
func (r *DecisionRepository) Create(ctx context.Context, decision *domain.Decision) error {
	if decision.ID == "" {
		decision.ID = uuid.New().String()
	}

	query := `
		INSERT INTO eligibility_decisions (
			id, kind, source_account_number, destination_account_number,
			amount, currency, eligible, reason, limit_value, remaining,
			request_id, evaluated_by, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		decision.ID,
		decision.Kind,
		decision.SourceAccountNumber,
		nullableString(decision.DestinationAccountNumber),
		decision.Amount,
		decision.Currency,
		decision.Eligible,
		nullableString(string(decision.Reason)),
		decision.Limit,
		decision.Remaining,
		nullableString(decision.RequestID),
		nullableString(decision.EvaluatedBy),
		decision.CreatedAt,
	)

	return err
}

// GetByID retrieves one decision.
func (r *DecisionRepository) GetByID(ctx context.Context, id string) (*domain.Decision, error) {
	query := `
		SELECT id, kind, source_account_number, destination_account_number,
		       amount, currency, eligible, reason, limit_value, remaining,
		       request_id, evaluated_by, created_at
		FROM eligibility_decisions
		WHERE id = $1
	`

	decision, err := scanDecision(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDecisionNotFound
		}
		return nil, err
	}

	return decision, nil
}

// List retrieves decisions matching the filter, newest first.
func (r *DecisionRepository) List(ctx context.Context, filter domain.DecisionFilter) ([]*domain.Decision, error) {
	query := `
		SELECT id, kind, source_account_number, destination_account_number,
		       amount, currency, eligible, reason, limit_value, remaining,
		       request_id, evaluated_by, created_at
		FROM eligibility_decisions
		WHERE 1=1
	`
	args := []any{}
	argPos := 1

	next := func() string {
		placeholder := "$" + strconv.Itoa(argPos)
		argPos++
		return placeholder
	}

	if filter.AccountNumber != "" {
		p := next()
		query += ` AND (source_account_number = ` + p + ` OR destination_account_number = ` + p + `)`
		args = append(args, filter.AccountNumber)
	}

	if filter.Kind != "" {
		query += ` AND kind = ` + next()
		args = append(args, filter.Kind)
	}

	if filter.RejectedOnly {
		query += ` AND eligible = FALSE`
	} else if filter.EligibleOnly {
		query += ` AND eligible = TRUE`
	}

	query += ` ORDER BY created_at DESC`

	if filter.Limit > 0 {
		query += ` LIMIT ` + next()
		args = append(args, filter.Limit)
	}

	if filter.Offset > 0 {
		query += ` OFFSET ` + next()
		args = append(args, filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var decisions []*domain.Decision
	for rows.Next() {
		decision, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		decisions = append(decisions, decision)
	}

	return decisions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDecision(row rowScanner) (*domain.Decision, error) {
	var (
		decision    domain.Decision
		destination *string
		reason      *string
		requestID   *string
		evaluatedBy *string
	)

	err := row.Scan(
		&decision.ID,
		&decision.Kind,
		&decision.SourceAccountNumber,
		&destination,
		&decision.Amount,
		&decision.Currency,
		&decision.Eligible,
		&reason,
		&decision.Limit,
		&decision.Remaining,
		&requestID,
		&evaluatedBy,
		&decision.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if destination != nil {
		decision.DestinationAccountNumber = *destination
	}
	if reason != nil {
		decision.Reason = domain.RejectionReason(*reason)
	}
	if requestID != nil {
		decision.RequestID = *requestID
	}
	if evaluatedBy != nil {
		decision.EvaluatedBy = *evaluatedBy
	}

	return &decision, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
