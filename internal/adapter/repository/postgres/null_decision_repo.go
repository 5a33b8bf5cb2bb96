package postgres

import (
	"context"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// NullDecisionRepository is a no-op decision log used when the service runs
// without a database. Evaluations proceed; nothing is recorded.
type NullDecisionRepository struct{}

// NewNullDecisionRepository creates a new NullDecisionRepository.
func NewNullDecisionRepository() *NullDecisionRepository {
	return &NullDecisionRepository{}
}

func (r *NullDecisionRepository) Create(ctx context.Context, decision *domain.Decision) error {
	return nil
}

func (r *NullDecisionRepository) GetByID(ctx context.Context, id string) (*domain.Decision, error) {
	return nil, domain.ErrDecisionNotFound
}

func (r *NullDecisionRepository) List(ctx context.Context, filter domain.DecisionFilter) ([]*domain.Decision, error) {
	return nil, nil
}
