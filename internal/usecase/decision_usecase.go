package usecase

import (
	"context"
	"time"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// DecisionUseCase records evaluation outcomes and serves the decision log.
// Recording is post-hoc bookkeeping around the evaluator, which itself stays
// a pure decision function.
type DecisionUseCase struct {
	decisionRepo DecisionRepository
	idGen        IDGenerator
}

// NewDecisionUseCase creates a new DecisionUseCase.
func NewDecisionUseCase(decisionRepo DecisionRepository, idGen IDGenerator) *DecisionUseCase {
	return &DecisionUseCase{
		decisionRepo: decisionRepo,
		idGen:        idGen,
	}
}

// RecordDecisionInput represents input for recording a decision.
type RecordDecisionInput struct {
	Proposed    domain.ProposedTransaction
	Result      *domain.EligibilityResult
	RequestID   string
	EvaluatedBy string
}

// Record stores one evaluation outcome in the decision log.
func (uc *DecisionUseCase) Record(ctx context.Context, input RecordDecisionInput) (*domain.Decision, error) {
	decision := &domain.Decision{
		ID:                       uc.idGen.Generate(),
		Kind:                     input.Proposed.Kind,
		SourceAccountNumber:      input.Proposed.SourceAccountNumber,
		DestinationAccountNumber: input.Proposed.DestinationAccountNumber,
		Amount:                   input.Proposed.Amount,
		Currency:                 input.Result.Currency,
		Eligible:                 input.Result.Eligible,
		Reason:                   input.Result.Reason,
		RequestID:                input.RequestID,
		EvaluatedBy:              input.EvaluatedBy,
		CreatedAt:                time.Now().UTC(),
	}

	if input.Result.Detail != nil {
		decision.Limit = input.Result.Detail.Limit
		decision.Remaining = input.Result.Detail.Remaining
	}

	if err := uc.decisionRepo.Create(ctx, decision); err != nil {
		return nil, err
	}

	return decision, nil
}

// GetDecision retrieves a decision by ID.
func (uc *DecisionUseCase) GetDecision(ctx context.Context, id string) (*domain.Decision, error) {
	return uc.decisionRepo.GetByID(ctx, id)
}

// ListDecisionsInput represents input for listing decisions.
type ListDecisionsInput struct {
	AccountNumber string
	Kind          domain.TransactionKind
	RejectedOnly  bool
	Limit         int
	Offset        int
}

// ListDecisions lists decisions with pagination.
func (uc *DecisionUseCase) ListDecisions(ctx context.Context, input ListDecisionsInput) ([]*domain.Decision, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}
	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.decisionRepo.List(ctx, domain.DecisionFilter{
		AccountNumber: input.AccountNumber,
		Kind:          input.Kind,
		RejectedOnly:  input.RejectedOnly,
		Limit:         input.Limit,
		Offset:        input.Offset,
	})
}
