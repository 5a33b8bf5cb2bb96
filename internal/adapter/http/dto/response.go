package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// EvaluationResponse represents an evaluation outcome in API responses.
// Rejections are successful evaluations, not transport errors.
type EvaluationResponse struct {
	DecisionID string           `json:"decision_id,omitempty"`
	Eligible   bool             `json:"eligible"`
	Reason     string           `json:"reason,omitempty"`
	Message    string           `json:"message,omitempty"`
	Limit      *decimal.Decimal `json:"limit,omitempty"`
	Remaining  *decimal.Decimal `json:"remaining,omitempty"`
	Currency   string           `json:"currency,omitempty"`
}

// EvaluationFromDomain converts an eligibility result to a response.
func EvaluationFromDomain(result *domain.EligibilityResult, decisionID string) *EvaluationResponse {
	resp := &EvaluationResponse{
		DecisionID: decisionID,
		Eligible:   result.Eligible,
		Reason:     string(result.Reason),
		Message:    result.Message(),
		Currency:   string(result.Currency),
	}

	if result.Detail != nil {
		resp.Limit = result.Detail.Limit
		resp.Remaining = result.Detail.Remaining
	}

	return resp
}

// AccountResponse represents an account snapshot in API responses.
type AccountResponse struct {
	AccountNumber    string                `json:"account_number"`
	Currency         string                `json:"currency"`
	Balance          decimal.Decimal       `json:"balance"`
	AvailableBalance decimal.Decimal       `json:"available_balance"`
	MinimumBalance   decimal.Decimal       `json:"minimum_balance"`
	Status           string                `json:"status"`
	Limits           AccountLimitsResponse `json:"limits"`
	FetchedAt        time.Time             `json:"fetched_at"`
}

// AccountLimitsResponse represents account limits in API responses. Absent
// limits are omitted.
type AccountLimitsResponse struct {
	DailyDepositLimit      *decimal.Decimal `json:"daily_deposit_limit,omitempty"`
	DailyWithdrawalLimit   *decimal.Decimal `json:"daily_withdrawal_limit,omitempty"`
	MonthlyWithdrawalLimit *decimal.Decimal `json:"monthly_withdrawal_limit,omitempty"`
	MaxBalance             *decimal.Decimal `json:"max_balance,omitempty"`
	MinWithdrawalAmount    *decimal.Decimal `json:"min_withdrawal_amount,omitempty"`
	MaxWithdrawalAmount    *decimal.Decimal `json:"max_withdrawal_amount,omitempty"`
}

// AccountFromDomain converts an account snapshot to a response.
func AccountFromDomain(a *domain.AccountSnapshot) *AccountResponse {
	return &AccountResponse{
		AccountNumber:    a.AccountNumber,
		Currency:         string(a.Currency),
		Balance:          a.Balance,
		AvailableBalance: a.AvailableBalance,
		MinimumBalance:   a.MinimumBalance,
		Status:           string(a.Status),
		Limits: AccountLimitsResponse{
			DailyDepositLimit:      a.Limits.DailyDepositLimit,
			DailyWithdrawalLimit:   a.Limits.DailyWithdrawalLimit,
			MonthlyWithdrawalLimit: a.Limits.MonthlyWithdrawalLimit,
			MaxBalance:             a.Limits.MaxBalance,
			MinWithdrawalAmount:    a.Limits.MinWithdrawalAmount,
			MaxWithdrawalAmount:    a.Limits.MaxWithdrawalAmount,
		},
		FetchedAt: a.FetchedAt,
	}
}

// DecisionResponse represents a recorded decision in API responses.
type DecisionResponse struct {
	ID                       string           `json:"id"`
	Kind                     string           `json:"kind"`
	SourceAccountNumber      string           `json:"source_account_number"`
	DestinationAccountNumber string           `json:"destination_account_number,omitempty"`
	Amount                   decimal.Decimal  `json:"amount"`
	Currency                 string           `json:"currency,omitempty"`
	Eligible                 bool             `json:"eligible"`
	Reason                   string           `json:"reason,omitempty"`
	Limit                    *decimal.Decimal `json:"limit,omitempty"`
	Remaining                *decimal.Decimal `json:"remaining,omitempty"`
	RequestID                string           `json:"request_id,omitempty"`
	EvaluatedBy              string           `json:"evaluated_by,omitempty"`
	CreatedAt                time.Time        `json:"created_at"`
}

// DecisionFromDomain converts a decision to a response.
func DecisionFromDomain(d *domain.Decision) *DecisionResponse {
	return &DecisionResponse{
		ID:                       d.ID,
		Kind:                     string(d.Kind),
		SourceAccountNumber:      d.SourceAccountNumber,
		DestinationAccountNumber: d.DestinationAccountNumber,
		Amount:                   d.Amount,
		Currency:                 string(d.Currency),
		Eligible:                 d.Eligible,
		Reason:                   string(d.Reason),
		Limit:                    d.Limit,
		Remaining:                d.Remaining,
		RequestID:                d.RequestID,
		EvaluatedBy:              d.EvaluatedBy,
		CreatedAt:                d.CreatedAt,
	}
}

// DecisionsFromDomain converts decisions to responses.
func DecisionsFromDomain(decisions []*domain.Decision) []*DecisionResponse {
	result := make([]*DecisionResponse, len(decisions))
	for i, d := range decisions {
		result[i] = DecisionFromDomain(d)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
