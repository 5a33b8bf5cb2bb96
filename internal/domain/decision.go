package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Decision is an audit record of one eligibility evaluation. It captures the
// proposal and the outcome, never account state; the authoritative ledger
// lives in the account backend.
type Decision struct {
	ID                       string
	Kind                     TransactionKind
	SourceAccountNumber      string
	DestinationAccountNumber string
	Amount                   decimal.Decimal
	Currency                 Currency
	Eligible                 bool
	Reason                   RejectionReason
	Limit                    *decimal.Decimal
	Remaining                *decimal.Decimal
	RequestID                string
	EvaluatedBy              string
	CreatedAt                time.Time
}

// DecisionFilter narrows decision log queries.
type DecisionFilter struct {
	AccountNumber string
	Kind          TransactionKind
	EligibleOnly  bool
	RejectedOnly  bool
	Limit         int
	Offset        int
}
