package domain

import (
	"github.com/shopspring/decimal"
)

// ProposedTransaction is a deposit, withdrawal, or transfer a caller intends
// to submit to the account backend. It is never persisted here; it exists
// only for the duration of one eligibility check.
type ProposedTransaction struct {
	Kind                     TransactionKind
	SourceAccountNumber      string
	DestinationAccountNumber string
	Amount                   decimal.Decimal

	// Currency tags the amount. CurrencyUnknown means the caller did not
	// tag it and the amount is in the source account's own currency;
	// builders must reject unrecognized raw values before constructing a
	// proposal rather than leaving this unset.
	Currency Currency
}

// IsTransfer reports whether the proposal moves money between two accounts.
func (p *ProposedTransaction) IsTransfer() bool {
	return p.Kind == KindTransfer
}
