package dto

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// EvaluateRequest represents a request to evaluate a proposed transaction.
// Kind and currency are accepted as names or the backend's numeric enum codes;
// teller frontends are not consistent about which they send.
type EvaluateRequest struct {
	Kind                     any             `json:"kind"`
	SourceAccountNumber      string          `json:"source_account_number"`
	DestinationAccountNumber string          `json:"destination_account_number,omitempty"`
	Amount                   decimal.Decimal `json:"amount"`
	Currency                 any             `json:"currency,omitempty"`
}

// ToProposed converts to the domain proposal, normalizing enum fields. An
// omitted currency means "the source account's own currency"; a currency that
// is present but unrecognized is a data error, never a default.
func (r *EvaluateRequest) ToProposed() (domain.ProposedTransaction, error) {
	p := domain.ProposedTransaction{
		Kind:                     domain.NormalizeTransactionKind(r.Kind),
		SourceAccountNumber:      r.SourceAccountNumber,
		DestinationAccountNumber: r.DestinationAccountNumber,
		Amount:                   r.Amount,
	}

	if r.Currency != nil {
		p.Currency = domain.NormalizeCurrency(r.Currency)
		if !p.Currency.IsValid() {
			return domain.ProposedTransaction{}, fmt.Errorf("unrecognized currency %v", r.Currency)
		}
	}

	return p, nil
}
