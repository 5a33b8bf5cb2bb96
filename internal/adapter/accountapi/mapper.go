package accountapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// accountPayload mirrors the account service's wire shape. The service has
// drifted over releases: currency and status arrive as names or numeric
// codes, limits arrive nested under "limits" or as legacy flat fields, and
// availableBalance is absent on older deployments.
type accountPayload struct {
	AccountNumber    string         `json:"accountNumber"`
	Currency         any            `json:"currency"`
	Status           any            `json:"status"`
	Balance          *json.Number   `json:"balance"`
	AvailableBalance *json.Number   `json:"availableBalance"`
	MinimumBalance   *json.Number   `json:"minimumBalance"`
	Limits           *limitsPayload `json:"limits"`

	// Legacy flat limit fields, superseded by the nested block.
	MaxBalance             any `json:"maxBalance"`
	MaxWithdrawalAmount    any `json:"maxWithdrawalAmount"`
	MinWithdrawalAmount    any `json:"minWithdrawalAmount"`
	DailyWithdrawalLimit   any `json:"dailyWithdrawalLimit"`
	MonthlyWithdrawalLimit any `json:"monthlyWithdrawalLimit"`
	DailyDepositLimit      any `json:"dailyDepositLimit"`
}

type limitsPayload struct {
	MaxBalance             any `json:"maxBalance"`
	MaxWithdrawalAmount    any `json:"maxWithdrawalAmount"`
	MinWithdrawalAmount    any `json:"minWithdrawalAmount"`
	DailyWithdrawalLimit   any `json:"dailyWithdrawalLimit"`
	MonthlyWithdrawalLimit any `json:"monthlyWithdrawalLimit"`
	DailyDepositLimit      any `json:"dailyDepositLimit"`
}

// decodeAccountPayload parses a snapshot response. Structurally unusable
// responses map to domain.ErrMalformedAccount; snapshots are fail-closed, so
// this aborts the evaluation instead of guessing.
func decodeAccountPayload(body []byte) (*domain.AccountSnapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var payload accountPayload
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedAccount, err)
	}

	if payload.AccountNumber == "" {
		return nil, fmt.Errorf("%w: missing accountNumber", domain.ErrMalformedAccount)
	}
	if payload.Balance == nil {
		return nil, fmt.Errorf("%w: missing balance", domain.ErrMalformedAccount)
	}

	balance, err := decimal.NewFromString(payload.Balance.String())
	if err != nil {
		return nil, fmt.Errorf("%w: parse balance %q: %w", domain.ErrMalformedAccount, payload.Balance, err)
	}

	available := balance
	if payload.AvailableBalance != nil {
		available, err = decimal.NewFromString(payload.AvailableBalance.String())
		if err != nil {
			return nil, fmt.Errorf("%w: parse availableBalance %q: %w", domain.ErrMalformedAccount, payload.AvailableBalance, err)
		}
	}

	minimum := decimal.Zero
	if payload.MinimumBalance != nil {
		minimum, err = decimal.NewFromString(payload.MinimumBalance.String())
		if err != nil {
			return nil, fmt.Errorf("%w: parse minimumBalance %q: %w", domain.ErrMalformedAccount, payload.MinimumBalance, err)
		}
	}

	return &domain.AccountSnapshot{
		AccountNumber:    payload.AccountNumber,
		Currency:         domain.NormalizeCurrency(payload.Currency),
		Balance:          balance,
		AvailableBalance: available,
		MinimumBalance:   minimum,
		Status:           domain.NormalizeAccountStatus(payload.Status),
		Limits:           payload.limits(),
		FetchedAt:        time.Now().UTC(),
	}, nil
}

// limits assembles the limit set, preferring the nested block over the
// legacy flat fields. An absent or unparseable limit stays nil, meaning
// unenforced.
func (p *accountPayload) limits() domain.AccountLimits {
	pick := func(nested, flat any) *decimal.Decimal {
		if d := readLimit(nested); d != nil {
			return d
		}
		return readLimit(flat)
	}

	var nested limitsPayload
	if p.Limits != nil {
		nested = *p.Limits
	}

	return domain.AccountLimits{
		MaxBalance:             pick(nested.MaxBalance, p.MaxBalance),
		MaxWithdrawalAmount:    pick(nested.MaxWithdrawalAmount, p.MaxWithdrawalAmount),
		MinWithdrawalAmount:    pick(nested.MinWithdrawalAmount, p.MinWithdrawalAmount),
		DailyWithdrawalLimit:   pick(nested.DailyWithdrawalLimit, p.DailyWithdrawalLimit),
		MonthlyWithdrawalLimit: pick(nested.MonthlyWithdrawalLimit, p.MonthlyWithdrawalLimit),
		DailyDepositLimit:      pick(nested.DailyDepositLimit, p.DailyDepositLimit),
	}
}

// readLimit parses a limit value that may arrive as a JSON number or a
// numeric string. Anything else yields nil.
func readLimit(raw any) *decimal.Decimal {
	var s string
	switch v := raw.(type) {
	case json.Number:
		s = v.String()
	case string:
		if v == "" {
			return nil
		}
		s = v
	default:
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}
