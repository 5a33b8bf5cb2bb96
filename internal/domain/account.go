package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountNumberLength is the fixed length of externally assigned account numbers.
const AccountNumberLength = 12

// AccountLimits holds the configured transaction limits for an account.
// A nil field means the limit is not enforced. All values are in the
// account's own currency.
type AccountLimits struct {
	DailyDepositLimit      *decimal.Decimal
	DailyWithdrawalLimit   *decimal.Decimal
	MonthlyWithdrawalLimit *decimal.Decimal
	MaxBalance             *decimal.Decimal
	MinWithdrawalAmount    *decimal.Decimal
	MaxWithdrawalAmount    *decimal.Decimal
}

// AccountSnapshot is a point-in-time, read-only view of a savings account as
// returned by the account service. It is fetched fresh for every evaluation
// and never cached or mutated here; the backend stays the system of record.
type AccountSnapshot struct {
	AccountNumber    string
	Currency         Currency
	Balance          decimal.Decimal
	AvailableBalance decimal.Decimal
	MinimumBalance   decimal.Decimal
	Status           AccountStatus
	Limits           AccountLimits
	FetchedAt        time.Time
}

// WithdrawableBalance is the amount that can leave the account without
// breaching the minimum balance floor.
func (a *AccountSnapshot) WithdrawableBalance() decimal.Decimal {
	return a.AvailableBalance.Sub(a.MinimumBalance)
}
