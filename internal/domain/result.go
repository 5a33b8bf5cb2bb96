package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RejectionReason identifies the first rule a proposed transaction violated.
type RejectionReason string

const (
	// Input rejections: the proposal is structurally wrong and is never
	// sent to the backend.
	ReasonInvalidAccountNumber            RejectionReason = "InvalidAccountNumber"
	ReasonInvalidAmount                   RejectionReason = "InvalidAmount"
	ReasonInvalidDestinationAccountNumber RejectionReason = "InvalidDestinationAccountNumber"
	ReasonSameAccountTransfer             RejectionReason = "SameAccountTransfer"

	// Lookup rejections: a referenced account does not exist.
	ReasonSourceAccountNotFound      RejectionReason = "SourceAccountNotFound"
	ReasonDestinationAccountNotFound RejectionReason = "DestinationAccountNotFound"

	// Status rejections: only Active accounts transact.
	ReasonSourceAccountNotActive      RejectionReason = "SourceAccountNotActive"
	ReasonDestinationAccountNotActive RejectionReason = "DestinationAccountNotActive"

	// Business-rule rejections: the proposal violates a configured limit.
	ReasonCurrencyMismatch               RejectionReason = "CurrencyMismatch"
	ReasonMaxBalanceExceeded             RejectionReason = "MaxBalanceExceeded"
	ReasonDailyDepositLimitExceeded      RejectionReason = "DailyDepositLimitExceeded"
	ReasonInsufficientFunds              RejectionReason = "InsufficientFunds"
	ReasonMaxWithdrawalAmountExceeded    RejectionReason = "MaxWithdrawalAmountExceeded"
	ReasonMinWithdrawalAmountNotMet      RejectionReason = "MinWithdrawalAmountNotMet"
	ReasonDailyWithdrawalLimitExceeded   RejectionReason = "DailyWithdrawalLimitExceeded"
	ReasonMonthlyWithdrawalLimitExceeded RejectionReason = "MonthlyWithdrawalLimitExceeded"
)

// RejectionDetail carries the concrete numbers behind a limit rejection so
// callers can render an exact, actionable message.
type RejectionDetail struct {
	Limit     *decimal.Decimal
	Remaining *decimal.Decimal
}

// EligibilityResult is the outcome of one evaluation: either eligible, or
// rejected with exactly one reason (first violated rule wins).
type EligibilityResult struct {
	Eligible bool
	Reason   RejectionReason
	Detail   *RejectionDetail
	Currency Currency
}

// Accepted builds an eligible result in the given currency.
func Accepted(currency Currency) *EligibilityResult {
	return &EligibilityResult{Eligible: true, Currency: currency}
}

// Rejected builds a rejection without limit detail.
func Rejected(reason RejectionReason, currency Currency) *EligibilityResult {
	return &EligibilityResult{Reason: reason, Currency: currency}
}

// RejectedWithDetail builds a rejection carrying the violated limit and,
// where meaningful, the remaining headroom (floored at zero).
func RejectedWithDetail(reason RejectionReason, currency Currency, limit decimal.Decimal, remaining *decimal.Decimal) *EligibilityResult {
	detail := &RejectionDetail{Limit: &limit}
	if remaining != nil {
		floored := decimal.Max(decimal.Zero, *remaining)
		detail.Remaining = &floored
	}

	return &EligibilityResult{Reason: reason, Detail: detail, Currency: currency}
}

// Message renders the user-facing explanation for the result. Every reason
// has a distinct message; limit rejections include the concrete amounts in
// the account currency.
func (r *EligibilityResult) Message() string {
	if r.Eligible {
		return "transaction is eligible"
	}

	limit := func() string {
		if r.Detail != nil && r.Detail.Limit != nil {
			return r.Currency.Format(*r.Detail.Limit)
		}
		return ""
	}
	remaining := func() string {
		if r.Detail != nil && r.Detail.Remaining != nil {
			return r.Currency.Format(*r.Detail.Remaining)
		}
		return ""
	}

	switch r.Reason {
	case ReasonInvalidAccountNumber:
		return fmt.Sprintf("account number must be exactly %d characters", AccountNumberLength)
	case ReasonInvalidAmount:
		return "amount must be a positive number"
	case ReasonInvalidDestinationAccountNumber:
		return fmt.Sprintf("destination account number must be exactly %d characters", AccountNumberLength)
	case ReasonSameAccountTransfer:
		return "source and destination accounts must differ"
	case ReasonSourceAccountNotFound:
		return "source account not found"
	case ReasonDestinationAccountNotFound:
		return "destination account not found"
	case ReasonSourceAccountNotActive:
		return "source account is not active"
	case ReasonDestinationAccountNotActive:
		return "destination account is not active"
	case ReasonCurrencyMismatch:
		return "accounts and amount must use the same currency"
	case ReasonMaxBalanceExceeded:
		return fmt.Sprintf("deposit would exceed the maximum balance of %s", limit())
	case ReasonDailyDepositLimitExceeded:
		return fmt.Sprintf("daily deposit limit of %s exceeded, %s remaining today", limit(), remaining())
	case ReasonInsufficientFunds:
		return "insufficient available balance for this withdrawal"
	case ReasonMaxWithdrawalAmountExceeded:
		return fmt.Sprintf("maximum withdrawal per transaction is %s", limit())
	case ReasonMinWithdrawalAmountNotMet:
		return fmt.Sprintf("minimum withdrawal per transaction is %s", limit())
	case ReasonDailyWithdrawalLimitExceeded:
		return fmt.Sprintf("daily withdrawal limit of %s exceeded, %s remaining today", limit(), remaining())
	case ReasonMonthlyWithdrawalLimitExceeded:
		return fmt.Sprintf("monthly withdrawal limit of %s exceeded, %s remaining this month", limit(), remaining())
	default:
		return "transaction rejected"
	}
}
