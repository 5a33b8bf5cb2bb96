package domain

import (
	"strconv"
	"strings"
)

// TransactionKind is the canonical type of a savings transaction.
type TransactionKind string

const (
	KindDeposit        TransactionKind = "Deposit"
	KindWithdrawal     TransactionKind = "Withdrawal"
	KindInterest       TransactionKind = "Interest"
	KindOpeningDeposit TransactionKind = "OpeningDeposit"
	KindTransfer       TransactionKind = "Transfer"
)

// IsEvaluable reports whether eligibility rules exist for this kind.
// Interest and opening deposits are posted by the backend, never proposed.
func (k TransactionKind) IsEvaluable() bool {
	return k == KindDeposit || k == KindWithdrawal || k == KindTransfer
}

// NormalizeTransactionKind maps a raw backend transaction type to the
// canonical enum. Numeric codes: 0=Deposit, 1=Withdrawal, 2=Interest,
// 3=OpeningDeposit, 4=Transfer. Strings match case- and
// whitespace-insensitively. Unrecognized values pass through unchanged;
// they are display-only and never reach the eligibility rules.
func NormalizeTransactionKind(raw any) TransactionKind {
	switch v := raw.(type) {
	case TransactionKind:
		return v
	case string:
		return normalizeKindString(v)
	case float64:
		return normalizeKindNumber(int64(v), strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return normalizeKindNumber(int64(v), strconv.Itoa(v))
	case int64:
		return normalizeKindNumber(v, strconv.FormatInt(v, 10))
	default:
		return ""
	}
}

func normalizeKindString(s string) TransactionKind {
	trimmed := strings.TrimSpace(s)

	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return normalizeKindNumber(n, trimmed)
	}

	switch strings.ToLower(strings.ReplaceAll(trimmed, " ", "")) {
	case "deposit":
		return KindDeposit
	case "withdrawal":
		return KindWithdrawal
	case "interest":
		return KindInterest
	case "openingdeposit":
		return KindOpeningDeposit
	case "transfer":
		return KindTransfer
	default:
		return TransactionKind(trimmed)
	}
}

func normalizeKindNumber(n int64, raw string) TransactionKind {
	switch n {
	case 0:
		return KindDeposit
	case 1:
		return KindWithdrawal
	case 2:
		return KindInterest
	case 3:
		return KindOpeningDeposit
	case 4:
		return KindTransfer
	default:
		return TransactionKind(raw)
	}
}

// AggregatePeriod selects the window for a posted-transaction total.
type AggregatePeriod string

const (
	PeriodDay   AggregatePeriod = "day"
	PeriodMonth AggregatePeriod = "month"
)
