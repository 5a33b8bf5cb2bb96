package domain

import (
	"strconv"
	"strings"
)

// AccountStatus is the lifecycle state of a savings account.
type AccountStatus string

const (
	StatusActive    AccountStatus = "Active"
	StatusInactive  AccountStatus = "Inactive"
	StatusClosed    AccountStatus = "Closed"
	StatusSuspended AccountStatus = "Suspended"
)

// IsTransactable reports whether transactions may be evaluated against an
// account in this status. Unrecognized statuses are non-transactable
// (fail-closed): only Active accounts move money.
func (s AccountStatus) IsTransactable() bool {
	return s == StatusActive
}

// NormalizeAccountStatus maps a raw backend status to the canonical enum.
// Numeric codes: 0=Active, 1=Inactive, 2=Closed, 3=Suspended. Strings match
// case-insensitively. Anything else passes through as an opaque label so the
// caller can still display it.
func NormalizeAccountStatus(raw any) AccountStatus {
	switch v := raw.(type) {
	case AccountStatus:
		return v
	case string:
		return normalizeStatusString(v)
	case float64:
		return normalizeStatusNumber(int64(v), strconv.FormatFloat(v, 'f', -1, 64))
	case int:
		return normalizeStatusNumber(int64(v), strconv.Itoa(v))
	case int64:
		return normalizeStatusNumber(v, strconv.FormatInt(v, 10))
	default:
		return ""
	}
}

func normalizeStatusString(s string) AccountStatus {
	trimmed := strings.TrimSpace(s)

	if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return normalizeStatusNumber(n, trimmed)
	}

	switch strings.ToLower(trimmed) {
	case "active":
		return StatusActive
	case "inactive":
		return StatusInactive
	case "closed":
		return StatusClosed
	case "suspended":
		return StatusSuspended
	default:
		return AccountStatus(trimmed)
	}
}

func normalizeStatusNumber(n int64, raw string) AccountStatus {
	switch n {
	case 0:
		return StatusActive
	case 1:
		return StatusInactive
	case 2:
		return StatusClosed
	case 3:
		return StatusSuspended
	default:
		return AccountStatus(raw)
	}
}
