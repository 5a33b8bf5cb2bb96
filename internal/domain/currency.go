package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is a canonical currency code for savings accounts.
type Currency string

const (
	CurrencyHTG Currency = "HTG"
	CurrencyUSD Currency = "USD"

	// CurrencyUnknown marks a raw value that could not be normalized.
	// Callers must treat it as a data error, never as a default.
	CurrencyUnknown Currency = ""
)

// IsValid reports whether the currency is one of the canonical codes.
func (c Currency) IsValid() bool {
	return c == CurrencyHTG || c == CurrencyUSD
}

// Format renders an amount with two decimal places and the currency code,
// e.g. "1500.00 HTG". Used for user-facing rejection messages.
func (c Currency) Format(amount decimal.Decimal) string {
	return amount.StringFixed(2) + " " + string(c)
}

// NormalizeCurrency maps a raw backend representation to a canonical currency.
// The account service emits either the ISO code or a numeric code (0=HTG, 1=USD),
// as a string or a JSON number.
func NormalizeCurrency(raw any) Currency {
	switch v := raw.(type) {
	case Currency:
		if v.IsValid() {
			return v
		}
		return CurrencyUnknown
	case string:
		return normalizeCurrencyString(v)
	case float64:
		return normalizeCurrencyNumber(int64(v))
	case int:
		return normalizeCurrencyNumber(int64(v))
	case int64:
		return normalizeCurrencyNumber(v)
	default:
		return CurrencyUnknown
	}
}

func normalizeCurrencyString(s string) Currency {
	s = strings.TrimSpace(s)

	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return normalizeCurrencyNumber(n)
	}

	switch strings.ToUpper(s) {
	case "HTG":
		return CurrencyHTG
	case "USD":
		return CurrencyUSD
	default:
		return CurrencyUnknown
	}
}

func normalizeCurrencyNumber(n int64) Currency {
	switch n {
	case 0:
		return CurrencyHTG
	case 1:
		return CurrencyUSD
	default:
		return CurrencyUnknown
	}
}
