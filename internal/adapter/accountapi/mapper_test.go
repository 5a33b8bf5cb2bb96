package accountapi

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

func TestDecodeAccountPayload_CurrentShape(t *testing.T) {
	body := []byte(`{
		"accountNumber": "000123456789",
		"currency": "HTG",
		"status": "Active",
		"balance": "1500.50",
		"availableBalance": "1400.00",
		"minimumBalance": "100",
		"limits": {
			"maxBalance": "100000",
			"dailyWithdrawalLimit": "10000",
			"maxWithdrawalAmount": 5000
		}
	}`)

	snapshot, err := decodeAccountPayload(body)
	require.NoError(t, err)

	assert.Equal(t, "000123456789", snapshot.AccountNumber)
	assert.Equal(t, domain.CurrencyHTG, snapshot.Currency)
	assert.Equal(t, domain.StatusActive, snapshot.Status)
	assert.True(t, snapshot.Balance.Equal(decimal.RequireFromString("1500.50")))
	assert.True(t, snapshot.AvailableBalance.Equal(decimal.RequireFromString("1400.00")))
	assert.True(t, snapshot.MinimumBalance.Equal(decimal.RequireFromString("100")))

	require.NotNil(t, snapshot.Limits.MaxBalance)
	assert.True(t, snapshot.Limits.MaxBalance.Equal(decimal.RequireFromString("100000")))
	require.NotNil(t, snapshot.Limits.DailyWithdrawalLimit)
	assert.True(t, snapshot.Limits.DailyWithdrawalLimit.Equal(decimal.RequireFromString("10000")))
	require.NotNil(t, snapshot.Limits.MaxWithdrawalAmount)
	assert.True(t, snapshot.Limits.MaxWithdrawalAmount.Equal(decimal.RequireFromString("5000")))
	assert.Nil(t, snapshot.Limits.MonthlyWithdrawalLimit)
	assert.Nil(t, snapshot.Limits.DailyDepositLimit)
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestDecodeAccountPayload_LegacyShape(t *testing.T) {
	// Older deployments send numeric enum codes, flat limits, and no
	// availableBalance.
	body := []byte(`{
		"accountNumber": "000123456789",
		"currency": 0,
		"status": 0,
		"balance": 2000,
		"dailyWithdrawalLimit": "7500",
		"maxBalance": "50000"
	}`)

	snapshot, err := decodeAccountPayload(body)
	require.NoError(t, err)

	assert.Equal(t, domain.CurrencyHTG, snapshot.Currency)
	assert.Equal(t, domain.StatusActive, snapshot.Status)
	assert.True(t, snapshot.AvailableBalance.Equal(snapshot.Balance),
		"availableBalance should default to balance")
	assert.True(t, snapshot.MinimumBalance.IsZero())

	require.NotNil(t, snapshot.Limits.DailyWithdrawalLimit)
	assert.True(t, snapshot.Limits.DailyWithdrawalLimit.Equal(decimal.RequireFromString("7500")))
	require.NotNil(t, snapshot.Limits.MaxBalance)
}

func TestDecodeAccountPayload_NestedLimitsWinOverFlat(t *testing.T) {
	body := []byte(`{
		"accountNumber": "000123456789",
		"currency": "USD",
		"status": "Active",
		"balance": "100",
		"maxBalance": "1000",
		"limits": {"maxBalance": "2000"}
	}`)

	snapshot, err := decodeAccountPayload(body)
	require.NoError(t, err)
	require.NotNil(t, snapshot.Limits.MaxBalance)
	assert.True(t, snapshot.Limits.MaxBalance.Equal(decimal.RequireFromString("2000")))
}

func TestDecodeAccountPayload_UnparseableLimitsStayUnenforced(t *testing.T) {
	body := []byte(`{
		"accountNumber": "000123456789",
		"currency": "HTG",
		"status": "Active",
		"balance": "100",
		"limits": {
			"maxBalance": "not-a-number",
			"dailyDepositLimit": null,
			"minWithdrawalAmount": ""
		}
	}`)

	snapshot, err := decodeAccountPayload(body)
	require.NoError(t, err)
	assert.Nil(t, snapshot.Limits.MaxBalance)
	assert.Nil(t, snapshot.Limits.DailyDepositLimit)
	assert.Nil(t, snapshot.Limits.MinWithdrawalAmount)
}

func TestDecodeAccountPayload_Malformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `<html>maintenance</html>`},
		{name: "missing account number", body: `{"balance": "100", "currency": "HTG", "status": "Active"}`},
		{name: "missing balance", body: `{"accountNumber": "000123456789", "currency": "HTG", "status": "Active"}`},
		{name: "unparseable balance", body: `{"accountNumber": "000123456789", "balance": "abc"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeAccountPayload([]byte(tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrMalformedAccount), "expected ErrMalformedAccount, got %v", err)
		})
	}
}

func TestDecodeAccountPayload_UnknownStatusPreserved(t *testing.T) {
	body := []byte(`{
		"accountNumber": "000123456789",
		"currency": "HTG",
		"status": "Dormant",
		"balance": "100"
	}`)

	snapshot, err := decodeAccountPayload(body)
	require.NoError(t, err)
	assert.Equal(t, domain.AccountStatus("Dormant"), snapshot.Status)
	assert.False(t, snapshot.Status.IsTransactable())
}
