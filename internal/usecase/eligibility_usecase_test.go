package usecase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kesbank/savings-eligibility/internal/domain"
	"github.com/kesbank/savings-eligibility/internal/usecase"
	"github.com/kesbank/savings-eligibility/internal/usecase/mocks"
)

const (
	srcNumber  = "000123456789"
	destNumber = "000987654321"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func activeAccount(number string, currency domain.Currency, balance string) *domain.AccountSnapshot {
	return &domain.AccountSnapshot{
		AccountNumber:    number,
		Currency:         currency,
		Balance:          dec(balance),
		AvailableBalance: dec(balance),
		MinimumBalance:   decimal.Zero,
		Status:           domain.StatusActive,
		FetchedAt:        time.Now().UTC(),
	}
}

func TestEvaluate_Preconditions(t *testing.T) {
	tests := []struct {
		name       string
		proposed   domain.ProposedTransaction
		wantReason domain.RejectionReason
	}{
		{
			name: "source account number too short",
			proposed: domain.ProposedTransaction{
				Kind:                domain.KindDeposit,
				SourceAccountNumber: "12345",
				Amount:              dec("100"),
			},
			wantReason: domain.ReasonInvalidAccountNumber,
		},
		{
			name: "zero amount",
			proposed: domain.ProposedTransaction{
				Kind:                domain.KindDeposit,
				SourceAccountNumber: srcNumber,
				Amount:              decimal.Zero,
			},
			wantReason: domain.ReasonInvalidAmount,
		},
		{
			name: "negative amount",
			proposed: domain.ProposedTransaction{
				Kind:                domain.KindWithdrawal,
				SourceAccountNumber: srcNumber,
				Amount:              dec("-5"),
			},
			wantReason: domain.ReasonInvalidAmount,
		},
		{
			name: "transfer destination number wrong length",
			proposed: domain.ProposedTransaction{
				Kind:                     domain.KindTransfer,
				SourceAccountNumber:      srcNumber,
				DestinationAccountNumber: "short",
				Amount:                   dec("10"),
			},
			wantReason: domain.ReasonInvalidDestinationAccountNumber,
		},
		{
			name: "transfer to same account",
			proposed: domain.ProposedTransaction{
				Kind:                     domain.KindTransfer,
				SourceAccountNumber:      srcNumber,
				DestinationAccountNumber: srcNumber,
				Amount:                   dec("10"),
			},
			wantReason: domain.ReasonSameAccountTransfer,
		},
		{
			name: "source account not found",
			proposed: domain.ProposedTransaction{
				Kind:                domain.KindDeposit,
				SourceAccountNumber: "999999999999",
				Amount:              dec("10"),
			},
			wantReason: domain.ReasonSourceAccountNotFound,
		},
		{
			name: "destination account not found",
			proposed: domain.ProposedTransaction{
				Kind:                     domain.KindTransfer,
				SourceAccountNumber:      srcNumber,
				DestinationAccountNumber: "999999999999",
				Amount:                   dec("10"),
			},
			wantReason: domain.ReasonDestinationAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			accounts := mocks.NewMockAccountReader()
			accounts.Put(activeAccount(srcNumber, domain.CurrencyHTG, "1000"))

			uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

			result, err := uc.Evaluate(context.Background(), tt.proposed)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Eligible {
				t.Fatal("expected rejection")
			}
			if result.Reason != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, result.Reason)
			}
		})
	}
}

func TestEvaluate_NonActiveAccountsRejected(t *testing.T) {
	statuses := []domain.AccountStatus{
		domain.StatusInactive,
		domain.StatusClosed,
		domain.StatusSuspended,
		"Dormant", // opaque label, fails closed
	}

	for _, status := range statuses {
		t.Run(string(status)+" source", func(t *testing.T) {
			accounts := mocks.NewMockAccountReader()
			src := activeAccount(srcNumber, domain.CurrencyHTG, "1000")
			src.Status = status
			accounts.Put(src)

			uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

			result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
				Kind:                domain.KindDeposit,
				SourceAccountNumber: srcNumber,
				Amount:              dec("10"),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Reason != domain.ReasonSourceAccountNotActive {
				t.Errorf("expected SourceAccountNotActive, got %q", result.Reason)
			}
		})
	}

	t.Run("suspended destination", func(t *testing.T) {
		accounts := mocks.NewMockAccountReader()
		accounts.Put(activeAccount(srcNumber, domain.CurrencyHTG, "1000"))
		dest := activeAccount(destNumber, domain.CurrencyHTG, "0")
		dest.Status = domain.StatusSuspended
		accounts.Put(dest)

		uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

		result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
			Kind:                     domain.KindTransfer,
			SourceAccountNumber:      srcNumber,
			DestinationAccountNumber: destNumber,
			Amount:                   dec("10"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Reason != domain.ReasonDestinationAccountNotActive {
			t.Errorf("expected DestinationAccountNotActive, got %q", result.Reason)
		}
	})
}

func TestEvaluate_AmountCurrencyMustMatchSource(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	accounts.Put(activeAccount(srcNumber, domain.CurrencyHTG, "1000"))

	uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

	result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                domain.KindDeposit,
		SourceAccountNumber: srcNumber,
		Amount:              dec("10"),
		Currency:            domain.CurrencyUSD,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason != domain.ReasonCurrencyMismatch {
		t.Errorf("expected CurrencyMismatch, got %q", result.Reason)
	}
}

func TestEvaluate_DepositMaxBalanceBoundary(t *testing.T) {
	newUC := func() *usecase.EligibilityUseCase {
		accounts := mocks.NewMockAccountReader()
		acct := activeAccount(srcNumber, domain.CurrencyHTG, "900")
		acct.Limits.MaxBalance = decPtr("1000")
		accounts.Put(acct)
		return usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())
	}

	t.Run("deposit to exact max balance is eligible", func(t *testing.T) {
		result, err := newUC().Evaluate(context.Background(), domain.ProposedTransaction{
			Kind:                domain.KindDeposit,
			SourceAccountNumber: srcNumber,
			Amount:              dec("100"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Eligible {
			t.Errorf("expected eligible, got %q", result.Reason)
		}
	})

	t.Run("one cent over max balance is rejected", func(t *testing.T) {
		result, err := newUC().Evaluate(context.Background(), domain.ProposedTransaction{
			Kind:                domain.KindDeposit,
			SourceAccountNumber: srcNumber,
			Amount:              dec("100.01"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Reason != domain.ReasonMaxBalanceExceeded {
			t.Errorf("expected MaxBalanceExceeded, got %q", result.Reason)
		}
		if result.Detail == nil || result.Detail.Limit == nil || !result.Detail.Limit.Equal(dec("1000")) {
			t.Error("expected limit detail of 1000")
		}
	})
}

func TestEvaluate_WithdrawalMinimumBalanceBoundary(t *testing.T) {
	newUC := func() *usecase.EligibilityUseCase {
		accounts := mocks.NewMockAccountReader()
		acct := activeAccount(srcNumber, domain.CurrencyHTG, "500")
		acct.MinimumBalance = dec("100")
		accounts.Put(acct)
		return usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())
	}

	t.Run("withdrawal down to the floor is eligible", func(t *testing.T) {
		result, err := newUC().Evaluate(context.Background(), domain.ProposedTransaction{
			Kind:                domain.KindWithdrawal,
			SourceAccountNumber: srcNumber,
			Amount:              dec("400"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Eligible {
			t.Errorf("expected eligible, got %q", result.Reason)
		}
	})

	t.Run("one cent below the floor is rejected", func(t *testing.T) {
		result, err := newUC().Evaluate(context.Background(), domain.ProposedTransaction{
			Kind:                domain.KindWithdrawal,
			SourceAccountNumber: srcNumber,
			Amount:              dec("400.01"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Reason != domain.ReasonInsufficientFunds {
			t.Errorf("expected InsufficientFunds, got %q", result.Reason)
		}
	})
}

func TestEvaluate_PerTransactionWithdrawalAmounts(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	acct := activeAccount(srcNumber, domain.CurrencyHTG, "100000")
	acct.Limits.MaxWithdrawalAmount = decPtr("5000")
	acct.Limits.MinWithdrawalAmount = decPtr("50")
	accounts.Put(acct)

	uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

	tests := []struct {
		name       string
		amount     string
		wantReason domain.RejectionReason
		eligible   bool
	}{
		{name: "above per-transaction max", amount: "5000.01", wantReason: domain.ReasonMaxWithdrawalAmountExceeded},
		{name: "below per-transaction min", amount: "49.99", wantReason: domain.ReasonMinWithdrawalAmountNotMet},
		{name: "within both bounds", amount: "500", eligible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
				Kind:                domain.KindWithdrawal,
				SourceAccountNumber: srcNumber,
				Amount:              dec(tt.amount),
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Eligible != tt.eligible {
				t.Fatalf("eligible = %v, want %v (reason %q)", result.Eligible, tt.eligible, result.Reason)
			}
			if !tt.eligible && result.Reason != tt.wantReason {
				t.Errorf("expected reason %q, got %q", tt.wantReason, result.Reason)
			}
		})
	}
}

func TestEvaluate_DailyWithdrawalLimitExhaustion(t *testing.T) {
	newUC := func() *usecase.EligibilityUseCase {
		accounts := mocks.NewMockAccountReader()
		acct := activeAccount(srcNumber, domain.CurrencyHTG, "100000")
		acct.Limits.DailyWithdrawalLimit = decPtr("1000")
		accounts.Put(acct)

		aggregates := mocks.NewMockAggregateReader()
		aggregates.SetTotal(srcNumber, domain.KindWithdrawal, domain.PeriodDay, dec("950"))

		return usecase.NewEligibilityUseCase(accounts, aggregates)
	}

	t.Run("withdrawal within remaining headroom is eligible", func(t *testing.T) {
		result, err := newUC().Evaluate(context.Background(), domain.ProposedTransaction{
			Kind:                domain.KindWithdrawal,
			SourceAccountNumber: srcNumber,
			Amount:              dec("50"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Eligible {
			t.Errorf("expected eligible, got %q", result.Reason)
		}
	})

	t.Run("withdrawal past remaining headroom is rejected with remaining", func(t *testing.T) {
		result, err := newUC().Evaluate(context.Background(), domain.ProposedTransaction{
			Kind:                domain.KindWithdrawal,
			SourceAccountNumber: srcNumber,
			Amount:              dec("50.01"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Reason != domain.ReasonDailyWithdrawalLimitExceeded {
			t.Fatalf("expected DailyWithdrawalLimitExceeded, got %q", result.Reason)
		}
		if result.Detail == nil || result.Detail.Remaining == nil || !result.Detail.Remaining.Equal(dec("50")) {
			t.Errorf("expected remaining of 50, got %+v", result.Detail)
		}
		if result.Detail.Limit == nil || !result.Detail.Limit.Equal(dec("1000")) {
			t.Errorf("expected limit of 1000, got %+v", result.Detail)
		}
	})
}

func TestEvaluate_MonthlyWithdrawalLimit(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	acct := activeAccount(srcNumber, domain.CurrencyHTG, "100000")
	acct.Limits.MonthlyWithdrawalLimit = decPtr("20000")
	accounts.Put(acct)

	aggregates := mocks.NewMockAggregateReader()
	aggregates.SetTotal(srcNumber, domain.KindWithdrawal, domain.PeriodMonth, dec("19990"))

	uc := usecase.NewEligibilityUseCase(accounts, aggregates)

	result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                domain.KindWithdrawal,
		SourceAccountNumber: srcNumber,
		Amount:              dec("20"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason != domain.ReasonMonthlyWithdrawalLimitExceeded {
		t.Errorf("expected MonthlyWithdrawalLimitExceeded, got %q", result.Reason)
	}
}

func TestEvaluate_DailyDepositLimit(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	acct := activeAccount(srcNumber, domain.CurrencyHTG, "0")
	acct.Limits.DailyDepositLimit = decPtr("10000")
	accounts.Put(acct)

	aggregates := mocks.NewMockAggregateReader()
	aggregates.SetTotal(srcNumber, domain.KindDeposit, domain.PeriodDay, dec("9500"))

	uc := usecase.NewEligibilityUseCase(accounts, aggregates)

	result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                domain.KindDeposit,
		SourceAccountNumber: srcNumber,
		Amount:              dec("600"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason != domain.ReasonDailyDepositLimitExceeded {
		t.Fatalf("expected DailyDepositLimitExceeded, got %q", result.Reason)
	}
	if result.Detail == nil || result.Detail.Remaining == nil || !result.Detail.Remaining.Equal(dec("500")) {
		t.Errorf("expected remaining of 500, got %+v", result.Detail)
	}
}

// Aggregate lookups fail open: an unavailable total disables that one limit
// check instead of rejecting, because the backend enforces it at commit time.
func TestEvaluate_AggregateUnavailableSkipsLimitCheck(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	acct := activeAccount(srcNumber, domain.CurrencyHTG, "100000")
	acct.Limits.DailyWithdrawalLimit = decPtr("1000")
	acct.Limits.MonthlyWithdrawalLimit = decPtr("5000")
	accounts.Put(acct)

	aggregates := mocks.NewMockAggregateReader()
	aggregates.TotalFunc = func(ctx context.Context, accountNumber string, kind domain.TransactionKind, period domain.AggregatePeriod, referenceDate time.Time) (decimal.Decimal, error) {
		return decimal.Zero, domain.ErrAggregateUnavailable
	}

	uc := usecase.NewEligibilityUseCase(accounts, aggregates)

	result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                domain.KindWithdrawal,
		SourceAccountNumber: srcNumber,
		Amount:              dec("2000"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Eligible {
		t.Errorf("expected eligible when aggregates are unavailable, got %q", result.Reason)
	}
}

// Snapshot lookups fail closed: a transport failure aborts the evaluation.
func TestEvaluate_SnapshotFailureIsFatal(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	accounts.GetByNumberFunc = func(ctx context.Context, accountNumber string) (*domain.AccountSnapshot, error) {
		return nil, errors.New("connection refused")
	}

	uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

	_, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                domain.KindDeposit,
		SourceAccountNumber: srcNumber,
		Amount:              dec("10"),
	})
	if err == nil {
		t.Fatal("expected error for snapshot lookup failure")
	}
}

func TestEvaluate_TransferCurrencyMismatch(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	accounts.Put(activeAccount(srcNumber, domain.CurrencyHTG, "100000"))
	accounts.Put(activeAccount(destNumber, domain.CurrencyUSD, "0"))

	uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

	result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                     domain.KindTransfer,
		SourceAccountNumber:      srcNumber,
		DestinationAccountNumber: destNumber,
		Amount:                   dec("25"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason != domain.ReasonCurrencyMismatch {
		t.Errorf("expected CurrencyMismatch, got %q", result.Reason)
	}
}

// A transfer runs the withdrawal rules on the source first; their rejections
// propagate unchanged.
func TestEvaluate_TransferPropagatesWithdrawalRejection(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	src := activeAccount(srcNumber, domain.CurrencyHTG, "100")
	accounts.Put(src)
	accounts.Put(activeAccount(destNumber, domain.CurrencyHTG, "0"))

	uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

	result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                     domain.KindTransfer,
		SourceAccountNumber:      srcNumber,
		DestinationAccountNumber: destNumber,
		Amount:                   dec("500"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason != domain.ReasonInsufficientFunds {
		t.Errorf("expected InsufficientFunds, got %q", result.Reason)
	}
}

func TestEvaluate_TransferEligible(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	accounts.Put(activeAccount(srcNumber, domain.CurrencyHTG, "1000"))
	accounts.Put(activeAccount(destNumber, domain.CurrencyHTG, "50"))

	uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

	result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                     domain.KindTransfer,
		SourceAccountNumber:      srcNumber,
		DestinationAccountNumber: destNumber,
		Amount:                   dec("200"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Eligible {
		t.Errorf("expected eligible, got %q", result.Reason)
	}
}

// When both InsufficientFunds and MaxWithdrawalAmountExceeded would trigger,
// the minimum-balance rule is checked first and must win.
func TestEvaluate_WithdrawalRuleOrderIsPinned(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	acct := activeAccount(srcNumber, domain.CurrencyHTG, "100")
	acct.Limits.MaxWithdrawalAmount = decPtr("50")
	accounts.Put(acct)

	uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

	// 500 > available 100 and 500 > max 50: both rules violated.
	result, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                domain.KindWithdrawal,
		SourceAccountNumber: srcNumber,
		Amount:              dec("500"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reason != domain.ReasonInsufficientFunds {
		t.Errorf("expected InsufficientFunds to win, got %q", result.Reason)
	}
}

// Repeating an evaluation against an unchanged backend yields the same result.
func TestEvaluate_Idempotent(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	acct := activeAccount(srcNumber, domain.CurrencyHTG, "1000")
	acct.Limits.DailyWithdrawalLimit = decPtr("500")
	accounts.Put(acct)

	aggregates := mocks.NewMockAggregateReader()
	aggregates.SetTotal(srcNumber, domain.KindWithdrawal, domain.PeriodDay, dec("480"))

	uc := usecase.NewEligibilityUseCase(accounts, aggregates)

	proposed := domain.ProposedTransaction{
		Kind:                domain.KindWithdrawal,
		SourceAccountNumber: srcNumber,
		Amount:              dec("30"),
	}

	first, err := uc.Evaluate(context.Background(), proposed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := uc.Evaluate(context.Background(), proposed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestEvaluate_UnsupportedKind(t *testing.T) {
	accounts := mocks.NewMockAccountReader()
	accounts.Put(activeAccount(srcNumber, domain.CurrencyHTG, "1000"))

	uc := usecase.NewEligibilityUseCase(accounts, mocks.NewMockAggregateReader())

	_, err := uc.Evaluate(context.Background(), domain.ProposedTransaction{
		Kind:                domain.KindInterest,
		SourceAccountNumber: srcNumber,
		Amount:              dec("10"),
	})
	if err == nil {
		t.Fatal("expected error for non-evaluable kind")
	}
}
