package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kesbank/savings-eligibility/internal/domain"
)

// EligibilityUseCase decides whether a proposed savings transaction may be
// submitted to the account backend. It is a pre-flight advisory check: it
// performs reads only, and the backend re-validates at commit time. Each
// evaluation reads a fresh snapshot, so repeating a call against an unchanged
// backend yields the same result.
type EligibilityUseCase struct {
	accounts   AccountReader
	aggregates AggregateReader
}

// NewEligibilityUseCase creates a new EligibilityUseCase.
func NewEligibilityUseCase(accounts AccountReader, aggregates AggregateReader) *EligibilityUseCase {
	return &EligibilityUseCase{
		accounts:   accounts,
		aggregates: aggregates,
	}
}

// Evaluate runs the ordered rule set for the proposal's kind and returns the
// first violation, or an eligible result. It returns a non-nil error only
// when a snapshot lookup fails for a reason other than "not found"; callers
// must treat that as "cannot evaluate, do not submit".
func (uc *EligibilityUseCase) Evaluate(ctx context.Context, p domain.ProposedTransaction) (*domain.EligibilityResult, error) {
	// Structural preconditions, rejected locally before any backend call.
	if len(p.SourceAccountNumber) != domain.AccountNumberLength {
		return domain.Rejected(domain.ReasonInvalidAccountNumber, p.Currency), nil
	}

	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.Rejected(domain.ReasonInvalidAmount, p.Currency), nil
	}

	if p.IsTransfer() {
		if len(p.DestinationAccountNumber) != domain.AccountNumberLength {
			return domain.Rejected(domain.ReasonInvalidDestinationAccountNumber, p.Currency), nil
		}

		if p.DestinationAccountNumber == p.SourceAccountNumber {
			return domain.Rejected(domain.ReasonSameAccountTransfer, p.Currency), nil
		}
	}

	// Snapshot lookups are fail-closed: only "not found" becomes a
	// rejection, everything else aborts the evaluation.
	source, err := uc.accounts.GetByNumber(ctx, p.SourceAccountNumber)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Rejected(domain.ReasonSourceAccountNotFound, p.Currency), nil
		}
		return nil, fmt.Errorf("source account lookup: %w", err)
	}

	if !source.Status.IsTransactable() {
		return domain.Rejected(domain.ReasonSourceAccountNotActive, source.Currency), nil
	}

	if p.Currency.IsValid() && p.Currency != source.Currency {
		return domain.Rejected(domain.ReasonCurrencyMismatch, source.Currency), nil
	}

	var destination *domain.AccountSnapshot
	if p.IsTransfer() {
		destination, err = uc.accounts.GetByNumber(ctx, p.DestinationAccountNumber)
		if err != nil {
			if errors.Is(err, domain.ErrAccountNotFound) {
				return domain.Rejected(domain.ReasonDestinationAccountNotFound, source.Currency), nil
			}
			return nil, fmt.Errorf("destination account lookup: %w", err)
		}

		if !destination.Status.IsTransactable() {
			return domain.Rejected(domain.ReasonDestinationAccountNotActive, source.Currency), nil
		}
	}

	switch p.Kind {
	case domain.KindDeposit:
		return uc.evaluateDeposit(ctx, source, p.Amount), nil
	case domain.KindWithdrawal:
		return uc.evaluateWithdrawal(ctx, source, p.Amount), nil
	case domain.KindTransfer:
		return uc.evaluateTransfer(ctx, source, destination, p.Amount), nil
	default:
		return nil, fmt.Errorf("transaction kind %q is not evaluable", p.Kind)
	}
}

func (uc *EligibilityUseCase) evaluateDeposit(ctx context.Context, account *domain.AccountSnapshot, amount decimal.Decimal) *domain.EligibilityResult {
	if max := account.Limits.MaxBalance; max != nil {
		if account.Balance.Add(amount).GreaterThan(*max) {
			return domain.RejectedWithDetail(domain.ReasonMaxBalanceExceeded, account.Currency, *max, nil)
		}
	}

	if limit := account.Limits.DailyDepositLimit; limit != nil {
		if result := uc.checkPeriodLimit(ctx, account, domain.KindDeposit, domain.PeriodDay, *limit, amount, domain.ReasonDailyDepositLimitExceeded); result != nil {
			return result
		}
	}

	return domain.Accepted(account.Currency)
}

func (uc *EligibilityUseCase) evaluateWithdrawal(ctx context.Context, account *domain.AccountSnapshot, amount decimal.Decimal) *domain.EligibilityResult {
	if amount.GreaterThan(account.WithdrawableBalance()) {
		return domain.Rejected(domain.ReasonInsufficientFunds, account.Currency)
	}

	if max := account.Limits.MaxWithdrawalAmount; max != nil && amount.GreaterThan(*max) {
		return domain.RejectedWithDetail(domain.ReasonMaxWithdrawalAmountExceeded, account.Currency, *max, nil)
	}

	if min := account.Limits.MinWithdrawalAmount; min != nil && amount.LessThan(*min) {
		return domain.RejectedWithDetail(domain.ReasonMinWithdrawalAmountNotMet, account.Currency, *min, nil)
	}

	if limit := account.Limits.DailyWithdrawalLimit; limit != nil {
		if result := uc.checkPeriodLimit(ctx, account, domain.KindWithdrawal, domain.PeriodDay, *limit, amount, domain.ReasonDailyWithdrawalLimitExceeded); result != nil {
			return result
		}
	}

	if limit := account.Limits.MonthlyWithdrawalLimit; limit != nil {
		if result := uc.checkPeriodLimit(ctx, account, domain.KindWithdrawal, domain.PeriodMonth, *limit, amount, domain.ReasonMonthlyWithdrawalLimitExceeded); result != nil {
			return result
		}
	}

	return domain.Accepted(account.Currency)
}

// evaluateTransfer runs the full withdrawal rule set against the source, then
// the transfer-specific currency check against the destination.
func (uc *EligibilityUseCase) evaluateTransfer(ctx context.Context, source, destination *domain.AccountSnapshot, amount decimal.Decimal) *domain.EligibilityResult {
	if result := uc.evaluateWithdrawal(ctx, source, amount); !result.Eligible {
		return result
	}

	if destination.Currency != source.Currency {
		return domain.Rejected(domain.ReasonCurrencyMismatch, source.Currency)
	}

	return domain.Accepted(source.Currency)
}

// checkPeriodLimit enforces one periodic limit against the already-posted
// total. Aggregate lookups are fail-open: when the total cannot be fetched
// the check is skipped rather than rejecting, because the backend enforces
// the limit authoritatively at commit time.
func (uc *EligibilityUseCase) checkPeriodLimit(
	ctx context.Context,
	account *domain.AccountSnapshot,
	kind domain.TransactionKind,
	period domain.AggregatePeriod,
	limit, amount decimal.Decimal,
	reason domain.RejectionReason,
) *domain.EligibilityResult {
	total, err := uc.aggregates.Total(ctx, account.AccountNumber, kind, period, time.Now().UTC())
	if err != nil {
		return nil
	}

	remaining := limit.Sub(total)
	if remaining.LessThan(amount) {
		return domain.RejectedWithDetail(reason, account.Currency, limit, &remaining)
	}

	return nil
}
