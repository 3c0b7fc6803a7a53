package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// ReconciliationUseCase recomputes balances from the entry history and
// compares them to the materialized balances. This is the offline
// consistency check; the operation engine never re-derives a balance from a
// full ledger scan on the hot path.
type ReconciliationUseCase struct {
	accountRepo AccountRepository
	entryRepo   EntryRepository
	ledgerRepo  LedgerRepository
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	ledgerRepo LedgerRepository,
) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// ReconciliationResult represents the result of reconciling one account.
type ReconciliationResult struct {
	AccountNo         int64
	RecordedBalance   decimal.Decimal
	CalculatedBalance decimal.Decimal
	Difference        decimal.Decimal
	IsReconciled      bool
	LastChecked       time.Time
}

const reconcilePageSize = 500

// ReconcileAccount replays an account's entry history and compares the sum
// of signed deltas against the materialized balance.
func (uc *ReconciliationUseCase) ReconcileAccount(ctx context.Context, accountNo int64) (*ReconciliationResult, error) {
	account, err := uc.accountRepo.GetByNumber(ctx, accountNo)
	if err != nil {
		return nil, err
	}

	calculated := decimal.Zero

	for offset := 0; ; offset += reconcilePageSize {
		entries, err := uc.entryRepo.ListByAccount(ctx, accountNo, reconcilePageSize, offset)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			calculated = calculated.Add(entry.SignedDelta())
		}

		if len(entries) < reconcilePageSize {
			break
		}
	}

	diff := account.Balance.Sub(calculated)

	return &ReconciliationResult{
		AccountNo:         accountNo,
		RecordedBalance:   account.Balance,
		CalculatedBalance: calculated,
		Difference:        diff,
		IsReconciled:      diff.IsZero(),
		LastChecked:       time.Now().UTC(),
	}, nil
}

// CheckLedgerConsistency verifies that the sum of all materialized balances
// equals the sum of all signed entry deltas.
func (uc *ReconciliationUseCase) CheckLedgerConsistency(ctx context.Context) error {
	totalBalance, totalDelta, err := uc.ledgerRepo.CheckConsistency(ctx)
	if err != nil {
		return err
	}

	if !totalBalance.Equal(totalDelta) {
		return fmt.Errorf(
			"%w: balances=%s deltas=%s difference=%s",
			domain.ErrLedgerInconsistent,
			totalBalance.String(),
			totalDelta.String(),
			totalBalance.Sub(totalDelta).String(),
		)
	}

	return nil
}

// ReconciliationReport represents a full reconciliation run.
type ReconciliationReport struct {
	TotalAccounts      int
	ReconciledAccounts int
	Discrepancies      []*ReconciliationResult
	LedgerConsistent   bool
	CheckedAt          time.Time
}

// GenerateReport reconciles every account and checks ledger-wide consistency.
func (uc *ReconciliationUseCase) GenerateReport(ctx context.Context) (*ReconciliationReport, error) {
	limit, offset := domain.ValidatePagination(10000, 0)

	accounts, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	ledgerErr := uc.CheckLedgerConsistency(ctx)

	report := &ReconciliationReport{
		TotalAccounts:    len(accounts),
		Discrepancies:    make([]*ReconciliationResult, 0),
		LedgerConsistent: ledgerErr == nil,
		CheckedAt:        time.Now().UTC(),
	}

	for _, account := range accounts {
		result, err := uc.ReconcileAccount(ctx, account.AccountNo)
		if err != nil {
			return nil, fmt.Errorf("failed to reconcile account %d: %w", account.AccountNo, err)
		}

		if result.IsReconciled {
			report.ReconciledAccounts++
		} else {
			report.Discrepancies = append(report.Discrepancies, result)
		}
	}

	return report, nil
}
