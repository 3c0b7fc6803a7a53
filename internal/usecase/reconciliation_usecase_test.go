package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/internal/usecase/mocks"
)

type reconcileFixture struct {
	uc       *usecase.ReconciliationUseCase
	accounts *mocks.MockAccountRepo
	entries  *mocks.MockEntryRepo
	ledger   *mocks.MockLedgerRepo
}

func newReconcileFixture(t *testing.T) *reconcileFixture {
	ctrl := gomock.NewController(t)

	accounts := mocks.NewMockAccountRepo(ctrl)
	entries := mocks.NewMockEntryRepo(ctrl)
	ledger := mocks.NewMockLedgerRepo(ctrl)

	return &reconcileFixture{
		uc:       usecase.NewReconciliationUseCase(accounts, entries, ledger),
		accounts: accounts,
		entries:  entries,
		ledger:   ledger,
	}
}

// expectHistory serves the given entries back page by page, honoring
// whatever limit and offset the caller asks for.
func (f *reconcileFixture) expectHistory(accountNo int64, all []*domain.Entry) {
	f.entries.EXPECT().
		ListByAccount(gomock.Any(), accountNo, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, limit, offset int) ([]*domain.Entry, error) {
			if offset >= len(all) {
				return nil, nil
			}
			end := offset + limit
			if end > len(all) {
				end = len(all)
			}
			return all[offset:end], nil
		}).
		AnyTimes()
}

func TestReconcileAccount(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name       string
		balance    string
		entries    []*domain.Entry
		reconciled bool
		difference string
	}{
		{
			name:    "balanced history",
			balance: "900",
			entries: []*domain.Entry{
				{ID: "e1", Amount: decimal.NewFromInt(1000), Kind: domain.TransactionDeposit, CreatedAt: now},
				{ID: "e2", Amount: decimal.NewFromInt(600), Kind: domain.TransactionWithdrawal, CreatedAt: now.Add(time.Second)},
				{ID: "e3", Amount: decimal.NewFromInt(500), Kind: domain.TransactionTransferReceived, CreatedAt: now.Add(2 * time.Second)},
			},
			reconciled: true,
			difference: "0",
		},
		{
			name:    "pending loan contributes nothing",
			balance: "1000",
			entries: []*domain.Entry{
				{ID: "e1", Amount: decimal.NewFromInt(1000), Kind: domain.TransactionDeposit, CreatedAt: now},
				{ID: "e2", Amount: decimal.NewFromInt(5000), Kind: domain.TransactionLoan, CreatedAt: now.Add(time.Second)},
			},
			reconciled: true,
			difference: "0",
		},
		{
			name:    "approved loan counts in full",
			balance: "6000",
			entries: []*domain.Entry{
				{ID: "e1", Amount: decimal.NewFromInt(1000), Kind: domain.TransactionDeposit, CreatedAt: now},
				{ID: "e2", Amount: decimal.NewFromInt(5000), Kind: domain.TransactionLoan, LoanApproved: true, CreatedAt: now.Add(time.Second)},
			},
			reconciled: true,
			difference: "0",
		},
		{
			name:    "repaid loan nets to zero",
			balance: "1000",
			entries: []*domain.Entry{
				{ID: "e1", Amount: decimal.NewFromInt(1000), Kind: domain.TransactionDeposit, CreatedAt: now},
				{ID: "e2", Amount: decimal.NewFromInt(5000), Kind: domain.TransactionLoanPaid, LoanApproved: true, CreatedAt: now.Add(time.Second)},
			},
			reconciled: true,
			difference: "0",
		},
		{
			name:    "drifted balance is reported",
			balance: "1100",
			entries: []*domain.Entry{
				{ID: "e1", Amount: decimal.NewFromInt(1000), Kind: domain.TransactionDeposit, CreatedAt: now},
			},
			reconciled: false,
			difference: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newReconcileFixture(t)
			f.accounts.EXPECT().
				GetByNumber(gomock.Any(), int64(10001)).
				Return(&domain.Account{AccountNo: 10001, Balance: decimal.RequireFromString(tt.balance)}, nil)
			f.expectHistory(10001, tt.entries)

			result, err := f.uc.ReconcileAccount(context.Background(), 10001)
			if err != nil {
				t.Fatalf("ReconcileAccount() error = %v", err)
			}

			if result.IsReconciled != tt.reconciled {
				t.Errorf("reconciled = %v, want %v", result.IsReconciled, tt.reconciled)
			}
			if !result.Difference.Equal(decimal.RequireFromString(tt.difference)) {
				t.Errorf("difference = %s, want %s", result.Difference, tt.difference)
			}
		})
	}

	t.Run("history spanning several pages", func(t *testing.T) {
		const deposits = 1201

		history := make([]*domain.Entry, 0, deposits)
		for i := 0; i < deposits; i++ {
			history = append(history, &domain.Entry{
				Amount:    decimal.NewFromInt(1),
				Kind:      domain.TransactionDeposit,
				CreatedAt: now.Add(time.Duration(i) * time.Second),
			})
		}

		f := newReconcileFixture(t)
		f.accounts.EXPECT().
			GetByNumber(gomock.Any(), int64(10001)).
			Return(&domain.Account{AccountNo: 10001, Balance: decimal.NewFromInt(deposits)}, nil)
		f.expectHistory(10001, history)

		result, err := f.uc.ReconcileAccount(context.Background(), 10001)
		if err != nil {
			t.Fatalf("ReconcileAccount() error = %v", err)
		}

		if !result.CalculatedBalance.Equal(decimal.NewFromInt(deposits)) {
			t.Errorf("calculated = %s, want %d", result.CalculatedBalance, deposits)
		}
		if !result.IsReconciled {
			t.Error("expected a multi-page history to reconcile")
		}
	})

	t.Run("unknown account", func(t *testing.T) {
		f := newReconcileFixture(t)
		f.accounts.EXPECT().
			GetByNumber(gomock.Any(), int64(99999)).
			Return(nil, domain.ErrAccountNotFound)

		_, err := f.uc.ReconcileAccount(context.Background(), 99999)
		if !errors.Is(err, domain.ErrAccountNotFound) {
			t.Fatalf("ReconcileAccount() error = %v, want %v", err, domain.ErrAccountNotFound)
		}
	})
}

func TestCheckLedgerConsistency(t *testing.T) {
	t.Run("matching totals", func(t *testing.T) {
		f := newReconcileFixture(t)
		f.ledger.EXPECT().
			CheckConsistency(gomock.Any()).
			Return(decimal.NewFromInt(5000), decimal.NewFromInt(5000), nil)

		if err := f.uc.CheckLedgerConsistency(context.Background()); err != nil {
			t.Fatalf("CheckLedgerConsistency() error = %v", err)
		}
	})

	t.Run("mismatched totals", func(t *testing.T) {
		f := newReconcileFixture(t)
		f.ledger.EXPECT().
			CheckConsistency(gomock.Any()).
			Return(decimal.NewFromInt(5000), decimal.NewFromInt(4900), nil)

		err := f.uc.CheckLedgerConsistency(context.Background())
		if !errors.Is(err, domain.ErrLedgerInconsistent) {
			t.Fatalf("CheckLedgerConsistency() error = %v, want %v", err, domain.ErrLedgerInconsistent)
		}
	})
}

func TestGenerateReport(t *testing.T) {
	now := time.Now().UTC()

	f := newReconcileFixture(t)
	f.accounts.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]*domain.Account{
			{AccountNo: 10001, Balance: decimal.NewFromInt(1000)},
			{AccountNo: 10002, Balance: decimal.NewFromInt(999)},
		}, nil)
	f.ledger.EXPECT().
		CheckConsistency(gomock.Any()).
		Return(decimal.NewFromInt(1999), decimal.NewFromInt(1999), nil)
	f.accounts.EXPECT().
		GetByNumber(gomock.Any(), int64(10001)).
		Return(&domain.Account{AccountNo: 10001, Balance: decimal.NewFromInt(1000)}, nil)
	f.accounts.EXPECT().
		GetByNumber(gomock.Any(), int64(10002)).
		Return(&domain.Account{AccountNo: 10002, Balance: decimal.NewFromInt(999)}, nil)
	f.expectHistory(10001, []*domain.Entry{
		{ID: "e1", Amount: decimal.NewFromInt(1000), Kind: domain.TransactionDeposit, CreatedAt: now},
	})
	f.expectHistory(10002, []*domain.Entry{
		{ID: "e2", Amount: decimal.NewFromInt(1000), Kind: domain.TransactionDeposit, CreatedAt: now},
	})

	report, err := f.uc.GenerateReport(context.Background())
	if err != nil {
		t.Fatalf("GenerateReport() error = %v", err)
	}

	if report.TotalAccounts != 2 {
		t.Errorf("total accounts = %d, want 2", report.TotalAccounts)
	}
	if report.ReconciledAccounts != 1 {
		t.Errorf("reconciled accounts = %d, want 1", report.ReconciledAccounts)
	}
	if len(report.Discrepancies) != 1 {
		t.Fatalf("discrepancies = %d, want 1", len(report.Discrepancies))
	}
	if report.Discrepancies[0].AccountNo != 10002 {
		t.Errorf("discrepant account = %d, want 10002", report.Discrepancies[0].AccountNo)
	}
	if !report.LedgerConsistent {
		t.Error("ledger reported inconsistent with matching totals")
	}
}
