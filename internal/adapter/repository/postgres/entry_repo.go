package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/postgres/generated"
	"github.com/iho/bankcore/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends a ledger entry within a transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	_, err := queries.CreateEntry(ctx, generated.CreateEntryParams{
		ID:           entry.ID,
		AccountNo:    entry.AccountNo,
		Amount:       decimalToNumeric(entry.Amount),
		BalanceAfter: decimalToNumeric(entry.BalanceAfter),
		Kind:         string(entry.Kind),
		LoanApproved: entry.LoanApproved,
		TransferID:   textOrNull(entry.TransferID),
		CreatedAt:    timeToPgTimestamptz(entry.CreatedAt),
	})

	return err
}

// GetByID retrieves an entry by ID.
func (r *EntryRepository) GetByID(ctx context.Context, id string) (*domain.Entry, error) {
	row, err := r.queries.GetEntryByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// GetByIDForUpdate retrieves an entry by ID with a FOR UPDATE lock.
func (r *EntryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Entry, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	row, err := queries.GetEntryByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEntryNotFound
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

// ListByAccount lists an account's entries in chronological order.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountNo int64, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByAccount(ctx, generated.ListEntriesByAccountParams{
		AccountNo: accountNo,
		Limit:     int32(limit),
		Offset:    int32(offset),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// ListByAccountInRange lists an account's entries within a time range,
// bounds inclusive.
func (r *EntryRepository) ListByAccountInRange(ctx context.Context, accountNo int64, from, to time.Time) ([]*domain.Entry, error) {
	rows, err := r.queries.ListEntriesByAccountInRange(ctx, generated.ListEntriesByAccountInRangeParams{
		AccountNo:   accountNo,
		CreatedAt:   timeToPgTimestamptz(from),
		CreatedAt_2: timeToPgTimestamptz(to),
	})
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// ListLoansByAccount lists an account's loan entries. Repaid loans carry the
// loan_paid kind and are not included.
func (r *EntryRepository) ListLoansByAccount(ctx context.Context, accountNo int64) ([]*domain.Entry, error) {
	rows, err := r.queries.ListLoanEntriesByAccount(ctx, accountNo)
	if err != nil {
		return nil, err
	}

	return rowsToEntries(rows), nil
}

// CountApprovedLoans counts an account's approved, unpaid loans.
func (r *EntryRepository) CountApprovedLoans(ctx context.Context, tx usecase.Transaction, accountNo int64) (int64, error) {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.CountApprovedLoans(ctx, accountNo)
}

// UpdateLoanState persists a loan state transition.
func (r *EntryRepository) UpdateLoanState(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()
	queries := generated.New(pgxTx)

	return queries.UpdateEntryLoanState(ctx, generated.UpdateEntryLoanStateParams{
		ID:           entry.ID,
		Kind:         string(entry.Kind),
		LoanApproved: entry.LoanApproved,
		BalanceAfter: decimalToNumeric(entry.BalanceAfter),
	})
}

// SumAmountInRange sums raw entry amounts in a time range over the entire
// ledger, not a single account.
func (r *EntryRepository) SumAmountInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	n, err := r.queries.SumEntryAmountsInRange(ctx, generated.SumEntryAmountsInRangeParams{
		CreatedAt:   timeToPgTimestamptz(from),
		CreatedAt_2: timeToPgTimestamptz(to),
	})
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(n), nil
}

func rowToEntry(row generated.Entry) *domain.Entry {
	var transferID string
	if row.TransferID.Valid {
		transferID = row.TransferID.String
	}

	return &domain.Entry{
		ID:           row.ID,
		AccountNo:    row.AccountNo,
		Amount:       numericToDecimal(row.Amount),
		BalanceAfter: numericToDecimal(row.BalanceAfter),
		Kind:         domain.TransactionType(row.Kind),
		LoanApproved: row.LoanApproved,
		TransferID:   transferID,
		CreatedAt:    row.CreatedAt.Time,
	}
}

func rowsToEntries(rows []generated.Entry) []*domain.Entry {
	entries := make([]*domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries
}

func textOrNull(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: s, Valid: true}
}
