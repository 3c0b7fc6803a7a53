package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/infrastructure/postgres/generated"
)

// LedgerRepository implements usecase.LedgerRepository.
type LedgerRepository struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{pool: pool}
}

// CheckConsistency returns the sum of materialized balances and the sum of
// signed entry deltas over the whole ledger.
func (r *LedgerRepository) CheckConsistency(ctx context.Context) (totalBalance, totalDelta decimal.Decimal, err error) {
	q := generated.New(r.pool)

	balances, err := q.SumAccountBalances(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	deltas, err := q.SumEntrySignedDeltas(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	return numericToDecimal(balances), numericToDecimal(deltas), nil
}
