package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankcore/internal/usecase"
)

// txStarter is the subset of pgxpool.Pool needed to open transactions.
type txStarter interface {
	Begin(context.Context) (pgx.Tx, error)
}

// TxManager opens pgx transactions for the usecase layer.
type TxManager struct {
	db txStarter
}

// NewTxManager creates a new TxManager backed by the pool.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{db: pool}
}

func newTxManager(db txStarter) *TxManager {
	return &TxManager{db: db}
}

// Begin opens a transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

// Tx adapts a pgx transaction to the usecase.Transaction interface. The
// repositories unwrap it with PgxTx to run their queries on the same
// connection.
type Tx struct {
	tx pgx.Tx
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx returns the underlying pgx.Tx.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}
