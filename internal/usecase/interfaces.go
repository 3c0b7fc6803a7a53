package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// AccountRepository defines data access for accounts. It is a pure state
// holder: no business validation lives behind it.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByNumber(ctx context.Context, accountNo int64) (*domain.Account, error)
	GetByNumberForUpdate(ctx context.Context, tx Transaction, accountNo int64) (*domain.Account, error)
	GetByNumbersForUpdate(ctx context.Context, tx Transaction, accountNos []int64) ([]*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, accountNo int64, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// EntryRepository defines data access for the transaction ledger.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	GetByID(ctx context.Context, id string) (*domain.Entry, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Entry, error)
	ListByAccount(ctx context.Context, accountNo int64, limit, offset int) ([]*domain.Entry, error)
	ListByAccountInRange(ctx context.Context, accountNo int64, from, to time.Time) ([]*domain.Entry, error)
	ListLoansByAccount(ctx context.Context, accountNo int64) ([]*domain.Entry, error)
	CountApprovedLoans(ctx context.Context, tx Transaction, accountNo int64) (int64, error)
	UpdateLoanState(ctx context.Context, tx Transaction, entry *domain.Entry) error
	SumAmountInRange(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

// LedgerRepository defines ledger-wide operations.
type LedgerRepository interface {
	// CheckConsistency returns the sum of all materialized balances and the
	// sum of all signed entry deltas. The two must match.
	CheckConsistency(ctx context.Context) (totalBalance, totalDelta decimal.Decimal, err error)
}

// OutboxRepository defines data access for notification trigger events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier re-runs an operation when the store reports a concurrency
// conflict. Business errors pass through untouched.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
