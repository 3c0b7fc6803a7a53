package usecase

import "time"

const (
	// DefaultTransactionTimeout bounds a single database transaction so a
	// stuck commit cannot hold row locks indefinitely.
	DefaultTransactionTimeout = 10 * time.Second

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)
