package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a bank account holding a materialized balance.
// The balance is mutated exclusively by the operation engine; the entry
// history records how it got there.
type Account struct {
	AccountNo  int64
	UserID     string
	Balance    decimal.Decimal
	IsBankrupt bool
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ValidateWithdrawal checks the state-dependent withdrawal preconditions.
// Threshold checks live in ValidateWithdrawalAmount and run before any lock.
func (a *Account) ValidateWithdrawal(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}
	if a.IsBankrupt {
		return ErrAccountBankrupt
	}
	return nil
}

// ValidateTransferOut checks that the account can send amount.
func (a *Account) ValidateTransferOut(amount decimal.Decimal) error {
	if amount.GreaterThan(a.Balance) {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyCredit returns the balance after crediting amount.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ApplyDebit returns the balance after debiting amount.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}
