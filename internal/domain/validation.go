package domain

import (
	"github.com/shopspring/decimal"
)

// Operation thresholds. All comparisons are inclusive except the loan
// repayment check, which requires the loan amount to be strictly less than
// the balance.
var (
	MinDepositAmount  = decimal.NewFromInt(100)
	MinWithdrawAmount = decimal.NewFromInt(500)
	MaxWithdrawAmount = decimal.NewFromInt(20000)
)

// MaxApprovedLoans caps the number of approved loans per account.
const MaxApprovedLoans = 3

// ValidateDepositAmount checks the deposit threshold.
func ValidateDepositAmount(amount decimal.Decimal) error {
	if amount.LessThan(MinDepositAmount) {
		return ErrDepositBelowMinimum
	}
	return nil
}

// ValidateWithdrawalAmount checks the withdrawal thresholds. The balance and
// bankruptcy checks run later, under the account lock.
func ValidateWithdrawalAmount(amount decimal.Decimal) error {
	if amount.LessThan(MinWithdrawAmount) {
		return ErrWithdrawBelowMinimum
	}
	if amount.GreaterThan(MaxWithdrawAmount) {
		return ErrWithdrawAboveMaximum
	}
	return nil
}

// ValidateAmount rejects non-positive amounts.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// ValidatePagination clamps pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
