package domain

import "errors"

// ValidationError is a business-rule rejection. It names the violated
// constraint so callers never see a generic failure.
type ValidationError struct {
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a business-rule rejection.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Business-rule rejections. These are terminal for the call and never
// retried automatically.
var (
	ErrDepositBelowMinimum  = &ValidationError{Constraint: "deposit_minimum", Message: "deposit must be at least 100"}
	ErrWithdrawBelowMinimum = &ValidationError{Constraint: "withdraw_minimum", Message: "withdrawal must be at least 500"}
	ErrWithdrawAboveMaximum = &ValidationError{Constraint: "withdraw_maximum", Message: "withdrawal must be at most 20000"}
	ErrInsufficientBalance  = &ValidationError{Constraint: "insufficient_balance", Message: "amount exceeds account balance"}
	ErrAccountBankrupt      = &ValidationError{Constraint: "account_bankrupt", Message: "bankrupt account cannot withdraw"}
	ErrLoanLimitReached     = &ValidationError{Constraint: "loan_limit", Message: "account has reached the limit of 3 approved loans"}
	ErrNotALoan             = &ValidationError{Constraint: "not_a_loan", Message: "entry is not a loan"}
	ErrLoanAlreadyApproved  = &ValidationError{Constraint: "loan_already_approved", Message: "loan is already approved"}
	ErrLoanNotApproved      = &ValidationError{Constraint: "loan_not_approved", Message: "loan has not been approved"}
	ErrLoanExceedsBalance   = &ValidationError{Constraint: "loan_exceeds_balance", Message: "loan amount is not less than account balance"}
	ErrSameAccount          = &ValidationError{Constraint: "self_transfer", Message: "cannot transfer to own account"}
	ErrRecipientNotFound    = &ValidationError{Constraint: "recipient_not_found", Message: "recipient account does not exist"}
	ErrInvalidAmount        = &ValidationError{Constraint: "non_positive_amount", Message: "amount must be positive"}
	ErrUnknownOperation     = &ValidationError{Constraint: "unknown_operation", Message: "unknown operation kind"}
)

var (
	// ErrAccountNotFound means the referenced account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrEntryNotFound means the referenced ledger entry does not exist.
	ErrEntryNotFound = errors.New("ledger entry not found")

	// ErrConflict means a concurrent modification was detected and internal
	// retries were exhausted. Transient; the caller may retry.
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrLedgerInconsistent means a materialized balance disagrees with the
	// entry history. Should be structurally impossible; never ignored.
	ErrLedgerInconsistent = errors.New("ledger inconsistent: balance does not match entry history")
)
