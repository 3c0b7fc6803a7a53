package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	UserID string `json:"user_id"`
}

// ToUseCaseInput converts to use case input.
func (r *OpenAccountRequest) ToUseCaseInput() usecase.OpenAccountInput {
	return usecase.OpenAccountInput{
		UserID: r.UserID,
	}
}

// DepositRequest represents a deposit into an account.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// WithdrawRequest represents a withdrawal from an account.
type WithdrawRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// LoanRequest represents a loan request for an account.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// TransferRequest represents a transfer between two accounts.
type TransferRequest struct {
	FromAccountNo int64           `json:"from_account_no"`
	ToAccountNo   int64           `json:"to_account_no"`
	Amount        decimal.Decimal `json:"amount"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
