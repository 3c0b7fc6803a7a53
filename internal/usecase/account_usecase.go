package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
)

// AccountUseCase handles account lifecycle. Accounts are opened at user
// onboarding and never deleted; balances are mutated only by the operation
// engine.
type AccountUseCase struct {
	accountRepo AccountRepository
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(accountRepo AccountRepository) *AccountUseCase {
	return &AccountUseCase{accountRepo: accountRepo}
}

// OpenAccountInput represents input for opening an account. The user ID is
// the identity collaborator's mapping and is trusted as given.
type OpenAccountInput struct {
	UserID string
}

// OpenAccount creates a zero-balance account. The account number is assigned
// by the store.
func (uc *AccountUseCase) OpenAccount(ctx context.Context, input OpenAccountInput) (*domain.Account, error) {
	now := time.Now().UTC()

	account := &domain.Account{
		UserID:     input.UserID,
		Balance:    decimal.Zero,
		IsBankrupt: false,
		Version:    0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by number.
func (uc *AccountUseCase) GetAccount(ctx context.Context, accountNo int64) (*domain.Account, error) {
	return uc.accountRepo.GetByNumber(ctx, accountNo)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// ListAccounts lists accounts with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accountRepo.List(ctx, limit, offset)
}
