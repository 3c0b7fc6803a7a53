package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
	"github.com/iho/bankcore/internal/usecase/mocks"
)

func TestOpenAccount(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accounts)

	first, err := uc.OpenAccount(context.Background(), usecase.OpenAccountInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("OpenAccount() error = %v", err)
	}

	if first.AccountNo == 0 {
		t.Error("account number not assigned")
	}
	if !first.Balance.IsZero() {
		t.Errorf("opening balance = %s, want 0", first.Balance)
	}
	if first.IsBankrupt {
		t.Error("new account marked bankrupt")
	}

	second, err := uc.OpenAccount(context.Background(), usecase.OpenAccountInput{UserID: "user-2"})
	if err != nil {
		t.Fatalf("OpenAccount() error = %v", err)
	}
	if second.AccountNo == first.AccountNo {
		t.Errorf("duplicate account number %d", second.AccountNo)
	}
}

func TestGetAccount(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accounts)

	opened, err := uc.OpenAccount(context.Background(), usecase.OpenAccountInput{UserID: "user-1"})
	if err != nil {
		t.Fatalf("OpenAccount() error = %v", err)
	}

	got, err := uc.GetAccount(context.Background(), opened.AccountNo)
	if err != nil {
		t.Fatalf("GetAccount() error = %v", err)
	}
	if got.UserID != "user-1" {
		t.Errorf("user id = %s, want user-1", got.UserID)
	}

	if _, err := uc.GetAccount(context.Background(), 99999); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("GetAccount() error = %v, want %v", err, domain.ErrAccountNotFound)
	}
}

func TestListAccounts(t *testing.T) {
	accounts := mocks.NewMockAccountRepository()
	uc := usecase.NewAccountUseCase(accounts)

	for i := 0; i < 5; i++ {
		if _, err := uc.OpenAccount(context.Background(), usecase.OpenAccountInput{UserID: "user"}); err != nil {
			t.Fatalf("OpenAccount() error = %v", err)
		}
	}

	var captured struct{ limit, offset int }
	accounts.ListFunc = func(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
		captured.limit, captured.offset = limit, offset
		return nil, nil
	}

	// Out-of-range pagination inputs are clamped before hitting the store.
	if _, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: -1, Offset: -5}); err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}
	if captured.limit <= 0 || captured.offset != 0 {
		t.Errorf("pagination not normalized: limit=%d offset=%d", captured.limit, captured.offset)
	}

	accounts.ListFunc = nil

	listed, err := uc.ListAccounts(context.Background(), usecase.ListAccountsInput{Limit: 10})
	if err != nil {
		t.Fatalf("ListAccounts() error = %v", err)
	}
	if len(listed) != 5 {
		t.Errorf("accounts = %d, want 5", len(listed))
	}
}
