package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/iho/bankcore/internal/adapter/http/dto"
)

func TestAccountLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("open account with valid data", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/accounts", dto.OpenAccountRequest{UserID: "user-open"})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, w.Code, w.Body.String())
		}

		resp := decodeResponse[dto.AccountResponse](t, w)
		if resp.AccountNo == 0 {
			t.Errorf("expected store-assigned account number, got 0")
		}
		if resp.UserID != "user-open" {
			t.Errorf("expected user ID user-open, got %q", resp.UserID)
		}
		if !resp.Balance.IsZero() {
			t.Errorf("expected zero opening balance, got %s", resp.Balance)
		}
		if resp.IsBankrupt {
			t.Errorf("expected new account not to be bankrupt")
		}
	})

	t.Run("open account without user ID returns 400", func(t *testing.T) {
		w := env.postJSON(t, "/api/v1/accounts", map[string]any{})

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})

	t.Run("get account by number", func(t *testing.T) {
		account := env.db.CreateTestAccount(ctx, "user-get")

		w := env.get(t, fmt.Sprintf("/api/v1/accounts/%d", account.AccountNo))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		resp := decodeResponse[dto.AccountResponse](t, w)
		if resp.AccountNo != account.AccountNo {
			t.Errorf("expected account number %d, got %d", account.AccountNo, resp.AccountNo)
		}
	})

	t.Run("get non-existent account returns 404", func(t *testing.T) {
		w := env.get(t, "/api/v1/accounts/99999999")

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})

	t.Run("list accounts", func(t *testing.T) {
		env.db.TruncateAll(ctx)
		env.db.CreateTestAccount(ctx, "user-list-1")
		env.db.CreateTestAccount(ctx, "user-list-2")

		w := env.get(t, "/api/v1/accounts?limit=10&offset=0")

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
		}

		resp := decodeResponse[dto.ListAccountsResponse](t, w)
		if len(resp.Accounts) != 2 {
			t.Errorf("expected 2 accounts, got %d", len(resp.Accounts))
		}
	})
}
