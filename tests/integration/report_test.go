package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/adapter/http/dto"
)

func deposit(t *testing.T, env *testEnv, accountNo int64, amount string) {
	t.Helper()

	w := env.postJSON(t,
		fmt.Sprintf("/api/v1/accounts/%d/deposit", accountNo),
		dto.DepositRequest{Amount: decimal.RequireFromString(amount)},
	)
	if w.Code != http.StatusCreated {
		t.Fatalf("deposit failed: %d: %s", w.Code, w.Body.String())
	}
}

func TestStatement(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("unranged statement totals the account balance", func(t *testing.T) {
		account := env.db.CreateTestAccount(ctx, "user-stmt")
		deposit(t, env, account.AccountNo, "300")
		deposit(t, env, account.AccountNo, "450")

		w := env.get(t, fmt.Sprintf("/api/v1/accounts/%d/statement", account.AccountNo))
		if w.Code != http.StatusOK {
			t.Fatalf("statement failed: %d: %s", w.Code, w.Body.String())
		}

		resp := decodeResponse[dto.StatementResponse](t, w)
		if len(resp.Entries) != 2 {
			t.Errorf("expected 2 entries, got %d", len(resp.Entries))
		}
		if !resp.PeriodTotal.Equal(decimal.RequireFromString("750")) {
			t.Errorf("expected period total 750, got %s", resp.PeriodTotal)
		}
	})

	t.Run("ranged statement filters entries but totals all accounts", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		account := env.db.CreateTestAccount(ctx, "user-stmt-ranged")
		other := env.db.CreateTestAccount(ctx, "user-stmt-other")

		deposit(t, env, account.AccountNo, "300")
		deposit(t, env, other.AccountNo, "1000")

		today := time.Now().UTC().Format("2006-01-02")
		w := env.get(t, fmt.Sprintf(
			"/api/v1/accounts/%d/statement?start_date=%s&end_date=%s",
			account.AccountNo, today, today,
		))
		if w.Code != http.StatusOK {
			t.Fatalf("statement failed: %d: %s", w.Code, w.Body.String())
		}

		resp := decodeResponse[dto.StatementResponse](t, w)
		if len(resp.Entries) != 1 {
			t.Fatalf("expected only the account's own entry, got %d", len(resp.Entries))
		}
		if !resp.Entries[0].Amount.Equal(decimal.RequireFromString("300")) {
			t.Errorf("expected entry amount 300, got %s", resp.Entries[0].Amount)
		}

		// The legacy period total spans every account in range, not just
		// the requested one.
		if !resp.PeriodTotal.Equal(decimal.RequireFromString("1300")) {
			t.Errorf("expected period total 1300 across all accounts, got %s", resp.PeriodTotal)
		}
	})

	t.Run("single bound is ignored", func(t *testing.T) {
		account := env.db.CreateTestAccount(ctx, "user-stmt-single")
		deposit(t, env, account.AccountNo, "500")

		today := time.Now().UTC().Format("2006-01-02")
		w := env.get(t, fmt.Sprintf(
			"/api/v1/accounts/%d/statement?start_date=%s", account.AccountNo, today,
		))
		if w.Code != http.StatusOK {
			t.Fatalf("statement failed: %d: %s", w.Code, w.Body.String())
		}

		resp := decodeResponse[dto.StatementResponse](t, w)
		if !resp.PeriodTotal.Equal(decimal.RequireFromString("500")) {
			t.Errorf("expected balance total 500 without a full range, got %s", resp.PeriodTotal)
		}
	})

	t.Run("malformed date returns 400", func(t *testing.T) {
		account := env.db.CreateTestAccount(ctx, "user-stmt-bad-date")

		w := env.get(t, fmt.Sprintf(
			"/api/v1/accounts/%d/statement?start_date=01-02-2025&end_date=2025-03-01",
			account.AccountNo,
		))
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", w.Code)
		}
	})
}

func TestReconciliation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	t.Run("reconciled account reports zero drift", func(t *testing.T) {
		account := env.db.CreateTestAccount(ctx, "user-recon")
		deposit(t, env, account.AccountNo, "400")

		w := env.get(t, fmt.Sprintf("/api/v1/accounts/%d/reconciliation", account.AccountNo))
		if w.Code != http.StatusOK {
			t.Fatalf("reconciliation failed: %d: %s", w.Code, w.Body.String())
		}

		resp := decodeResponse[dto.ReconciliationResponse](t, w)
		if !resp.IsReconciled {
			t.Errorf("expected account to be reconciled, drift %s", resp.Difference)
		}
		if !resp.RecordedBalance.Equal(decimal.RequireFromString("400")) {
			t.Errorf("expected recorded balance 400, got %s", resp.RecordedBalance)
		}
	})

	t.Run("manual balance edit shows up as drift", func(t *testing.T) {
		account := env.db.CreateTestAccount(ctx, "user-recon-drift")
		deposit(t, env, account.AccountNo, "400")

		_, err := env.db.Pool.Exec(ctx,
			`UPDATE accounts SET balance = balance + 100 WHERE account_no = $1`, account.AccountNo)
		if err != nil {
			t.Fatalf("failed to skew balance: %v", err)
		}

		w := env.get(t, fmt.Sprintf("/api/v1/accounts/%d/reconciliation", account.AccountNo))
		if w.Code != http.StatusOK {
			t.Fatalf("reconciliation failed: %d: %s", w.Code, w.Body.String())
		}

		resp := decodeResponse[dto.ReconciliationResponse](t, w)
		if resp.IsReconciled {
			t.Errorf("expected drift to be detected")
		}
		if !resp.Difference.Equal(decimal.RequireFromString("100")) {
			t.Errorf("expected drift 100, got %s", resp.Difference)
		}
	})

	t.Run("consistency check passes on a balanced ledger", func(t *testing.T) {
		env.db.TruncateAll(ctx)

		account := env.db.CreateTestAccount(ctx, "user-consistency")
		deposit(t, env, account.AccountNo, "250")

		w := env.get(t, "/api/v1/ledger/consistency")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})
}
