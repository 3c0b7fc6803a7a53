package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	AccountNo  int64           `json:"account_no"`
	UserID     string          `json:"user_id"`
	Balance    decimal.Decimal `json:"balance"`
	IsBankrupt bool            `json:"is_bankrupt"`
	Version    int64           `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		AccountNo:  a.AccountNo,
		UserID:     a.UserID,
		Balance:    a.Balance,
		IsBankrupt: a.IsBankrupt,
		Version:    a.Version,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// EntryResponse represents a ledger entry in API responses.
type EntryResponse struct {
	ID           string          `json:"id"`
	AccountNo    int64           `json:"account_no"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
	Kind         string          `json:"kind"`
	LoanState    string          `json:"loan_state,omitempty"`
	TransferID   string          `json:"transfer_id,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// EntryFromDomain converts domain entry to response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	resp := &EntryResponse{
		ID:           e.ID,
		AccountNo:    e.AccountNo,
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Kind:         string(e.Kind),
		TransferID:   e.TransferID,
		CreatedAt:    e.CreatedAt,
	}

	if state, ok := e.LoanState(); ok {
		resp.LoanState = string(state)
	}

	return resp
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// TransferResponse represents both legs of a completed transfer.
type TransferResponse struct {
	TransferID string         `json:"transfer_id"`
	Sent       *EntryResponse `json:"sent"`
	Received   *EntryResponse `json:"received"`
}

// TransferFromDomain converts the two transfer legs to a response.
func TransferFromDomain(sent, received *domain.Entry) *TransferResponse {
	return &TransferResponse{
		TransferID: sent.TransferID,
		Sent:       EntryFromDomain(sent),
		Received:   EntryFromDomain(received),
	}
}

// StatementResponse represents an account statement.
type StatementResponse struct {
	Account     *AccountResponse `json:"account"`
	Entries     []*EntryResponse `json:"entries"`
	PeriodTotal decimal.Decimal  `json:"period_total"`
}

// StatementFromUseCase converts a statement to a response.
func StatementFromUseCase(s *usecase.Statement) *StatementResponse {
	return &StatementResponse{
		Account:     AccountFromDomain(s.Account),
		Entries:     EntriesFromDomain(s.Entries),
		PeriodTotal: s.PeriodTotal,
	}
}

// LoanListResponse represents an account's open loans.
type LoanListResponse struct {
	AccountNo int64            `json:"account_no"`
	Loans     []*EntryResponse `json:"loans"`
}

// ReconciliationResponse represents the result of reconciling one account.
type ReconciliationResponse struct {
	AccountNo         int64           `json:"account_no"`
	RecordedBalance   decimal.Decimal `json:"recorded_balance"`
	CalculatedBalance decimal.Decimal `json:"calculated_balance"`
	Difference        decimal.Decimal `json:"difference"`
	IsReconciled      bool            `json:"is_reconciled"`
	LastChecked       time.Time       `json:"last_checked"`
}

// ReconciliationFromUseCase converts a reconciliation result to a response.
func ReconciliationFromUseCase(r *usecase.ReconciliationResult) *ReconciliationResponse {
	return &ReconciliationResponse{
		AccountNo:         r.AccountNo,
		RecordedBalance:   r.RecordedBalance,
		CalculatedBalance: r.CalculatedBalance,
		Difference:        r.Difference,
		IsReconciled:      r.IsReconciled,
		LastChecked:       r.LastChecked,
	}
}

// ReconciliationReportResponse represents a full reconciliation run.
type ReconciliationReportResponse struct {
	TotalAccounts      int                       `json:"total_accounts"`
	ReconciledAccounts int                       `json:"reconciled_accounts"`
	Discrepancies      []*ReconciliationResponse `json:"discrepancies"`
	LedgerConsistent   bool                      `json:"ledger_consistent"`
	CheckedAt          time.Time                 `json:"checked_at"`
}

// ReconciliationReportFromUseCase converts a reconciliation report to a response.
func ReconciliationReportFromUseCase(r *usecase.ReconciliationReport) *ReconciliationReportResponse {
	discrepancies := make([]*ReconciliationResponse, len(r.Discrepancies))
	for i, d := range r.Discrepancies {
		discrepancies[i] = ReconciliationFromUseCase(d)
	}

	return &ReconciliationReportResponse{
		TotalAccounts:      r.TotalAccounts,
		ReconciledAccounts: r.ReconciledAccounts,
		Discrepancies:      discrepancies,
		LedgerConsistent:   r.LedgerConsistent,
		CheckedAt:          r.CheckedAt,
	}
}

// ErrorResponse represents an error in API responses. Constraint is set for
// business-rule rejections so clients can branch without parsing messages.
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message,omitempty"`
	Constraint string `json:"constraint,omitempty"`
}
