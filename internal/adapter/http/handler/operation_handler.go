package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/metrics"
	"github.com/iho/bankcore/internal/usecase"
)

// OperationService defines the behavior needed by OperationHandler.
type OperationService interface {
	Deposit(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error)
	Withdraw(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error)
	RequestLoan(ctx context.Context, accountNo int64, amount decimal.Decimal) (*domain.Entry, error)
	ApproveLoan(ctx context.Context, entryID string) (*domain.Entry, error)
	PayLoan(ctx context.Context, entryID string) (*domain.Entry, error)
	Transfer(ctx context.Context, fromAccountNo, toAccountNo int64, amount decimal.Decimal) (sent, received *domain.Entry, err error)
}

// OperationHandler handles balance-mutating HTTP requests.
type OperationHandler struct {
	operationUC OperationService
	metrics     *metrics.Metrics
}

// NewOperationHandler creates a new OperationHandler.
func NewOperationHandler(operationUC OperationService, m *metrics.Metrics) *OperationHandler {
	return &OperationHandler{operationUC: operationUC, metrics: m}
}

// Deposit credits an amount to an account.
func (h *OperationHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	accountNo, err := parseAccountNo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account number", err.Error())
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	entry, err := h.operationUC.Deposit(r.Context(), accountNo, req.Amount)
	if err != nil {
		h.recordRejection(usecase.OperationDeposit, err)
		writeDomainError(w, "failed to deposit", err)

		return
	}

	h.recordSuccess(usecase.OperationDeposit, req.Amount, start)
	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Withdraw debits an amount from an account.
func (h *OperationHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	accountNo, err := parseAccountNo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account number", err.Error())
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	entry, err := h.operationUC.Withdraw(r.Context(), accountNo, req.Amount)
	if err != nil {
		h.recordRejection(usecase.OperationWithdraw, err)
		writeDomainError(w, "failed to withdraw", err)

		return
	}

	h.recordSuccess(usecase.OperationWithdraw, req.Amount, start)
	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// Transfer moves an amount between two accounts.
func (h *OperationHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	sent, received, err := h.operationUC.Transfer(r.Context(), req.FromAccountNo, req.ToAccountNo, req.Amount)
	if err != nil {
		h.recordRejection(usecase.OperationTransfer, err)
		writeDomainError(w, "failed to transfer", err)

		return
	}

	h.recordSuccess(usecase.OperationTransfer, req.Amount, start)
	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(sent, received))
}

// RequestLoan records a pending loan request for an account.
func (h *OperationHandler) RequestLoan(w http.ResponseWriter, r *http.Request) {
	accountNo, err := parseAccountNo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account number", err.Error())
		return
	}

	var req dto.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	entry, err := h.operationUC.RequestLoan(r.Context(), accountNo, req.Amount)
	if err != nil {
		h.recordRejection(usecase.OperationLoanRequest, err)
		writeDomainError(w, "failed to request loan", err)

		return
	}

	h.recordSuccess(usecase.OperationLoanRequest, req.Amount, start)
	if h.metrics != nil {
		h.metrics.LoansRequested.Inc()
	}

	writeJSON(w, http.StatusCreated, dto.EntryFromDomain(entry))
}

// ApproveLoan approves a pending loan and credits its amount.
func (h *OperationHandler) ApproveLoan(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing loan entry ID", "")
		return
	}

	start := time.Now()

	entry, err := h.operationUC.ApproveLoan(r.Context(), entryID)
	if err != nil {
		h.recordRejection(usecase.OperationLoanApprove, err)
		writeDomainError(w, "failed to approve loan", err)

		return
	}

	h.recordSuccess(usecase.OperationLoanApprove, entry.Amount, start)
	if h.metrics != nil {
		h.metrics.LoansApproved.Inc()
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// PayLoan repays an approved loan in full.
func (h *OperationHandler) PayLoan(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")
	if entryID == "" {
		writeError(w, http.StatusBadRequest, "missing loan entry ID", "")
		return
	}

	start := time.Now()

	entry, err := h.operationUC.PayLoan(r.Context(), entryID)
	if err != nil {
		h.recordRejection(usecase.OperationLoanPay, err)
		writeDomainError(w, "failed to pay loan", err)

		return
	}

	h.recordSuccess(usecase.OperationLoanPay, entry.Amount, start)
	if h.metrics != nil {
		h.metrics.LoansRepaid.Inc()
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

func (h *OperationHandler) recordSuccess(kind usecase.OperationKind, amount decimal.Decimal, start time.Time) {
	if h.metrics == nil {
		return
	}

	h.metrics.OperationsExecuted.WithLabelValues(string(kind)).Inc()
	h.metrics.OperationAmount.WithLabelValues(string(kind)).Observe(amount.InexactFloat64())
	h.metrics.OperationDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
}

func (h *OperationHandler) recordRejection(kind usecase.OperationKind, err error) {
	if h.metrics == nil {
		return
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		h.metrics.OperationsRejected.WithLabelValues(string(kind), ve.Constraint).Inc()
	}
}
