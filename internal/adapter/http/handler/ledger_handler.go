package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/infrastructure/metrics"
	"github.com/iho/bankcore/internal/usecase"
)

// ReconciliationService defines the behavior needed by LedgerHandler.
type ReconciliationService interface {
	ReconcileAccount(ctx context.Context, accountNo int64) (*usecase.ReconciliationResult, error)
	CheckLedgerConsistency(ctx context.Context) error
	GenerateReport(ctx context.Context) (*usecase.ReconciliationReport, error)
}

// LedgerHandler handles ledger-wide consistency and reconciliation requests.
type LedgerHandler struct {
	reconciliationUC ReconciliationService
	metrics          *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(reconciliationUC ReconciliationService, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{reconciliationUC: reconciliationUC, metrics: m}
}

// CheckConsistency verifies balances against the entry history.
func (h *LedgerHandler) CheckConsistency(w http.ResponseWriter, r *http.Request) {
	err := h.reconciliationUC.CheckLedgerConsistency(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrLedgerInconsistent) {
			h.recordConsistencyCheck("inconsistent")
			writeJSON(w, http.StatusConflict, map[string]any{
				"status":     "inconsistent",
				"consistent": false,
				"message":    err.Error(),
			})

			return
		}

		writeError(w, http.StatusInternalServerError, "failed to check consistency", err.Error())

		return
	}

	h.recordConsistencyCheck("consistent")
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "consistent",
		"consistent": true,
	})
}

// ReconcileAccount replays one account's history against its balance.
func (h *LedgerHandler) ReconcileAccount(w http.ResponseWriter, r *http.Request) {
	accountNo, err := parseAccountNo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account number", err.Error())
		return
	}

	result, err := h.reconciliationUC.ReconcileAccount(r.Context(), accountNo)
	if err != nil {
		writeDomainError(w, "failed to reconcile account", err)
		return
	}

	if h.metrics != nil {
		h.metrics.ReconciliationDrift.Set(result.Difference.Abs().InexactFloat64())
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromUseCase(result))
}

// Report reconciles every account and reports discrepancies.
func (h *LedgerHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconciliationUC.GenerateReport(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate report", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.ReconciliationRuns.Inc()
		h.metrics.UnreconciledAccounts.Set(float64(len(report.Discrepancies)))
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationReportFromUseCase(report))
}

func (h *LedgerHandler) recordConsistencyCheck(result string) {
	if h.metrics != nil {
		h.metrics.LedgerConsistencyChecks.WithLabelValues(result).Inc()
	}
}
