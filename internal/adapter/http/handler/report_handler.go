package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/iho/bankcore/internal/adapter/http/dto"
	"github.com/iho/bankcore/internal/domain"
	"github.com/iho/bankcore/internal/usecase"
)

// ReportService defines the behavior needed by ReportHandler.
type ReportService interface {
	Statement(ctx context.Context, input usecase.StatementInput) (*usecase.Statement, error)
	Loans(ctx context.Context, accountNo int64) ([]*domain.Entry, error)
}

// StatementCache caches rendered statement responses.
type StatementCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ReportHandler handles read-only reporting requests.
type ReportHandler struct {
	reportUC ReportService
	cache    StatementCache
	cacheTTL time.Duration
}

// NewReportHandler creates a new ReportHandler. The cache is optional.
func NewReportHandler(reportUC ReportService, cache StatementCache, cacheTTL time.Duration) *ReportHandler {
	return &ReportHandler{
		reportUC: reportUC,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// Statement returns an account statement, optionally over a date range. The
// range applies only when both start_date and end_date are given.
func (h *ReportHandler) Statement(w http.ResponseWriter, r *http.Request) {
	accountNo, err := parseAccountNo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account number", err.Error())
		return
	}

	startDate, err := parseDateQuery(r, "start_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start_date", err.Error())
		return
	}

	endDate, err := parseDateQuery(r, "end_date")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end_date", err.Error())
		return
	}

	// Only ranged statements that ended before today are cached: an open
	// statement moves with every operation, and a range ending today keeps
	// collecting entries until midnight.
	today := time.Now().UTC().Truncate(24 * time.Hour)
	cacheable := startDate != nil && endDate != nil && endDate.Before(today)

	var cacheKey string
	if cacheable && h.cache != nil {
		cacheKey = fmt.Sprintf("%d:%s:%s", accountNo, startDate.Format(dateLayout), endDate.Format(dateLayout))

		if cached, err := h.cache.Get(r.Context(), cacheKey); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "hit")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)

			return
		}
	}

	statement, err := h.reportUC.Statement(r.Context(), usecase.StatementInput{
		AccountNo: accountNo,
		StartDate: startDate,
		EndDate:   endDate,
		Limit:     parseIntQuery(r, "limit", 20),
		Offset:    parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeDomainError(w, "failed to build statement", err)
		return
	}

	body, err := json.Marshal(dto.StatementFromUseCase(statement))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode statement", err.Error())
		return
	}

	if cacheKey != "" {
		// Best effort; a failed cache write never fails the request.
		h.cache.Set(r.Context(), cacheKey, body, h.cacheTTL)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// Loans lists an account's pending and approved loans.
func (h *ReportHandler) Loans(w http.ResponseWriter, r *http.Request) {
	accountNo, err := parseAccountNo(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account number", err.Error())
		return
	}

	loans, err := h.reportUC.Loans(r.Context(), accountNo)
	if err != nil {
		writeDomainError(w, "failed to list loans", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.LoanListResponse{
		AccountNo: accountNo,
		Loans:     dto.EntriesFromDomain(loans),
	})
}
