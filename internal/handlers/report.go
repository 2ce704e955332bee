package handlers

import (
	"net/http"
	"time"

	"github.com/diewo77/ledgerpro/internal/auth"
	"github.com/diewo77/ledgerpro/internal/httpx"
	"github.com/diewo77/ledgerpro/internal/services"
	"gorm.io/gorm"
)

// ReportHandler serves the financial report endpoints. Responses are
// plain JSON, no envelope.
type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(db *gorm.DB) *ReportHandler {
	return &ReportHandler{reports: services.NewReportService(db)}
}

// dateRange reads optional startDate/endDate query params (YYYY-MM-DD).
// An end date covers its whole day.
func dateRange(r *http.Request) (services.DateRange, bool) {
	var period services.DateRange
	if raw := r.URL.Query().Get("startDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return period, false
		}
		period.Start = &t
	}
	if raw := r.URL.Query().Get("endDate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return period, false
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		period.End = &end
	}
	return period, true
}

func (h *ReportHandler) Sales(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	period, ok := dateRange(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
		return
	}
	report, err := h.reports.Sales(userID, period)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *ReportHandler) Expenses(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	period, ok := dateRange(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
		return
	}
	report, err := h.reports.Expenses(userID, period)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *ReportHandler) ProfitLoss(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	period, ok := dateRange(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
		return
	}
	report, err := h.reports.ProfitLoss(userID, period)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var asOf time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
			return
		}
		asOf = t.Add(24*time.Hour - time.Nanosecond)
	}
	report, err := h.reports.BalanceSheet(userID, asOf)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *ReportHandler) CashFlow(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	period, ok := dateRange(r)
	if !ok {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_date", nil)
		return
	}
	report, err := h.reports.CashFlow(userID, period)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}
