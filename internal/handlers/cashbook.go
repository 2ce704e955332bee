package handlers

import (
	"net/http"

	"github.com/diewo77/ledgerpro/internal/auth"
	"github.com/diewo77/ledgerpro/internal/httpx"
	"github.com/diewo77/ledgerpro/internal/services"
	"gorm.io/gorm"
)

// CashbookHandler serves cashbook entry CRUD plus the running balance.
// Responses are plain JSON, no envelope.
type CashbookHandler struct {
	cashbook *services.CashbookService
}

func NewCashbookHandler(db *gorm.DB) *CashbookHandler {
	return &CashbookHandler{cashbook: services.NewCashbookService(db)}
}

func (h *CashbookHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	entries, err := h.cashbook.List(userID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entries)
}

func (h *CashbookHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var in services.CashbookEntryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	entry, err := h.cashbook.Create(userID, in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *CashbookHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	entry, err := h.cashbook.Get(userID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *CashbookHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.UpdateCashbookEntryInput
	if !decodeJSON(w, r, &in) {
		return
	}
	entry, err := h.cashbook.Update(userID, id, in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, entry)
}

func (h *CashbookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.cashbook.Delete(userID, id); err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "entry deleted"})
}

func (h *CashbookHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	balance, err := h.cashbook.Balance(userID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]float64{"balance": balance})
}
