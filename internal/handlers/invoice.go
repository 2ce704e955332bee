package handlers

import (
	"net/http"

	"github.com/diewo77/ledgerpro/internal/auth"
	"github.com/diewo77/ledgerpro/internal/httpx"
	"github.com/diewo77/ledgerpro/internal/models"
	"github.com/diewo77/ledgerpro/internal/services"
	"gorm.io/gorm"
)

type InvoiceHandler struct {
	invoices *services.InvoiceService
}

func NewInvoiceHandler(db *gorm.DB) *InvoiceHandler {
	return &InvoiceHandler{invoices: services.NewInvoiceService(db)}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	invoices, pagination, err := h.invoices.List(userID, services.InvoiceListParams{
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
		Status: models.InvoiceStatus(r.URL.Query().Get("status")),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{
		"invoices":   invoices,
		"pagination": pagination,
	})
}

func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var in services.CreateInvoiceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	invoice, err := h.invoices.Create(userID, in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusCreated, invoice)
}

func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	invoice, err := h.invoices.Get(userID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.UpdateInvoiceInput
	if !decodeJSON(w, r, &in) {
		return
	}
	invoice, err := h.invoices.Update(userID, id, in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, invoice)
}

func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.invoices.Delete(userID, id); err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, map[string]string{"message": "invoice deleted"})
}

func (h *InvoiceHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	stats, err := h.invoices.Stats(userID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, stats)
}
