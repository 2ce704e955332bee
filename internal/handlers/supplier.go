package handlers

import (
	"net/http"

	"github.com/diewo77/ledgerpro/internal/auth"
	"github.com/diewo77/ledgerpro/internal/httpx"
	"github.com/diewo77/ledgerpro/internal/services"
	"gorm.io/gorm"
)

// SupplierHandler serves supplier CRUD. Responses are plain JSON, no
// envelope.
type SupplierHandler struct {
	suppliers *services.SupplierService
}

func NewSupplierHandler(db *gorm.DB) *SupplierHandler {
	return &SupplierHandler{suppliers: services.NewSupplierService(db)}
}

func (h *SupplierHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	suppliers, err := h.suppliers.List(userID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, suppliers)
}

func (h *SupplierHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var in services.SupplierInput
	if !decodeJSON(w, r, &in) {
		return
	}
	supplier, err := h.suppliers.Create(userID, in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, supplier)
}

func (h *SupplierHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	supplier, err := h.suppliers.Get(userID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *SupplierHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.SupplierInput
	if !decodeJSON(w, r, &in) {
		return
	}
	supplier, err := h.suppliers.Update(userID, id, in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *SupplierHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.suppliers.Delete(userID, id); err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"message": "supplier deleted"})
}
