package handlers

import (
	"net/http"

	"github.com/diewo77/ledgerpro/internal/auth"
	"github.com/diewo77/ledgerpro/internal/httpx"
	"github.com/diewo77/ledgerpro/internal/services"
	"gorm.io/gorm"
)

type CustomerHandler struct {
	customers *services.CustomerService
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{customers: services.NewCustomerService(db)}
}

func (h *CustomerHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	customers, pagination, err := h.customers.List(userID, services.CustomerListParams{
		Page:   queryInt(r, "page"),
		Limit:  queryInt(r, "limit"),
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, map[string]any{
		"customers":  customers,
		"pagination": pagination,
	})
}

func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var in services.CustomerInput
	if !decodeJSON(w, r, &in) {
		return
	}
	customer, err := h.customers.Create(userID, in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusCreated, customer)
}

func (h *CustomerHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	customer, err := h.customers.Get(userID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var in services.UpdateCustomerInput
	if !decodeJSON(w, r, &in) {
		return
	}
	customer, err := h.customers.Update(userID, id, in)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.customers.Delete(userID, id); err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, map[string]string{"message": "customer deleted"})
}

func (h *CustomerHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	transactions, err := h.customers.Transactions(userID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	httpx.Success(w, http.StatusOK, transactions)
}
