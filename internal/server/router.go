package server

import (
	"context"
	"net/http"

	"github.com/diewo77/ledgerpro/internal/auth"
	"github.com/diewo77/ledgerpro/internal/handlers"
	"github.com/diewo77/ledgerpro/internal/httpx"
	"github.com/diewo77/ledgerpro/internal/models"
	"gorm.io/gorm"
)

// New builds the full HTTP handler: routes, auth and the logging and
// recovery middleware chain.
func New(db *gorm.DB) http.Handler {
	mux := http.NewServeMux()

	authH := handlers.NewAuthHandler(db)
	customerH := handlers.NewCustomerHandler(db)
	invoiceH := handlers.NewInvoiceHandler(db)
	supplierH := handlers.NewSupplierHandler(db)
	cashbookH := handlers.NewCashbookHandler(db)
	reportH := handlers.NewReportHandler(db)

	// Tokens for deleted accounts stop working immediately.
	auth.SetUserVerifier(func(ctx context.Context, uid uint) bool {
		var count int64
		db.WithContext(ctx).Model(&models.User{}).Where("id = ?", uid).Count(&count)
		return count > 0
	})

	mux.HandleFunc("GET /health", health)
	mux.HandleFunc("GET /healthz", healthz(db))

	mux.HandleFunc("POST /api/auth/register", authH.Register)
	mux.HandleFunc("POST /api/auth/login", authH.Login)
	mux.HandleFunc("POST /api/auth/forgot-password", authH.ForgotPassword)
	mux.Handle("GET /api/auth/me", requireAuth(authH.Me))
	mux.Handle("PATCH /api/auth/me", requireAuth(authH.UpdateMe))

	mux.Handle("GET /api/customers", requireAuth(customerH.List))
	mux.Handle("POST /api/customers", requireAuth(customerH.Create))
	mux.Handle("GET /api/customers/{id}", requireAuth(customerH.Get))
	mux.Handle("PATCH /api/customers/{id}", requireAuth(customerH.Update))
	mux.Handle("DELETE /api/customers/{id}", requireAuth(customerH.Delete))
	mux.Handle("GET /api/customers/{id}/transactions", requireAuth(customerH.Transactions))

	mux.Handle("GET /api/invoices/stats", requireAuth(invoiceH.Stats))
	mux.Handle("GET /api/invoices", requireAuth(invoiceH.List))
	mux.Handle("POST /api/invoices", requireAuth(invoiceH.Create))
	mux.Handle("GET /api/invoices/{id}", requireAuth(invoiceH.Get))
	mux.Handle("PATCH /api/invoices/{id}", requireAuth(invoiceH.Update))
	mux.Handle("DELETE /api/invoices/{id}", requireAuth(invoiceH.Delete))

	mux.Handle("GET /api/suppliers", requireAuth(supplierH.List))
	mux.Handle("POST /api/suppliers", requireAuth(supplierH.Create))
	mux.Handle("GET /api/suppliers/{id}", requireAuth(supplierH.Get))
	mux.Handle("PUT /api/suppliers/{id}", requireAuth(supplierH.Update))
	mux.Handle("DELETE /api/suppliers/{id}", requireAuth(supplierH.Delete))

	mux.Handle("GET /api/cashbook", requireAuth(cashbookH.List))
	mux.Handle("GET /api/cashbook/balance", requireAuth(cashbookH.Balance))
	mux.Handle("POST /api/cashbook", requireAuth(cashbookH.Create))
	mux.Handle("GET /api/cashbook/{id}", requireAuth(cashbookH.Get))
	mux.Handle("PUT /api/cashbook/{id}", requireAuth(cashbookH.Update))
	mux.Handle("DELETE /api/cashbook/{id}", requireAuth(cashbookH.Delete))

	mux.Handle("GET /api/reports/sales", requireAuth(reportH.Sales))
	mux.Handle("GET /api/reports/expenses", requireAuth(reportH.Expenses))
	mux.Handle("GET /api/reports/profit-loss", requireAuth(reportH.ProfitLoss))
	mux.Handle("GET /api/reports/balance-sheet", requireAuth(reportH.BalanceSheet))
	mux.Handle("GET /api/reports/cash-flow", requireAuth(reportH.CashFlow))

	return withRecover(withLogging(auth.Middleware(mux)))
}

func requireAuth(h http.HandlerFunc) http.Handler {
	return auth.RequireAuth(h)
}

func health(w http.ResponseWriter, _ *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// healthz also checks database connectivity.
func healthz(db *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
