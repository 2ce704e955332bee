package services

import (
	"github.com/diewo77/ledgerpro/internal/models"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Pagination describes one page of a scoped listing.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// pageCount is ceil(total/limit).
func pageCount(total int64, limit int) int {
	return int((total + int64(limit) - 1) / int64(limit))
}

// applyBalanceDelta adjusts a customer's receivable balance by delta with
// a single SQL update scoped to the owner. Never read-modify-write:
// concurrent invoice operations against the same customer must not lose
// updates.
func applyBalanceDelta(tx *gorm.DB, userID, customerID uint, delta float64) error {
	res := tx.Model(&models.Customer{}).
		Where("id = ? AND user_id = ?", customerID, userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "apply balance delta")
	}
	if res.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// SignedLedgerTotal accumulates cashbook entries with their ledger sign:
// income adds, expense subtracts. Every report and the cashbook balance
// go through this one function.
func SignedLedgerTotal(entries []models.CashbookEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.SignedAmount()
	}
	return total
}
