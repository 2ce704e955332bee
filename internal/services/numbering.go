package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/diewo77/ledgerpro/internal/models"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

const (
	invoiceNumberPrefix = "INV-"

	// invoiceNumberSeed is the number assigned to an owner's first invoice.
	invoiceNumberSeed = 1001
)

// nextInvoiceNumber derives the next sequential number for the owner from
// their most recently created invoice. Numbering is per owner; uniqueness
// is ultimately enforced by the unique index on invoice_number, and
// callers retry on a duplicate-key rejection.
func nextInvoiceNumber(tx *gorm.DB, userID uint) (string, error) {
	var last models.Invoice
	err := tx.Select("invoice_number").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&last).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return formatInvoiceNumber(invoiceNumberSeed), nil
		}
		return "", pkgerrors.Wrap(err, "read last invoice number")
	}

	seq, ok := parseInvoiceNumber(last.InvoiceNumber)
	if !ok {
		return "", pkgerrors.Wrapf(ErrBadInvoiceNumber, "last number %q", last.InvoiceNumber)
	}
	return formatInvoiceNumber(seq + 1), nil
}

func formatInvoiceNumber(seq int) string {
	return fmt.Sprintf("%s%d", invoiceNumberPrefix, seq)
}

// parseInvoiceNumber extracts the numeric suffix of an INV-<n> number.
func parseInvoiceNumber(number string) (int, bool) {
	suffix, ok := strings.CutPrefix(number, invoiceNumberPrefix)
	if !ok {
		return 0, false
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil || seq <= 0 {
		return 0, false
	}
	return seq, true
}
