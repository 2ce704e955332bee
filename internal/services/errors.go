package services

import (
	"errors"

	"github.com/diewo77/ledgerpro/internal/validation"
)

var (
	// ErrCustomerNotFound is returned when a customer does not exist or is
	// owned by a different user. The two cases are indistinguishable to the
	// caller on purpose.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInvoiceNotFound is returned when an invoice does not exist or is
	// owned by a different user.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrSupplierNotFound is returned when a supplier does not exist or is
	// owned by a different user.
	ErrSupplierNotFound = errors.New("supplier not found")

	// ErrEntryNotFound is returned when a cashbook entry does not exist or
	// is owned by a different user.
	ErrEntryNotFound = errors.New("cashbook entry not found")

	// ErrNumberConflict is returned when invoice creation keeps losing the
	// numbering race after retries. The caller may retry the creation.
	ErrNumberConflict = errors.New("invoice number conflict")

	// ErrBadInvoiceNumber is returned when the owner's last invoice number
	// does not match the INV-<n> shape. Surfacing this beats silently
	// issuing a malformed successor.
	ErrBadInvoiceNumber = errors.New("malformed invoice number")
)

// ValidationError carries field-level violations found before any
// persistence happens.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string { return "validation failed" }

// Violated returns a ValidationError when v is non-empty, nil otherwise.
func Violated(v validation.Violations) error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Violations: v}
}
