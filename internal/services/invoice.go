package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/ledgerpro/internal/models"
	"github.com/diewo77/ledgerpro/internal/validation"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// numberAttempts bounds retries when concurrent creations race for the
// same invoice number.
const numberAttempts = 3

// InvoiceService owns the invoice lifecycle and its effect on customer
// balances. Every operation that touches both an invoice and a customer
// balance runs inside one transaction, and every balance mutation is a
// single SQL delta update.
type InvoiceService struct {
	db *gorm.DB
}

func NewInvoiceService(db *gorm.DB) *InvoiceService {
	return &InvoiceService{db: db}
}

// InvoiceItemInput is one requested line item.
type InvoiceItemInput struct {
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	Amount      float64 `json:"amount"`
}

// CreateInvoiceInput is the payload for invoice creation.
type CreateInvoiceInput struct {
	CustomerID uint                 `json:"customer"`
	Items      []InvoiceItemInput   `json:"items"`
	Tax        float64              `json:"tax"`
	Status     models.InvoiceStatus `json:"status"`
	DueDate    time.Time            `json:"dueDate"`
	Notes      string               `json:"notes"`
}

func (in CreateInvoiceInput) validate() validation.Violations {
	v := make(validation.Violations)
	if in.CustomerID == 0 {
		v["customer"] = "required"
	}
	validateItems(in.Items, v)
	validation.NonNegativeFloat("tax", in.Tax, v)
	if in.DueDate.IsZero() {
		v["dueDate"] = "required"
	}
	if in.Status != "" && !in.Status.Valid() {
		v["status"] = "invalid_status"
	}
	return v
}

func validateItems(items []InvoiceItemInput, v validation.Violations) {
	for i, item := range items {
		prefix := fmt.Sprintf("items[%d].", i)
		validation.Required(prefix+"description", item.Description, v)
		validation.MinInt(prefix+"quantity", item.Quantity, 1, v)
		validation.NonNegativeFloat(prefix+"unitPrice", item.UnitPrice, v)
		validation.NonNegativeFloat(prefix+"amount", item.Amount, v)
	}
}

func buildItems(inputs []InvoiceItemInput) []models.InvoiceItem {
	items := make([]models.InvoiceItem, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, models.InvoiceItem{
			Description: in.Description,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			Amount:      in.Amount,
		})
	}
	return items
}

// Create assigns the next invoice number, computes totals, persists the
// invoice and adds its total to the customer's balance, all in one
// transaction. A duplicate number from a concurrent creation is retried
// with a fresh read of the latest number.
func (s *InvoiceService) Create(userID uint, in CreateInvoiceInput) (*models.Invoice, error) {
	if err := Violated(in.validate()); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = models.InvoiceStatusDraft
	}

	for attempt := 0; attempt < numberAttempts; attempt++ {
		var created models.Invoice
		err := s.db.Transaction(func(tx *gorm.DB) error {
			var customer models.Customer
			if err := tx.Where("id = ? AND user_id = ?", in.CustomerID, userID).
				First(&customer).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCustomerNotFound
				}
				return pkgerrors.Wrap(err, "load customer")
			}

			number, err := nextInvoiceNumber(tx, userID)
			if err != nil {
				return err
			}

			items := buildItems(in.Items)
			subtotal, total := ComputeTotals(items, in.Tax)
			created = models.Invoice{
				UserID:        userID,
				InvoiceNumber: number,
				CustomerID:    in.CustomerID,
				Items:         items,
				Subtotal:      subtotal,
				Tax:           in.Tax,
				Total:         total,
				Status:        status,
				DueDate:       in.DueDate,
				Notes:         in.Notes,
			}
			if err := tx.Create(&created).Error; err != nil {
				return pkgerrors.Wrap(err, "create invoice")
			}
			return applyBalanceDelta(tx, userID, in.CustomerID, created.Total)
		})
		if err == nil {
			return s.Get(userID, created.ID)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the numbering race; the next attempt re-reads the
			// latest number.
			continue
		}
		return nil, err
	}
	return nil, ErrNumberConflict
}

// Get fetches one invoice scoped to the owner, customer populated.
func (s *InvoiceService) Get(userID, id uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.Where("id = ? AND user_id = ?", id, userID).
		Preload("Customer").
		Preload("Items").
		First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, pkgerrors.Wrap(err, "load invoice")
	}
	return &invoice, nil
}

// InvoiceListParams filters and paginates the owner's invoices.
type InvoiceListParams struct {
	Page   int
	Limit  int
	Status models.InvoiceStatus
	Search string
}

// List returns the owner's invoices newest-first with optional status and
// invoice-number search filters.
func (s *InvoiceService) List(userID uint, p InvoiceListParams) ([]models.Invoice, Pagination, error) {
	page, limit := normalizePage(p.Page, p.Limit)

	q := s.db.Model(&models.Invoice{}).Where("user_id = ?", userID)
	if p.Status != "" {
		q = q.Where("status = ?", p.Status)
	}
	if p.Search != "" {
		q = q.Where("LOWER(invoice_number) LIKE ?", "%"+strings.ToLower(p.Search)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, pkgerrors.Wrap(err, "count invoices")
	}

	var invoices []models.Invoice
	err := q.Preload("Customer").
		Preload("Items").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&invoices).Error
	if err != nil {
		return nil, Pagination{}, pkgerrors.Wrap(err, "list invoices")
	}

	return invoices, Pagination{Page: page, Limit: limit, Total: total, Pages: pageCount(total, limit)}, nil
}

// UpdateInvoiceInput is a partial update; nil fields are left untouched.
type UpdateInvoiceInput struct {
	Items   *[]InvoiceItemInput   `json:"items"`
	Tax     *float64              `json:"tax"`
	Status  *models.InvoiceStatus `json:"status"`
	DueDate *time.Time            `json:"dueDate"`
	Notes   *string               `json:"notes"`
}

func (in UpdateInvoiceInput) validate() validation.Violations {
	v := make(validation.Violations)
	if in.Items != nil {
		validateItems(*in.Items, v)
	}
	if in.Tax != nil {
		validation.NonNegativeFloat("tax", *in.Tax, v)
	}
	if in.Status != nil && !in.Status.Valid() {
		v["status"] = "invalid_status"
	}
	if in.DueDate != nil && in.DueDate.IsZero() {
		v["dueDate"] = "invalid_date"
	}
	return v
}

// Update applies a partial update. When the invoice first enters paid the
// customer balance drops by the invoice's total as it stood before the
// update; re-marking an already paid invoice is a balance no-op. Item or
// tax changes recompute subtotal and total.
func (s *InvoiceService) Update(userID, id uint, in UpdateInvoiceInput) (*models.Invoice, error) {
	if err := Violated(in.validate()); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Where("id = ? AND user_id = ?", id, userID).
			Preload("Items").
			First(&invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return pkgerrors.Wrap(err, "load invoice")
		}

		if in.Status != nil && *in.Status == models.InvoiceStatusPaid && !invoice.IsPaid() {
			if err := applyBalanceDelta(tx, userID, invoice.CustomerID, -invoice.Total); err != nil &&
				!errors.Is(err, ErrCustomerNotFound) {
				// A deleted customer no longer has a balance to adjust.
				return err
			}
		}

		if in.Items != nil {
			if err := tx.Where("invoice_id = ?", invoice.ID).
				Delete(&models.InvoiceItem{}).Error; err != nil {
				return pkgerrors.Wrap(err, "replace invoice items")
			}
			invoice.Items = buildItems(*in.Items)
		}
		if in.Tax != nil {
			invoice.Tax = *in.Tax
		}
		if in.Items != nil || in.Tax != nil {
			invoice.Subtotal, invoice.Total = ComputeTotals(invoice.Items, invoice.Tax)
		}
		if in.Status != nil {
			invoice.Status = *in.Status
		}
		if in.DueDate != nil {
			invoice.DueDate = *in.DueDate
		}
		if in.Notes != nil {
			invoice.Notes = *in.Notes
		}

		if err := tx.Save(&invoice).Error; err != nil {
			return pkgerrors.Wrap(err, "update invoice")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.Get(userID, id)
}

// Delete removes an invoice. An invoice deleted before being paid gives
// its total back by decrementing the customer balance; a paid invoice was
// already taken off the balance when it became paid.
func (s *InvoiceService) Delete(userID, id uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.Where("id = ? AND user_id = ?", id, userID).
			First(&invoice).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvoiceNotFound
			}
			return pkgerrors.Wrap(err, "load invoice")
		}

		if !invoice.IsPaid() {
			if err := applyBalanceDelta(tx, userID, invoice.CustomerID, -invoice.Total); err != nil &&
				!errors.Is(err, ErrCustomerNotFound) {
				return err
			}
		}

		if err := tx.Where("invoice_id = ?", invoice.ID).
			Delete(&models.InvoiceItem{}).Error; err != nil {
			return pkgerrors.Wrap(err, "delete invoice items")
		}
		if err := tx.Delete(&invoice).Error; err != nil {
			return pkgerrors.Wrap(err, "delete invoice")
		}
		return nil
	})
}

// InvoiceStats is the fixed-shape stats response: per-status sums plus
// their grand total.
type InvoiceStats struct {
	Total   float64 `json:"total"`
	Paid    float64 `json:"paid"`
	Overdue float64 `json:"overdue"`
	Draft   float64 `json:"draft"`
	Sent    float64 `json:"sent"`
}

// StatusTotals sums invoice totals per status for the owner. The map
// carries every status present so nothing is dropped at this level.
func (s *InvoiceService) StatusTotals(userID uint) (map[models.InvoiceStatus]float64, error) {
	var rows []struct {
		Status models.InvoiceStatus
		Sum    float64
	}
	err := s.db.Model(&models.Invoice{}).
		Select("status, COALESCE(SUM(total), 0) AS sum").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, pkgerrors.Wrap(err, "aggregate invoices by status")
	}

	totals := make(map[models.InvoiceStatus]float64, len(rows))
	for _, row := range rows {
		totals[row.Status] = row.Sum
	}
	return totals, nil
}

// Stats projects the per-status sums onto the fixed response shape. The
// grand total covers the four tracked statuses.
func (s *InvoiceService) Stats(userID uint) (InvoiceStats, error) {
	totals, err := s.StatusTotals(userID)
	if err != nil {
		return InvoiceStats{}, err
	}
	stats := InvoiceStats{
		Paid:    totals[models.InvoiceStatusPaid],
		Overdue: totals[models.InvoiceStatusOverdue],
		Draft:   totals[models.InvoiceStatusDraft],
		Sent:    totals[models.InvoiceStatusSent],
	}
	stats.Total = stats.Paid + stats.Overdue + stats.Draft + stats.Sent
	return stats, nil
}
