package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/diewo77/ledgerpro/internal/models"
	"github.com/diewo77/ledgerpro/internal/validation"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// CustomerService owns customer CRUD and the per-customer transaction
// feed. Balance mutations live in applyBalanceDelta and are only driven
// by invoice lifecycle events, never by profile edits.
type CustomerService struct {
	db *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{db: db}
}

// CustomerInput is the payload for customer creation.
type CustomerInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Company string `json:"company"`
	TaxID   string `json:"taxId"`
	Notes   string `json:"notes"`
}

func (in CustomerInput) validate() validation.Violations {
	v := make(validation.Violations)
	validation.Required("name", in.Name, v)
	validation.Required("email", in.Email, v)
	return v
}

func (s *CustomerService) Create(userID uint, in CustomerInput) (*models.Customer, error) {
	if err := Violated(in.validate()); err != nil {
		return nil, err
	}
	customer := models.Customer{
		UserID:  userID,
		Name:    in.Name,
		Email:   strings.ToLower(in.Email),
		Phone:   in.Phone,
		Address: in.Address,
		Company: in.Company,
		TaxID:   in.TaxID,
		Notes:   in.Notes,
	}
	if err := s.db.Create(&customer).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "create customer")
	}
	return &customer, nil
}

func (s *CustomerService) Get(userID, id uint) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.Where("id = ? AND user_id = ?", id, userID).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, pkgerrors.Wrap(err, "load customer")
	}
	return &customer, nil
}

// CustomerListParams filters and paginates the owner's customers.
type CustomerListParams struct {
	Page   int
	Limit  int
	Search string
}

// List returns the owner's customers newest-first; search matches name,
// email or company case-insensitively.
func (s *CustomerService) List(userID uint, p CustomerListParams) ([]models.Customer, Pagination, error) {
	page, limit := normalizePage(p.Page, p.Limit)

	q := s.db.Model(&models.Customer{}).Where("user_id = ?", userID)
	if p.Search != "" {
		like := "%" + strings.ToLower(p.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(company) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, Pagination{}, pkgerrors.Wrap(err, "count customers")
	}

	var customers []models.Customer
	err := q.Order("created_at DESC, id DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&customers).Error
	if err != nil {
		return nil, Pagination{}, pkgerrors.Wrap(err, "list customers")
	}

	return customers, Pagination{Page: page, Limit: limit, Total: total, Pages: pageCount(total, limit)}, nil
}

// UpdateCustomerInput is a partial update; nil fields are left untouched.
// Balance is deliberately absent: it only moves through invoice events.
type UpdateCustomerInput struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Company *string `json:"company"`
	TaxID   *string `json:"taxId"`
	Notes   *string `json:"notes"`
}

func (in UpdateCustomerInput) validate() validation.Violations {
	v := make(validation.Violations)
	if in.Name != nil {
		validation.Required("name", *in.Name, v)
	}
	if in.Email != nil {
		validation.Required("email", *in.Email, v)
	}
	return v
}

func (s *CustomerService) Update(userID, id uint, in UpdateCustomerInput) (*models.Customer, error) {
	if err := Violated(in.validate()); err != nil {
		return nil, err
	}

	customer, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.Email != nil {
		customer.Email = strings.ToLower(*in.Email)
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.Company != nil {
		customer.Company = *in.Company
	}
	if in.TaxID != nil {
		customer.TaxID = *in.TaxID
	}
	if in.Notes != nil {
		customer.Notes = *in.Notes
	}

	// Omit balance so a stale read cannot overwrite concurrent delta
	// updates from the invoice lifecycle.
	if err := s.db.Omit("balance").Save(customer).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "update customer")
	}
	return customer, nil
}

// Delete removes the customer only. Its invoices keep existing; there is
// no cascade.
func (s *CustomerService) Delete(userID, id uint) error {
	res := s.db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Customer{})
	if res.Error != nil {
		return pkgerrors.Wrap(res.Error, "delete customer")
	}
	if res.RowsAffected == 0 {
		return ErrCustomerNotFound
	}
	return nil
}

// ApplyBalanceDelta adjusts the customer's balance atomically. Exposed
// for collaborators outside the invoice lifecycle.
func (s *CustomerService) ApplyBalanceDelta(userID, id uint, delta float64) error {
	return applyBalanceDelta(s.db, userID, id, delta)
}

// CustomerTransaction is one line of the merged invoice/payment feed.
type CustomerTransaction struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"` // invoice | payment
	Date        time.Time `json:"date"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// Transactions merges the customer's invoices and payments, newest first.
func (s *CustomerService) Transactions(userID, id uint) ([]CustomerTransaction, error) {
	if _, err := s.Get(userID, id); err != nil {
		return nil, err
	}

	var invoices []models.Invoice
	if err := s.db.Where("customer_id = ? AND user_id = ?", id, userID).
		Find(&invoices).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load customer invoices")
	}
	var payments []models.Payment
	if err := s.db.Where("customer_id = ? AND user_id = ?", id, userID).
		Find(&payments).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load customer payments")
	}

	transactions := make([]CustomerTransaction, 0, len(invoices)+len(payments))
	for _, inv := range invoices {
		transactions = append(transactions, CustomerTransaction{
			ID:          inv.ID,
			Type:        "invoice",
			Date:        inv.CreatedAt,
			Amount:      inv.Total,
			Description: "Invoice #" + inv.InvoiceNumber,
			Status:      string(inv.Status),
		})
	}
	for _, p := range payments {
		transactions = append(transactions, CustomerTransaction{
			ID:          p.ID,
			Type:        "payment",
			Date:        p.Date,
			Amount:      p.Amount,
			Description: p.Description,
			Status:      "paid",
		})
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}
