package models

import "time"

// InvoiceStatus represents the status of an invoice.
//
// Status is a validated enum, not a transition graph: any enumerated value
// may be set from any other. The only hard semantics are the customer
// balance side effects when an invoice enters paid or is deleted unpaid.
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
)

// Valid reports whether s is one of the enumerated statuses.
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled:
		return true
	}
	return false
}

// Invoice represents a sales invoice.
// Subtotal is always the sum of item amounts and Total = Subtotal + Tax;
// both are recomputed whenever items or tax change.
type Invoice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// UserID is the owner of this invoice (multi-tenant isolation).
	UserID uint `gorm:"index;uniqueIndex:idx_owner_invoice_number;not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	// InvoiceNumber is the externally visible sequential number, INV-<n>,
	// unique per owner. The composite unique index is the hard constraint
	// behind the numbering race; two owners each start at INV-1001.
	InvoiceNumber string `gorm:"size:50;uniqueIndex:idx_owner_invoice_number;not null" json:"invoiceNumber"`

	CustomerID uint      `gorm:"index;not null" json:"customerId"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID" json:"items"`

	Subtotal float64       `gorm:"not null" json:"subtotal"`
	Tax      float64       `gorm:"not null" json:"tax"`
	Total    float64       `gorm:"not null" json:"total"`
	Status   InvoiceStatus `gorm:"size:20;index;default:'draft'" json:"status"`
	DueDate  time.Time     `gorm:"not null" json:"dueDate"`
	Notes    string        `gorm:"type:text" json:"notes,omitempty"`
}

// GetUserID implements the Ownable interface for authorization.
func (i *Invoice) GetUserID() uint {
	return i.UserID
}

// IsPaid returns true if the invoice has been settled.
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}

// InvoiceItem is a line on an invoice. Items have no independent
// lifecycle; they are replaced wholesale when an invoice's items change.
type InvoiceItem struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	InvoiceID uint `gorm:"index;not null" json:"-"`

	Description string  `gorm:"size:500;not null" json:"description"`
	Quantity    int     `gorm:"not null" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unitPrice"`
	Amount      float64 `gorm:"not null" json:"amount"`
}
