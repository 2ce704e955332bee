package models

import "time"

// PaymentMethod enumerates how a payment was made.
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCreditCard   PaymentMethod = "credit_card"
	PaymentMethodCheck        PaymentMethod = "check"
	PaymentMethodOther        PaymentMethod = "other"
)

// Payment records money received from a customer. Payments feed the
// per-customer transaction feed alongside invoices.
type Payment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// UserID is the owner of this payment (multi-tenant isolation).
	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	CustomerID uint      `gorm:"index;not null" json:"customerId"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	Amount        float64       `gorm:"not null" json:"amount"`
	Date          time.Time     `gorm:"not null" json:"date"`
	Description   string        `gorm:"size:500;not null" json:"description"`
	PaymentMethod PaymentMethod `gorm:"size:30;not null" json:"paymentMethod"`
	Reference     string        `gorm:"size:100" json:"reference,omitempty"`
}
