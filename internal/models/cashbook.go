package models

import "time"

// EntryType classifies a cashbook entry as money in or money out.
type EntryType string

const (
	EntryTypeIncome  EntryType = "income"
	EntryTypeExpense EntryType = "expense"
)

// Valid reports whether t is one of the enumerated entry types.
func (t EntryType) Valid() bool {
	return t == EntryTypeIncome || t == EntryTypeExpense
}

// CashbookEntry is a single dated income or expense line.
// Amounts are stored unsigned; the sign comes from the type when the
// ledger is accumulated.
type CashbookEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// UserID is the owner of this entry (multi-tenant isolation).
	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Date        time.Time `gorm:"not null;index" json:"date"`
	Description string    `gorm:"size:500;not null" json:"description"`
	Type        EntryType `gorm:"size:20;not null" json:"type"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	Reference   string    `gorm:"size:100" json:"reference,omitempty"`
}

// GetUserID implements the Ownable interface for authorization.
func (e *CashbookEntry) GetUserID() uint {
	return e.UserID
}

// SignedAmount returns the amount with the ledger sign applied:
// positive for income, negative for expense.
func (e *CashbookEntry) SignedAmount() float64 {
	if e.Type == EntryTypeExpense {
		return -e.Amount
	}
	return e.Amount
}
