package models

import "time"

// Customer represents a party the business invoices.
// Balance is the running receivable: it must equal the accumulated effect
// of this customer's invoice lifecycle events (create adds total, paid
// transition and unpaid deletion subtract it). Every mutation goes through
// a single SQL delta update, never a read-modify-write.
type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// UserID is the owner of this customer (multi-tenant isolation).
	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Name    string `gorm:"size:255;not null" json:"name"`
	Email   string `gorm:"size:255;not null" json:"email"`
	Phone   string `gorm:"size:50" json:"phone,omitempty"`
	Address string `gorm:"size:500" json:"address,omitempty"`
	Company string `gorm:"size:255" json:"company,omitempty"`
	TaxID   string `gorm:"size:50" json:"taxId,omitempty"`
	Notes   string `gorm:"type:text" json:"notes,omitempty"`

	Balance float64 `gorm:"not null;default:0" json:"balance"`
}

// GetUserID implements the Ownable interface for authorization.
func (c *Customer) GetUserID() uint {
	return c.UserID
}
