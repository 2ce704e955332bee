package models

import "time"

// Supplier represents a party the business purchases from.
type Supplier struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// UserID is the owner of this supplier (multi-tenant isolation).
	UserID uint `gorm:"index;not null" json:"userId"`
	User   User `gorm:"foreignKey:UserID" json:"-"`

	Name          string `gorm:"size:255;not null" json:"name"`
	ContactPerson string `gorm:"size:255" json:"contactPerson,omitempty"`
	Email         string `gorm:"size:255" json:"email,omitempty"`
	Phone         string `gorm:"size:50" json:"phone,omitempty"`
	Address       string `gorm:"size:500" json:"address,omitempty"`
	TaxNumber     string `gorm:"size:50" json:"taxNumber,omitempty"`
	Notes         string `gorm:"type:text" json:"notes,omitempty"`

	IsActive bool `gorm:"default:true" json:"isActive"`
}

// GetUserID implements the Ownable interface for authorization.
func (s *Supplier) GetUserID() uint {
	return s.UserID
}
