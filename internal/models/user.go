package models

import "time"

// UserRole is the coarse role assigned to an account.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

// User is an account that owns customers, invoices and cashbook entries.
// The user id is the owner reference every scoped query filters on.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string   `gorm:"size:255;not null" json:"name"`
	Email    string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string   `gorm:"size:255;not null" json:"-"`
	Role     UserRole `gorm:"size:20;default:'user'" json:"role"`
	Company  string   `gorm:"size:255" json:"company,omitempty"`
	Phone    string   `gorm:"size:50" json:"phone,omitempty"`

	Preferences UserPreferences `gorm:"embedded;embeddedPrefix:pref_" json:"preferences"`
}

// UserPreferences holds notification settings.
type UserPreferences struct {
	EmailNotifications bool `gorm:"default:true" json:"emailNotifications"`
	PaymentReminders   bool `gorm:"default:true" json:"paymentReminders"`
	MonthlyReports     bool `gorm:"default:true" json:"monthlyReports"`
}
