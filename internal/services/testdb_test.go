package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/diewo77/ledgerpro/internal/db"
	"github.com/diewo77/ledgerpro/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB returns a fresh in-memory database named after the test.
// The pool is capped at one connection so concurrent tests exercise the
// transaction paths without tripping over sqlite busy errors.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))
	return conn
}

func createTestUser(t *testing.T, conn *gorm.DB, email string) *models.User {
	t.Helper()
	user := models.User{Name: "Test User", Email: email, Password: "x"}
	require.NoError(t, conn.Create(&user).Error)
	return &user
}

func createTestCustomer(t *testing.T, conn *gorm.DB, userID uint, name string) *models.Customer {
	t.Helper()
	customer := models.Customer{UserID: userID, Name: name, Email: name + "@example.com"}
	require.NoError(t, conn.Create(&customer).Error)
	return &customer
}

func testInvoiceInput(customerID uint, unitPrice float64) CreateInvoiceInput {
	return CreateInvoiceInput{
		CustomerID: customerID,
		Items: []InvoiceItemInput{
			{Description: "Consulting", Quantity: 1, UnitPrice: unitPrice, Amount: unitPrice},
		},
		DueDate: time.Now().Add(14 * 24 * time.Hour),
	}
}

func customerBalance(t *testing.T, conn *gorm.DB, id uint) float64 {
	t.Helper()
	var customer models.Customer
	require.NoError(t, conn.First(&customer, id).Error)
	return customer.Balance
}
