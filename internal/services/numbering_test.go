package services

import (
	"errors"
	"testing"
	"time"

	"github.com/diewo77/ledgerpro/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceNumber(t *testing.T) {
	tests := []struct {
		number string
		seq    int
		ok     bool
	}{
		{"INV-1001", 1001, true},
		{"INV-1", 1, true},
		{"INV-0", 0, false},
		{"INV--5", 0, false},
		{"INV-abc", 0, false},
		{"1001", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		seq, ok := parseInvoiceNumber(tt.number)
		assert.Equal(t, tt.ok, ok, tt.number)
		assert.Equal(t, tt.seq, seq, tt.number)
	}
}

func TestFirstInvoiceNumberIsSeed(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, "owner@example.com")
	customer := createTestCustomer(t, conn, user.ID, "Acme")

	svc := NewInvoiceService(conn)
	invoice, err := svc.Create(user.ID, testInvoiceInput(customer.ID, 100))
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", invoice.InvoiceNumber)
}

func TestInvoiceNumbersIncrement(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, "owner@example.com")
	customer := createTestCustomer(t, conn, user.ID, "Acme")

	svc := NewInvoiceService(conn)
	for i, want := range []string{"INV-1001", "INV-1002", "INV-1003"} {
		invoice, err := svc.Create(user.ID, testInvoiceInput(customer.ID, float64(10*(i+1))))
		require.NoError(t, err)
		assert.Equal(t, want, invoice.InvoiceNumber)
	}
}

func TestInvoiceNumberingIsPerOwner(t *testing.T) {
	conn := openTestDB(t)
	alice := createTestUser(t, conn, "alice@example.com")
	bob := createTestUser(t, conn, "bob@example.com")
	aliceCustomer := createTestCustomer(t, conn, alice.ID, "Acme")
	bobCustomer := createTestCustomer(t, conn, bob.ID, "Globex")

	svc := NewInvoiceService(conn)
	first, err := svc.Create(alice.ID, testInvoiceInput(aliceCustomer.ID, 100))
	require.NoError(t, err)
	second, err := svc.Create(alice.ID, testInvoiceInput(aliceCustomer.ID, 100))
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", first.InvoiceNumber)
	assert.Equal(t, "INV-1002", second.InvoiceNumber)

	// Bob's sequence is independent of Alice's.
	bobFirst, err := svc.Create(bob.ID, testInvoiceInput(bobCustomer.ID, 50))
	require.NoError(t, err)
	assert.Equal(t, "INV-1001", bobFirst.InvoiceNumber)
}

func TestMalformedLastNumberSurfaces(t *testing.T) {
	conn := openTestDB(t)
	user := createTestUser(t, conn, "owner@example.com")
	customer := createTestCustomer(t, conn, user.ID, "Acme")

	legacy := models.Invoice{
		UserID:        user.ID,
		InvoiceNumber: "LEGACY-7",
		CustomerID:    customer.ID,
		Status:        models.InvoiceStatusDraft,
		DueDate:       time.Now(),
	}
	require.NoError(t, conn.Create(&legacy).Error)

	svc := NewInvoiceService(conn)
	_, err := svc.Create(user.ID, testInvoiceInput(customer.ID, 100))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadInvoiceNumber))
}
