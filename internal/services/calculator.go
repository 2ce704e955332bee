package services

import "github.com/diewo77/ledgerpro/internal/models"

// ComputeTotals derives an invoice's subtotal and total from its line
// items and tax amount. Pure; must be called whenever items or tax change
// so the stored totals never go stale.
func ComputeTotals(items []models.InvoiceItem, tax float64) (subtotal, total float64) {
	for _, item := range items {
		subtotal += item.Amount
	}
	total = subtotal + tax
	return subtotal, total
}
