package services

import (
	"time"

	"github.com/diewo77/ledgerpro/internal/models"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ReportService derives financial summaries from invoices and the
// cashbook. Reports are read-only projections; nothing here mutates
// ledger state.
type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// DateRange bounds a report period. Nil ends are open.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

func (r DateRange) apply(q *gorm.DB, column string) *gorm.DB {
	if r.Start != nil {
		q = q.Where(column+" >= ?", *r.Start)
	}
	if r.End != nil {
		q = q.Where(column+" <= ?", *r.End)
	}
	return q
}

// SalesReport summarises invoiced revenue over a period.
type SalesReport struct {
	TotalSales       float64          `json:"totalSales"`
	TotalPaid        float64          `json:"totalPaid"`
	TotalOutstanding float64          `json:"totalOutstanding"`
	Invoices         []models.Invoice `json:"invoices"`
}

func (s *ReportService) Sales(userID uint, period DateRange) (*SalesReport, error) {
	q := s.db.Where("user_id = ?", userID)
	q = period.apply(q, "created_at")

	var invoices []models.Invoice
	if err := q.Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load invoices for sales report")
	}

	report := SalesReport{Invoices: invoices}
	for _, inv := range invoices {
		report.TotalSales += inv.Total
		if inv.IsPaid() {
			report.TotalPaid += inv.Total
		} else {
			report.TotalOutstanding += inv.Total
		}
	}
	return &report, nil
}

// ExpenseReport summarises cashbook expenses over a period.
type ExpenseReport struct {
	TotalExpenses float64                `json:"totalExpenses"`
	Expenses      []models.CashbookEntry `json:"expenses"`
}

func (s *ReportService) Expenses(userID uint, period DateRange) (*ExpenseReport, error) {
	q := s.db.Where("user_id = ? AND type = ?", userID, models.EntryTypeExpense)
	q = period.apply(q, "date")

	var entries []models.CashbookEntry
	if err := q.Order("date DESC").Find(&entries).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load expenses for report")
	}

	report := ExpenseReport{Expenses: entries}
	for _, e := range entries {
		report.TotalExpenses += e.Amount
	}
	return &report, nil
}

// ProfitLossReport nets sales against expenses for a period.
type ProfitLossReport struct {
	TotalSales    float64 `json:"totalSales"`
	TotalExpenses float64 `json:"totalExpenses"`
	Profit        float64 `json:"profit"`
	ProfitMargin  float64 `json:"profitMargin"`
}

func (s *ReportService) ProfitLoss(userID uint, period DateRange) (*ProfitLossReport, error) {
	sales, err := s.Sales(userID, period)
	if err != nil {
		return nil, err
	}
	expenses, err := s.Expenses(userID, period)
	if err != nil {
		return nil, err
	}

	report := ProfitLossReport{
		TotalSales:    sales.TotalSales,
		TotalExpenses: expenses.TotalExpenses,
		Profit:        sales.TotalSales - expenses.TotalExpenses,
	}
	if report.TotalSales != 0 {
		report.ProfitMargin = report.Profit / report.TotalSales * 100
	}
	return &report, nil
}

// BalanceSheetReport is a snapshot of assets and equity as of a date.
type BalanceSheetReport struct {
	AsOf               time.Time `json:"asOf"`
	Cash               float64   `json:"cash"`
	AccountsReceivable float64   `json:"accountsReceivable"`
	TotalAssets        float64   `json:"totalAssets"`
	AccountsPayable    float64   `json:"accountsPayable"`
	TotalLiabilities   float64   `json:"totalLiabilities"`
	Equity             float64   `json:"equity"`
}

func (s *ReportService) BalanceSheet(userID uint, asOf time.Time) (*BalanceSheetReport, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}

	var entries []models.CashbookEntry
	if err := s.db.Where("user_id = ? AND date <= ?", userID, asOf).
		Find(&entries).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load cashbook for balance sheet")
	}
	cash := SignedLedgerTotal(entries)

	var invoices []models.Invoice
	if err := s.db.Where("user_id = ? AND status <> ? AND created_at <= ?",
		userID, models.InvoiceStatusPaid, asOf).
		Find(&invoices).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load invoices for balance sheet")
	}
	var receivable float64
	for _, inv := range invoices {
		receivable += inv.Total
	}

	report := BalanceSheetReport{
		AsOf:               asOf,
		Cash:               cash,
		AccountsReceivable: receivable,
		TotalAssets:        cash + receivable,
	}
	report.Equity = report.TotalAssets - report.TotalLiabilities
	return &report, nil
}

// CashFlowLine is one movement in the cash flow statement.
type CashFlowLine struct {
	Date        time.Time `json:"date"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description"`
}

// CashFlowReport lists cash movements chronologically with running
// totals for the period.
type CashFlowReport struct {
	OpeningBalance float64        `json:"openingBalance"`
	TotalIncome    float64        `json:"totalIncome"`
	TotalExpenses  float64        `json:"totalExpenses"`
	ClosingBalance float64        `json:"closingBalance"`
	Lines          []CashFlowLine `json:"lines"`
}

func (s *ReportService) CashFlow(userID uint, period DateRange) (*CashFlowReport, error) {
	report := CashFlowReport{Lines: []CashFlowLine{}}

	if period.Start != nil {
		var before []models.CashbookEntry
		if err := s.db.Where("user_id = ? AND date < ?", userID, *period.Start).
			Find(&before).Error; err != nil {
			return nil, pkgerrors.Wrap(err, "load opening balance")
		}
		report.OpeningBalance = SignedLedgerTotal(before)
	}

	q := s.db.Where("user_id = ?", userID)
	q = period.apply(q, "date")

	var entries []models.CashbookEntry
	if err := q.Order("date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, pkgerrors.Wrap(err, "load cashbook for cash flow")
	}

	for _, e := range entries {
		report.Lines = append(report.Lines, CashFlowLine{
			Date:        e.Date,
			Type:        string(e.Type),
			Amount:      e.Amount,
			Description: e.Description,
		})
		if e.Type == models.EntryTypeIncome {
			report.TotalIncome += e.Amount
		} else {
			report.TotalExpenses += e.Amount
		}
	}
	report.ClosingBalance = report.OpeningBalance + report.TotalIncome - report.TotalExpenses
	return &report, nil
}
