package services

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
)

const recentActivityLimit = 8

// DashboardService aggregates every collection into the overview
type DashboardService struct {
	repos *repository.Repositories
	now   func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repos *repository.Repositories) *DashboardService {
	return &DashboardService{repos: repos, now: time.Now}
}

// Summary computes totals, payment alerts and the recent activity feed
func (s *DashboardService) Summary(ctx context.Context) (*models.DashboardSummary, error) {
	employees, err := s.repos.Employee.All(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repos.Expense.All(ctx)
	if err != nil {
		return nil, err
	}
	quotations, err := s.repos.Quotation.All(ctx)
	if err != nil {
		return nil, err
	}
	invoices, err := s.repos.Invoice.All(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.repos.Payment.All(ctx)
	if err != nil {
		return nil, err
	}

	summary := &models.DashboardSummary{
		TotalEmployees:  len(employees),
		PendingInvoices: make([]models.PaymentAlert, 0),
		PartialInvoices: make([]models.PaymentAlert, 0),
	}

	payroll := decimal.Zero
	for _, e := range employees {
		payroll = payroll.Add(decimal.NewFromFloat(e.MonthlyEstimate()))
	}

	now := s.now()
	totalExpenses, monthExpenses := decimal.Zero, decimal.Zero
	for _, e := range expenses {
		amount := decimal.NewFromFloat(e.Amount)
		totalExpenses = totalExpenses.Add(amount)
		if d, err := ledger.ParseDate(e.Date); err == nil && d.Year() == now.Year() && d.Month() == now.Month() {
			monthExpenses = monthExpenses.Add(amount)
		}
	}

	totalQuotations := decimal.Zero
	for _, q := range quotations {
		totalQuotations = totalQuotations.Add(decimal.NewFromFloat(q.GrandTotal))
	}

	totalInvoices, outstanding := decimal.Zero, decimal.Zero
	for _, inv := range invoices {
		totalInvoices = totalInvoices.Add(decimal.NewFromFloat(inv.GrandTotal))
		outstanding = outstanding.Add(decimal.NewFromFloat(inv.BalanceAmount))

		switch inv.PaymentStatus {
		case models.InvoiceStatusPending:
			summary.PendingInvoices = append(summary.PendingInvoices, models.PaymentAlert{
				InvoiceID: inv.ID, InvoiceNo: inv.InvoiceNo, Client: inv.Client,
				Status: inv.PaymentStatus, Amount: inv.GrandTotal,
			})
		case models.InvoiceStatusPartial:
			summary.PartialInvoices = append(summary.PartialInvoices, models.PaymentAlert{
				InvoiceID: inv.ID, InvoiceNo: inv.InvoiceNo, Client: inv.Client,
				Status: inv.PaymentStatus, Amount: inv.BalanceAmount,
			})
		}
	}

	totalPayments := decimal.Zero
	for _, p := range payments {
		totalPayments = totalPayments.Add(decimal.NewFromFloat(p.Amount))
	}

	summary.TotalExpenses = totalExpenses.Round(2).InexactFloat64()
	summary.MonthlyExpenses = monthExpenses.Round(2).InexactFloat64()
	summary.TotalQuotations = totalQuotations.Round(2).InexactFloat64()
	summary.TotalInvoices = totalInvoices.Round(2).InexactFloat64()
	summary.TotalPayments = totalPayments.Round(2).InexactFloat64()
	summary.OutstandingAmount = outstanding.Round(2).InexactFloat64()
	summary.MonthlyPayrollEstimate = payroll.Round(2).InexactFloat64()
	summary.RecentActivity = recentActivity(expenses, invoices, quotations, payments)
	summary.Formatted = map[string]string{
		"totalExpenses":          ledger.FormatCurrency(summary.TotalExpenses),
		"monthlyExpenses":        ledger.FormatCurrency(summary.MonthlyExpenses),
		"totalQuotations":        ledger.FormatCurrency(summary.TotalQuotations),
		"totalInvoices":          ledger.FormatCurrency(summary.TotalInvoices),
		"totalPayments":          ledger.FormatCurrency(summary.TotalPayments),
		"outstandingAmount":      ledger.FormatCurrency(summary.OutstandingAmount),
		"monthlyPayrollEstimate": ledger.FormatCurrency(summary.MonthlyPayrollEstimate),
	}

	return summary, nil
}

// recentActivity takes the last 3 expenses, 2 invoices, 2 quotations and 3 payments,
// newest first, capped at 8
func recentActivity(expenses []models.Expense, invoices []models.Invoice, quotations []models.Quotation, payments []models.Payment) []models.ActivityEntry {
	entries := make([]models.ActivityEntry, 0, 10)

	for _, e := range lastN(expenses, 3) {
		entries = append(entries, models.ActivityEntry{
			Type: models.ActivityExpense, ID: e.ID, Title: e.Description,
			Subtitle: e.Category, Amount: e.Amount, CreatedAt: e.CreatedAt,
		})
	}
	for _, inv := range lastN(invoices, 2) {
		entries = append(entries, models.ActivityEntry{
			Type: models.ActivityInvoice, ID: inv.ID, Title: inv.InvoiceNo,
			Subtitle: inv.Client, Amount: inv.GrandTotal, CreatedAt: inv.CreatedAt,
		})
	}
	for _, q := range lastN(quotations, 2) {
		entries = append(entries, models.ActivityEntry{
			Type: models.ActivityQuotation, ID: q.ID, Title: q.QuotationNo,
			Subtitle: q.Client, Amount: q.GrandTotal, CreatedAt: q.CreatedAt,
		})
	}
	for _, p := range lastN(payments, 3) {
		entries = append(entries, models.ActivityEntry{
			Type: models.ActivityPayment, ID: p.ID, Title: p.InvoiceNo,
			Subtitle: p.Method, Amount: p.Amount, CreatedAt: p.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return models.ParseTimestamp(entries[i].CreatedAt).After(models.ParseTimestamp(entries[j].CreatedAt))
	})
	if len(entries) > recentActivityLimit {
		entries = entries[:recentActivityLimit]
	}
	return entries
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
