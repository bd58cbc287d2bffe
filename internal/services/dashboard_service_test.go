package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/models"
)

func TestDashboardService_Summary(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Employee.Create(ctx, EmployeeInput{Name: "Ali", Role: "Mason", DailyWage: 100})
	require.NoError(t, err)
	_, err = svcs.Employee.Create(ctx, EmployeeInput{Name: "Omar", Role: "Driver", DailyWage: 50})
	require.NoError(t, err)

	_, err = svcs.Expense.Create(ctx, ExpenseInput{Description: "Fuel", Amount: 80, Category: models.CategoryTravel, Date: "02-03-2025"})
	require.NoError(t, err)
	_, err = svcs.Expense.Create(ctx, ExpenseInput{Description: "Rent", Amount: 1000, Category: models.CategoryRent, Date: "01-02-2025"})
	require.NoError(t, err)

	pending := createInvoice(t, svcs, "1000")
	partial := createInvoice(t, svcs, "500")
	_, _, err = svcs.Payment.Create(ctx, PaymentInput{InvoiceID: partial.ID, Method: models.PaymentMethodCash, Amount: 200})
	require.NoError(t, err)

	summary, err := svcs.Dashboard.Summary(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.TotalEmployees)
	assert.Equal(t, 4500.0, summary.MonthlyPayrollEstimate)
	assert.Equal(t, 1080.0, summary.TotalExpenses)
	assert.Equal(t, 80.0, summary.MonthlyExpenses)
	assert.Equal(t, 1500.0, summary.TotalInvoices)
	assert.Equal(t, 200.0, summary.TotalPayments)
	assert.Equal(t, 1300.0, summary.OutstandingAmount)
	assert.Equal(t, "﷼ 1,300.00", summary.Formatted["outstandingAmount"])

	require.Len(t, summary.PendingInvoices, 1)
	assert.Equal(t, pending.ID, summary.PendingInvoices[0].InvoiceID)
	assert.Equal(t, 1000.0, summary.PendingInvoices[0].Amount)
	require.Len(t, summary.PartialInvoices, 1)
	assert.Equal(t, 300.0, summary.PartialInvoices[0].Amount, "partial alerts show the balance")

	// 2 expenses, the last 2 invoices and 1 payment
	assert.Len(t, summary.RecentActivity, 5)
}

func TestRecentActivity_NewestFirstCappedAtEight(t *testing.T) {
	expenses := []models.Expense{
		{ID: "x1", CreatedAt: "2025-03-01T10:00:00Z"},
		{ID: "x2", CreatedAt: "2025-03-02T10:00:00Z"},
		{ID: "x3", CreatedAt: "2025-03-03T10:00:00Z"},
		{ID: "x4", CreatedAt: "2025-03-04T10:00:00Z"},
	}
	invoices := []models.Invoice{
		{ID: "v1", CreatedAt: "2025-03-05T10:00:00Z"},
		{ID: "v2", CreatedAt: "2025-03-06T10:00:00Z"},
		{ID: "v3", CreatedAt: "2025-03-07T10:00:00Z"},
	}
	quotations := []models.Quotation{
		{ID: "q1", CreatedAt: "2025-02-01T10:00:00Z"},
		{ID: "q2", CreatedAt: "2025-02-02T10:00:00Z"},
	}
	payments := []models.Payment{
		{ID: "p1", CreatedAt: "2025-03-10T10:00:00Z"},
		{ID: "p2", CreatedAt: "2025-03-11T10:00:00Z"},
		{ID: "p3", CreatedAt: "2025-03-12T10:00:00Z"},
	}

	entries := recentActivity(expenses, invoices, quotations, payments)
	require.Len(t, entries, 8)

	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"p3", "p2", "p1", "v3", "v2", "x4", "x3", "x2"}, ids)
	assert.Equal(t, models.ActivityPayment, entries[0].Type)
}
