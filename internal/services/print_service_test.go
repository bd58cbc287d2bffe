package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/models"
)

func TestPrintService_InvoiceHTML(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv, err := svcs.Invoice.Create(ctx, InvoiceInput{
		DocumentInput: DocumentInput{
			Date:    "01-03-2025",
			Client:  "Blue Sky Contracting",
			Project: "Villa 7",
			Items: []models.QuotationItem{
				{Description: "Tiles", Qty: "2", Rate: "100"},
				{Description: "Labour", Qty: "3", Rate: "50"},
			},
		},
	})
	require.NoError(t, err)
	_, _, err = svcs.Payment.Create(ctx, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 100})
	require.NoError(t, err)

	page, err := svcs.Print.InvoiceHTML(ctx, inv.ID)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.Contains(t, html, "<h1>INVOICE</h1>")
	assert.Contains(t, html, "Lumina Test Co")
	assert.Contains(t, html, inv.InvoiceNo)
	assert.Contains(t, html, "Blue Sky Contracting")
	assert.Contains(t, html, "Tiles")
	assert.Contains(t, html, "Subtotal: ﷼ 350.00")
	assert.Contains(t, html, "VAT (15%): ﷼ 52.50")
	assert.Contains(t, html, "Grand Total: ﷼ 402.50")
	assert.Contains(t, html, "Paid Amount: ﷼ 100.00")
	assert.Contains(t, html, "Balance: ﷼ 302.50")
	assert.Contains(t, html, "PARTIAL")
	assert.Contains(t, html, inv.AmountInWords)

	_, err = svcs.Print.InvoiceHTML(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrintService_QuotationHTMLHasNoBalance(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	q, err := svcs.Quotation.Create(ctx, QuotationInput{
		DocumentInput: DocumentInput{
			Client: "Acme",
			Items:  []models.QuotationItem{{Description: "Paint", Qty: "1", Rate: "100"}},
		},
	})
	require.NoError(t, err)

	page, err := svcs.Print.QuotationHTML(ctx, q.ID)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<h1>QUOTATION</h1>")
	assert.Contains(t, html, q.QuotationNo)
	assert.NotContains(t, html, "Balance:")
	assert.NotContains(t, html, "Due Date:")
}

func TestPrintService_ReceiptHTML(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")
	payment, _, err := svcs.Payment.Create(ctx, PaymentInput{
		InvoiceID: inv.ID, Method: models.PaymentMethodBankTransfer, Amount: 1500.5, Notes: "final",
	})
	require.NoError(t, err)

	page, err := svcs.Print.ReceiptHTML(ctx, payment.ID)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "PAYMENT RECEIPT")
	assert.Contains(t, html, "Amount Received: ﷼ 1,500.50")
	assert.Contains(t, html, "One Thousand Five Hundred Riyals and Fifty Halalas Only")
	assert.Contains(t, html, "Acme Trading")

	dangling, _, err := svcs.Payment.Create(ctx, PaymentInput{InvoiceID: "gone", InvoiceNo: "INV0000001", Method: models.PaymentMethodCash, Amount: 5})
	require.NoError(t, err)
	page, err = svcs.Print.ReceiptHTML(ctx, dangling.ID)
	require.NoError(t, err)
	assert.NotContains(t, string(page), "Invoice Total:")
}

func TestPrintService_AttendanceHTML(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	emp, err := svcs.Employee.Create(ctx, EmployeeInput{Name: "Ali", Role: "Mason", DailyWage: 150})
	require.NoError(t, err)
	_, err = svcs.Attendance.Create(ctx, AttendanceInput{EmployeeID: emp.ID, Month: "2025-03", DaysWorked: 26})
	require.NoError(t, err)

	page, err := svcs.Print.AttendanceHTML(ctx, emp.ID)
	require.NoError(t, err)
	html := string(page)
	assert.Contains(t, html, "Attendance Report - Ali")
	assert.Contains(t, html, "March 2025")
	assert.Contains(t, html, "﷼ 3,900.00")
}

func TestPrintService_InvoicePDF(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")
	pdf, err := svcs.Print.InvoicePDF(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF-")))

	_, err = svcs.Print.QuotationPDF(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
