package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/models"
)

func TestInvoiceService_Create(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv, err := svcs.Invoice.Create(ctx, InvoiceInput{
		DocumentInput: DocumentInput{
			Date:   "01-03-2025",
			Client: "  Acme Trading ",
			Items: []models.QuotationItem{
				{Description: "Tiles", Qty: "2", Rate: "100"},
				{Description: "Labour", Qty: "3", Rate: "50"},
				{Description: "", Qty: "9", Rate: "9"},
			},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Acme Trading", inv.Client)
	assert.Len(t, inv.Items, 2, "blank items are dropped")
	assert.Equal(t, 350.0, inv.Subtotal)
	assert.Equal(t, 15.0, inv.VATPercentage)
	assert.Equal(t, 52.5, inv.VATAmount)
	assert.Equal(t, 402.5, inv.GrandTotal)
	assert.Equal(t, models.InvoiceStatusPending, inv.PaymentStatus)
	assert.Equal(t, 0.0, inv.PaidAmount)
	assert.Equal(t, 402.5, inv.BalanceAmount)
	assert.Equal(t, "31-03-2025", inv.DueDate)
	assert.Regexp(t, `^INV\d{7}$`, inv.InvoiceNo)
	assert.Contains(t, inv.AmountInWords, "Four Hundred Two Riyals")
	for _, item := range inv.Items {
		assert.NotEmpty(t, item.ID)
	}
}

func TestInvoiceService_CreatePaid(t *testing.T) {
	svcs, _ := newTestServices(t)

	inv, err := svcs.Invoice.Create(context.Background(), InvoiceInput{
		DocumentInput: DocumentInput{
			Client:        "Acme",
			VATPercentage: vat(0),
			Items:         []models.QuotationItem{{Description: "Works", Qty: "1", Rate: "500"}},
		},
		PaymentStatus: models.InvoiceStatusPaid,
	})
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusPaid, inv.PaymentStatus)
	assert.Equal(t, 500.0, inv.PaidAmount)
	assert.Equal(t, 0.0, inv.BalanceAmount)
	assert.Equal(t, "15-03-2025", inv.Date, "date defaults to today")
}

func TestInvoiceService_CreateValidation(t *testing.T) {
	svcs, repos := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input InvoiceInput
		field string
	}{
		{"missing client", InvoiceInput{}, "client"},
		{"bad date", InvoiceInput{DocumentInput: DocumentInput{Client: "A", Date: "2025-03-01"}}, "date"},
		{"bad due date", InvoiceInput{DocumentInput: DocumentInput{Client: "A"}, DueDate: "soon"}, "dueDate"},
		{"bad status", InvoiceInput{DocumentInput: DocumentInput{Client: "A"}, PaymentStatus: "void"}, "paymentStatus"},
		{"negative vat", InvoiceInput{DocumentInput: DocumentInput{Client: "A", VATPercentage: vat(-5)}}, "vatPercentage"},
		{"negative grand total", InvoiceInput{DocumentInput: DocumentInput{
			Client: "A",
			Items:  []models.QuotationItem{{Description: "Credit", Qty: "-1", Rate: "100"}},
		}}, "items"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svcs.Invoice.Create(ctx, tt.input)
			require.ErrorIs(t, err, ErrValidation)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}

	all, err := repos.Invoice.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "nothing persisted")
}

func TestInvoiceService_VATAboveHundredIsPriced(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()
	input := DocumentInput{
		Client:        "Acme",
		VATPercentage: vat(150),
		Items:         []models.QuotationItem{{Description: "Works", Qty: "1", Rate: "100"}},
	}

	inv, err := svcs.Invoice.Create(ctx, InvoiceInput{DocumentInput: input})
	require.NoError(t, err)
	assert.Equal(t, 150.0, inv.VATPercentage)
	assert.Equal(t, 150.0, inv.VATAmount)
	assert.Equal(t, 250.0, inv.GrandTotal)
	assert.Equal(t, 250.0, inv.BalanceAmount)

	q, err := svcs.Quotation.Create(ctx, QuotationInput{DocumentInput: input})
	require.NoError(t, err)
	assert.Equal(t, 150.0, q.VATAmount)
	assert.Equal(t, 250.0, q.GrandTotal)
}

func TestDocumentNumbersFollowServiceClock(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "100")
	assert.Regexp(t, `^INV2503\d{3}$`, inv.InvoiceNo)

	n, err := svcs.Quotation.NextNumber(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^QT2503\d{3}$`, n)
}

func TestInvoiceService_UpdateKeepsPaidAndHonoursOverride(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")
	_, _, err := svcs.Payment.Create(ctx, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 400})
	require.NoError(t, err)

	updated, err := svcs.Invoice.Update(ctx, inv.ID, InvoiceInput{
		DocumentInput: DocumentInput{
			Date:          inv.Date,
			Client:        inv.Client,
			VATPercentage: vat(0),
			Items:         []models.QuotationItem{{Description: "Works", Qty: "1", Rate: "1200"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNo, updated.InvoiceNo)
	assert.Equal(t, inv.CreatedAt, updated.CreatedAt)
	assert.Equal(t, 1200.0, updated.GrandTotal)
	assert.Equal(t, 400.0, updated.PaidAmount)
	assert.Equal(t, 800.0, updated.BalanceAmount)
	assert.Equal(t, models.InvoiceStatusPartial, updated.PaymentStatus)

	paid, err := svcs.Invoice.Update(ctx, inv.ID, InvoiceInput{
		DocumentInput: DocumentInput{
			Date:          inv.Date,
			Client:        inv.Client,
			VATPercentage: vat(0),
			Items:         []models.QuotationItem{{Description: "Works", Qty: "1", Rate: "1200"}},
		},
		PaymentStatus: models.InvoiceStatusPaid,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, paid.PaymentStatus)
	assert.Equal(t, 1200.0, paid.PaidAmount)
	assert.Equal(t, 0.0, paid.BalanceAmount)
}

func TestInvoiceService_UpdateMissing(t *testing.T) {
	svcs, _ := newTestServices(t)

	_, err := svcs.Invoice.Update(context.Background(), "nope", InvoiceInput{DocumentInput: DocumentInput{Client: "A"}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceService_DeleteLeavesPayments(t *testing.T) {
	svcs, repos := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")
	_, _, err := svcs.Payment.Create(ctx, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 100})
	require.NoError(t, err)

	require.NoError(t, svcs.Invoice.Delete(ctx, inv.ID))
	assert.ErrorIs(t, svcs.Invoice.Delete(ctx, inv.ID), ErrNotFound)

	payments, err := repos.Payment.All(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, inv.ID, payments[0].InvoiceID)
}

func TestInvoiceService_ConvertQuotation(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	q, err := svcs.Quotation.Create(ctx, QuotationInput{
		DocumentInput: DocumentInput{
			Date:          "10-03-2025",
			Client:        "Blue Sky",
			Project:       "Villa",
			TRN:           "300000000000003",
			VATPercentage: vat(5),
			Items:         []models.QuotationItem{{Description: "Paint", Qty: "10", Rate: "20"}},
		},
	})
	require.NoError(t, err)

	inv, err := svcs.Invoice.ConvertQuotation(ctx, q.ID)
	require.NoError(t, err)

	assert.Equal(t, "Blue Sky", inv.Client)
	assert.Equal(t, "Villa", inv.Project)
	assert.Equal(t, q.TRN, inv.TRN)
	assert.Equal(t, 5.0, inv.VATPercentage)
	assert.Equal(t, q.GrandTotal, inv.GrandTotal)
	assert.Equal(t, "15-03-2025", inv.Date)
	assert.Equal(t, "14-04-2025", inv.DueDate)
	assert.Equal(t, models.InvoiceStatusPending, inv.PaymentStatus)
	require.Len(t, inv.Items, 1)
	assert.NotEqual(t, q.Items[0].ID, inv.Items[0].ID)

	_, err = svcs.Invoice.ConvertQuotation(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceService_Overdue(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	late := createInvoice(t, svcs, "100")
	_, err := svcs.Invoice.Create(ctx, InvoiceInput{
		DocumentInput: DocumentInput{Date: "01-03-2025", Client: "Paid Co", VATPercentage: vat(0),
			Items: []models.QuotationItem{{Description: "x", Qty: "1", Rate: "100"}}},
		PaymentStatus: models.InvoiceStatusPaid,
	})
	require.NoError(t, err)
	_, err = svcs.Invoice.Create(ctx, InvoiceInput{
		DocumentInput: DocumentInput{Date: "01-03-2025", Client: "Later Co", VATPercentage: vat(0),
			Items: []models.QuotationItem{{Description: "x", Qty: "1", Rate: "100"}}},
		DueDate: "30-06-2025",
	})
	require.NoError(t, err)

	overdue, err := svcs.Invoice.Overdue(ctx, time.Date(2025, time.April, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, late.ID, overdue[0].ID)
}

func TestQuotationService_CRUD(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	q, err := svcs.Quotation.Create(ctx, QuotationInput{
		DocumentInput: DocumentInput{
			Client: "Acme",
			Items: []models.QuotationItem{
				{Description: "Tiles", Qty: "abc", Rate: "10"},
				{Description: "Grout", Qty: "2", Rate: "25"},
			},
		},
	})
	require.NoError(t, err)
	assert.Regexp(t, `^QT\d{7}$`, q.QuotationNo)
	assert.Equal(t, 0.0, q.Items[0].Amount, "non-numeric qty counts as zero")
	assert.Equal(t, 50.0, q.Subtotal)
	assert.Equal(t, 57.5, q.GrandTotal)

	updated, err := svcs.Quotation.Update(ctx, q.ID, QuotationInput{
		DocumentInput: DocumentInput{
			Client:        "Acme",
			VATPercentage: vat(0),
			Items:         []models.QuotationItem{{Description: "Grout", Qty: "4", Rate: "25"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, q.QuotationNo, updated.QuotationNo)
	assert.Equal(t, 100.0, updated.GrandTotal)
	assert.Equal(t, "One Hundred Riyals Only", updated.AmountInWords)

	require.NoError(t, svcs.Quotation.Delete(ctx, q.ID))
	_, err = svcs.Quotation.FindByID(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
