package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/models"
)

func TestPaymentService_ReconcilesPendingPartialPaid(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")
	require.Equal(t, models.InvoiceStatusPending, inv.PaymentStatus)

	payment, after, err := svcs.Payment.Create(ctx, PaymentInput{
		InvoiceID: inv.ID,
		Method:    models.PaymentMethodBankTransfer,
		Amount:    400,
	})
	require.NoError(t, err)
	assert.Equal(t, inv.InvoiceNo, payment.InvoiceNo, "invoice number copied from the invoice")
	assert.Equal(t, "15-03-2025", payment.PaymentDate)
	require.NotNil(t, after)
	assert.Equal(t, models.InvoiceStatusPartial, after.PaymentStatus)
	assert.Equal(t, 400.0, after.PaidAmount)
	assert.Equal(t, 600.0, after.BalanceAmount)

	_, after, err = svcs.Payment.Create(ctx, PaymentInput{
		InvoiceID: inv.ID,
		Method:    models.PaymentMethodCash,
		Amount:    600,
	})
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPaid, after.PaymentStatus)
	assert.Equal(t, 1000.0, after.PaidAmount)
	assert.Equal(t, 0.0, after.BalanceAmount)
}

func TestPaymentService_OverpaymentStaysPaid(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "100")
	_, after, err := svcs.Payment.Create(ctx, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 150})
	require.NoError(t, err)

	assert.Equal(t, models.InvoiceStatusPaid, after.PaymentStatus)
	assert.Equal(t, 150.0, after.PaidAmount)
	assert.Equal(t, -50.0, after.BalanceAmount)
}

func TestPaymentService_PaidInvoiceWithOpenBalanceReopens(t *testing.T) {
	svcs, repos := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")
	_, _, err := repos.Invoice.Update(ctx, inv.ID, func(i *models.Invoice) {
		i.PaymentStatus = models.InvoiceStatusPaid
		i.PaidAmount = 200
		i.BalanceAmount = 800
	})
	require.NoError(t, err)

	_, after, err := svcs.Payment.Create(ctx, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 100})
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, models.InvoiceStatusPartial, after.PaymentStatus)
	assert.Equal(t, 300.0, after.PaidAmount)
	assert.Equal(t, 700.0, after.BalanceAmount)

	stored, found, err := repos.Invoice.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, models.InvoiceStatusPartial, stored.PaymentStatus)
}

func TestPaymentService_DanglingInvoiceIsTolerated(t *testing.T) {
	svcs, repos := newTestServices(t)
	ctx := context.Background()

	payment, invoice, err := svcs.Payment.Create(ctx, PaymentInput{
		InvoiceID: "deleted-invoice",
		InvoiceNo: "INV2501001",
		Method:    models.PaymentMethodCheque,
		Amount:    50,
	})
	require.NoError(t, err)
	assert.Nil(t, invoice)
	assert.Equal(t, "INV2501001", payment.InvoiceNo)

	stored, err := repos.Payment.All(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestPaymentService_EditAndDeleteDoNotTouchInvoice(t *testing.T) {
	svcs, repos := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")
	payment, _, err := svcs.Payment.Create(ctx, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 400})
	require.NoError(t, err)

	edited, err := svcs.Payment.Update(ctx, payment.ID, PaymentInput{
		InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 100, PaymentDate: "16-03-2025",
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, edited.Amount)
	assert.Equal(t, inv.InvoiceNo, edited.InvoiceNo)
	assert.Equal(t, payment.CreatedAt, edited.CreatedAt)

	current, _, err := repos.Invoice.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, current.PaidAmount, "editing a payment does not reverse it")

	require.NoError(t, svcs.Payment.Delete(ctx, payment.ID))
	current, _, err = repos.Invoice.FindByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, 400.0, current.PaidAmount, "deleting a payment does not reverse it")
	assert.Equal(t, models.InvoiceStatusPartial, current.PaymentStatus)

	assert.ErrorIs(t, svcs.Payment.Delete(ctx, payment.ID), ErrNotFound)
}

func TestInvoiceService_RecalculateFromPayments(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	inv := createInvoice(t, svcs, "1000")
	first, _, err := svcs.Payment.Create(ctx, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 400})
	require.NoError(t, err)
	_, _, err = svcs.Payment.Create(ctx, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 600})
	require.NoError(t, err)

	_, err = svcs.Payment.Update(ctx, first.ID, PaymentInput{InvoiceID: inv.ID, Method: models.PaymentMethodCash, Amount: 100})
	require.NoError(t, err)

	recalculated, err := svcs.Invoice.Recalculate(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPartial, recalculated.PaymentStatus, "a paid invoice can reopen")
	assert.Equal(t, 700.0, recalculated.PaidAmount)
	assert.Equal(t, 300.0, recalculated.BalanceAmount)

	payments, err := svcs.Invoice.Payments(ctx, inv.ID)
	require.NoError(t, err)
	for _, p := range payments {
		require.NoError(t, svcs.Payment.Delete(ctx, p.ID))
	}

	recalculated, err = svcs.Invoice.Recalculate(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvoiceStatusPending, recalculated.PaymentStatus)
	assert.Equal(t, 0.0, recalculated.PaidAmount)
	assert.Equal(t, 1000.0, recalculated.BalanceAmount)

	_, err = svcs.Invoice.Recalculate(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPaymentService_Validation(t *testing.T) {
	svcs, repos := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input PaymentInput
	}{
		{"zero amount", PaymentInput{InvoiceID: "x", Method: models.PaymentMethodCash, Amount: 0}},
		{"negative amount", PaymentInput{InvoiceID: "x", Method: models.PaymentMethodCash, Amount: -5}},
		{"missing invoice id", PaymentInput{Method: models.PaymentMethodCash, Amount: 5}},
		{"missing method", PaymentInput{InvoiceID: "x", Amount: 5}},
		{"bad date", PaymentInput{InvoiceID: "x", Method: models.PaymentMethodCash, Amount: 5, PaymentDate: "March"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svcs.Payment.Create(ctx, tt.input)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}

	stored, err := repos.Payment.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}
