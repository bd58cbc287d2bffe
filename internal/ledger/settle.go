package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/sjperalta/lumina-api/internal/models"
)

// Settlement is the outcome of applying money to an invoice
type Settlement struct {
	PaidAmount    float64
	BalanceAmount float64
	Status        string
}

// Settle adds payment to paid and derives the new balance and status
func Settle(grandTotal, paidAmount, payment float64) Settlement {
	newPaid := decimal.NewFromFloat(paidAmount).Add(decimal.NewFromFloat(payment))
	return settlementFor(decimal.NewFromFloat(grandTotal), newPaid)
}

// SettleTotal derives balance and status from an absolute paid amount
func SettleTotal(grandTotal, paidAmount float64) Settlement {
	return settlementFor(decimal.NewFromFloat(grandTotal), decimal.NewFromFloat(paidAmount))
}

func settlementFor(grand, paid decimal.Decimal) Settlement {
	balance := grand.Sub(paid)

	status := models.InvoiceStatusPending
	switch {
	case balance.LessThanOrEqual(decimal.Zero):
		status = models.InvoiceStatusPaid
	case paid.GreaterThan(decimal.Zero):
		status = models.InvoiceStatusPartial
	}

	return Settlement{
		PaidAmount:    paid.Round(2).InexactFloat64(),
		BalanceAmount: balance.Round(2).InexactFloat64(),
		Status:        status,
	}
}
