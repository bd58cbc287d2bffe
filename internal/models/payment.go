package models

// Payment is money received against an invoice. InvoiceID may dangle: nothing
// stops the invoice from being deleted afterwards.
type Payment struct {
	ID          string  `json:"id"`
	InvoiceID   string  `json:"invoiceId"`
	InvoiceNo   string  `json:"invoiceNo"`
	PaymentDate string  `json:"paymentDate"`
	Method      string  `json:"method"`
	Amount      float64 `json:"amount"`
	Notes       string  `json:"notes"`
	CreatedAt   string  `json:"createdAt"`
}

func (p Payment) RecordID() string { return p.ID }
func (p Payment) RecordCreatedAt() string { return p.CreatedAt }

// Suggested payment methods. Method stays free-form.
const (
	PaymentMethodCash         = "Cash"
	PaymentMethodBankTransfer = "Bank Transfer"
	PaymentMethodCreditCard   = "Credit Card"
	PaymentMethodCheque       = "Cheque"
	PaymentMethodOnline       = "Online Payment"
)

// PaymentMethods returns the suggested methods
func PaymentMethods() []string {
	return []string{
		PaymentMethodCash,
		PaymentMethodBankTransfer,
		PaymentMethodCreditCard,
		PaymentMethodCheque,
		PaymentMethodOnline,
	}
}
