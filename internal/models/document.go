package models

// QuotationItem is one line of a quotation or invoice. Qty and Rate keep the text
// the user typed; Amount is always recomputed from them.
type QuotationItem struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Qty         string  `json:"qty"`
	Rate        string  `json:"rate"`
	Amount      float64 `json:"amount"`
}

// Quotation is a priced offer to a client
type Quotation struct {
	ID            string          `json:"id"`
	QuotationNo   string          `json:"quotationNo"`
	Date          string          `json:"date"`
	Client        string          `json:"client"`
	Contact       string          `json:"contact"`
	Project       string          `json:"project"`
	Location      string          `json:"location"`
	TRN           string          `json:"trn"`
	Items         []QuotationItem `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	VATPercentage float64         `json:"vatPercentage"`
	VATAmount     float64         `json:"vatAmount"`
	GrandTotal    float64         `json:"grandTotal"`
	AmountInWords string          `json:"amountInWords"`
	CreatedAt     string          `json:"createdAt"`
}

func (q Quotation) RecordID() string { return q.ID }
func (q Quotation) RecordCreatedAt() string { return q.CreatedAt }

// Invoice status constants
const (
	InvoiceStatusPending = "pending"
	InvoiceStatusPartial = "partial"
	InvoiceStatusPaid    = "paid"
)

// IsInvoiceStatus reports whether s is a valid payment status
func IsInvoiceStatus(s string) bool {
	return s == InvoiceStatusPending || s == InvoiceStatusPartial || s == InvoiceStatusPaid
}

// Invoice is a billed document tracking what has been paid against it
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNo     string          `json:"invoiceNo"`
	Date          string          `json:"date"`
	DueDate       string          `json:"dueDate"`
	Client        string          `json:"client"`
	Contact       string          `json:"contact"`
	Project       string          `json:"project"`
	Location      string          `json:"location"`
	TRN           string          `json:"trn"`
	Items         []QuotationItem `json:"items"`
	Subtotal      float64         `json:"subtotal"`
	VATPercentage float64         `json:"vatPercentage"`
	VATAmount     float64         `json:"vatAmount"`
	GrandTotal    float64         `json:"grandTotal"`
	AmountInWords string          `json:"amountInWords"`
	PaymentStatus string          `json:"paymentStatus"`
	PaidAmount    float64         `json:"paidAmount"`
	BalanceAmount float64         `json:"balanceAmount"`
	CreatedAt     string          `json:"createdAt"`
}

func (i Invoice) RecordID() string { return i.ID }
func (i Invoice) RecordCreatedAt() string { return i.CreatedAt }

// IsOutstanding returns true while money is still owed
func (i Invoice) IsOutstanding() bool {
	return i.PaymentStatus != InvoiceStatusPaid && i.BalanceAmount > 0
}
