package models

// DashboardSummary aggregates every collection for the overview screen
type DashboardSummary struct {
	TotalEmployees         int               `json:"totalEmployees"`
	TotalExpenses          float64           `json:"totalExpenses"`
	MonthlyExpenses        float64           `json:"monthlyExpenses"`
	TotalQuotations        float64           `json:"totalQuotations"`
	TotalInvoices          float64           `json:"totalInvoices"`
	TotalPayments          float64           `json:"totalPayments"`
	OutstandingAmount      float64           `json:"outstandingAmount"`
	MonthlyPayrollEstimate float64           `json:"monthlyPayrollEstimate"`
	PendingInvoices        []PaymentAlert    `json:"pendingInvoices"`
	PartialInvoices        []PaymentAlert    `json:"partialInvoices"`
	RecentActivity         []ActivityEntry   `json:"recentActivity"`
	Formatted              map[string]string `json:"formatted"`
}

// PaymentAlert is an invoice still waiting for money
type PaymentAlert struct {
	InvoiceID string  `json:"invoiceId"`
	InvoiceNo string  `json:"invoiceNo"`
	Client    string  `json:"client"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"` // grand total when pending, balance when partial
}

// Activity types
const (
	ActivityExpense   = "expense"
	ActivityInvoice   = "invoice"
	ActivityQuotation = "quotation"
	ActivityPayment   = "payment"
)

// ActivityEntry is one line of the recent activity feed
type ActivityEntry struct {
	Type      string  `json:"type"`
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Subtitle  string  `json:"subtitle"`
	Amount    float64 `json:"amount"`
	CreatedAt string  `json:"createdAt"`
}
