package handlers

import (
	"github.com/sjperalta/lumina-api/internal/services"
)

// Handlers holds all handler instances
type Handlers struct {
	Health     *HealthHandler
	Auth       *AuthHandler
	Dashboard  *DashboardHandler
	Employee   *EmployeeHandler
	Expense    *ExpenseHandler
	Quotation  *QuotationHandler
	Invoice    *InvoiceHandler
	Payment    *PaymentHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
	Backup     *BackupHandler
	Tools      *ToolsHandler
	Job        *JobHandler
}

// NewHandlers creates all handler instances
func NewHandlers(svcs *services.Services) *Handlers {
	return &Handlers{
		Health:     NewHealthHandler(),
		Auth:       NewAuthHandler(svcs.Auth),
		Dashboard:  NewDashboardHandler(svcs.Dashboard),
		Employee:   NewEmployeeHandler(svcs.Employee),
		Expense:    NewExpenseHandler(svcs.Expense),
		Quotation:  NewQuotationHandler(svcs.Quotation, svcs.Invoice, svcs.Print),
		Invoice:    NewInvoiceHandler(svcs.Invoice, svcs.Print),
		Payment:    NewPaymentHandler(svcs.Payment, svcs.Print),
		Attendance: NewAttendanceHandler(svcs.Attendance, svcs.Print),
		Export:     NewExportHandler(svcs.Export),
		Backup:     NewBackupHandler(svcs.Backup),
		Tools:      NewToolsHandler(),
		Job:        NewJobHandler(svcs.Job),
	}
}
