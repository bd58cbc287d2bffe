package services

import (
	"github.com/sjperalta/lumina-api/internal/config"
	"github.com/sjperalta/lumina-api/internal/jobs"
	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/internal/storage"
)

// Services holds all service instances
type Services struct {
	Auth       *AuthService
	Employee   *EmployeeService
	Expense    *ExpenseService
	Quotation  *QuotationService
	Invoice    *InvoiceService
	Payment    *PaymentService
	Attendance *AttendanceService
	Dashboard  *DashboardService
	Print      *PrintService
	Export     *ExportService
	Backup     *BackupService
	Job        *JobService
}

// NewServices creates all service instances. worker and archive may be nil for
// one-shot tools that do not schedule anything.
func NewServices(repos *repository.Repositories, worker *jobs.Worker, archive *storage.LocalStorage, cfg *config.Config) (*Services, error) {
	authSvc, err := NewAuthService(repos.Session, cfg)
	if err != nil {
		return nil, err
	}

	numbers := ledger.NewNumberGenerator()
	attendanceSvc := NewAttendanceService(repos.Attendance, repos.Employee)
	invoiceSvc := NewInvoiceService(repos.Invoice, repos.Payment, repos.Quotation, repos.Locker, numbers, cfg)
	backupSvc := NewBackupService(repos, archive)

	svcs := &Services{
		Auth:       authSvc,
		Employee:   NewEmployeeService(repos.Employee, cfg.PhoneRegion),
		Expense:    NewExpenseService(repos.Expense),
		Quotation:  NewQuotationService(repos.Quotation, numbers, cfg),
		Invoice:    invoiceSvc,
		Payment:    NewPaymentService(repos.Payment, repos.Invoice, repos.Locker),
		Attendance: attendanceSvc,
		Dashboard:  NewDashboardService(repos),
		Print:      NewPrintService(repos, attendanceSvc, cfg.CompanyName),
		Export:     NewExportService(repos),
		Backup:     backupSvc,
	}
	if worker != nil {
		svcs.Job = NewJobService(worker, backupSvc, invoiceSvc)
	}
	return svcs, nil
}
