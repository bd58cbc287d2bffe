package repository

import (
	"github.com/sjperalta/lumina-api/internal/kvstore"
	"github.com/sjperalta/lumina-api/internal/models"
)

// Typed collection repositories
type (
	EmployeeRepository   = Repository[models.Employee]
	ExpenseRepository    = Repository[models.Expense]
	QuotationRepository  = Repository[models.Quotation]
	InvoiceRepository    = Repository[models.Invoice]
	PaymentRepository    = Repository[models.Payment]
	AttendanceRepository = Repository[models.Attendance]
)

// Repositories holds all repository instances
type Repositories struct {
	Employee   EmployeeRepository
	Expense    ExpenseRepository
	Quotation  QuotationRepository
	Invoice    InvoiceRepository
	Payment    PaymentRepository
	Attendance AttendanceRepository
	Session    SessionRepository

	// Raw access for backups and exports
	Store  kvstore.Store
	Locker kvstore.Locker
}

// NewRepositories creates all repository instances over one store
func NewRepositories(store kvstore.Store, locker kvstore.Locker) *Repositories {
	return &Repositories{
		Employee:   NewCollection[models.Employee](store, locker, models.CollectionEmployees, matchEmployee),
		Expense:    NewCollection[models.Expense](store, locker, models.CollectionExpenses, matchExpense),
		Quotation:  NewCollection[models.Quotation](store, locker, models.CollectionQuotations, matchQuotation),
		Invoice:    NewCollection[models.Invoice](store, locker, models.CollectionInvoices, matchInvoice),
		Payment:    NewCollection[models.Payment](store, locker, models.CollectionPayments, matchPayment),
		Attendance: NewCollection[models.Attendance](store, locker, models.CollectionAttendance, matchAttendance),
		Session:    NewSessionRepository(store),
		Store:      store,
		Locker:     locker,
	}
}

func matchEmployee(e models.Employee, q *ListQuery) bool {
	if role := q.Filter("role"); role != "" && e.Role != role {
		return false
	}
	return q.Matches(e.Name, e.Role, e.Phone)
}

func matchExpense(e models.Expense, q *ListQuery) bool {
	if category := q.Filter("category"); category != "" && e.Category != category {
		return false
	}
	return q.Matches(e.Description, e.Category, e.Notes)
}

func matchQuotation(d models.Quotation, q *ListQuery) bool {
	return q.Matches(d.QuotationNo, d.Client, d.Project)
}

func matchInvoice(i models.Invoice, q *ListQuery) bool {
	if status := q.Filter("status"); status != "" && i.PaymentStatus != status {
		return false
	}
	return q.Matches(i.InvoiceNo, i.Client, i.Project)
}

func matchPayment(p models.Payment, q *ListQuery) bool {
	if invoiceID := q.Filter("invoice_id"); invoiceID != "" && p.InvoiceID != invoiceID {
		return false
	}
	if method := q.Filter("method"); method != "" && p.Method != method {
		return false
	}
	return q.Matches(p.InvoiceNo, p.Method, p.Notes)
}

func matchAttendance(a models.Attendance, q *ListQuery) bool {
	if employeeID := q.Filter("employee_id"); employeeID != "" && a.EmployeeID != employeeID {
		return false
	}
	if month := q.Filter("month"); month != "" && a.Month != month {
		return false
	}
	return q.Matches(a.EmployeeName, a.MonthDisplay)
}
