package services

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
)

// AttendanceInput records days worked by an employee in a month (YYYY-MM)
type AttendanceInput struct {
	EmployeeID string `json:"employeeId" validate:"required"`
	Month      string `json:"month" validate:"required"`
	DaysWorked int    `json:"daysWorked" validate:"gte=0,lte=31"`
}

// AttendanceReport is a printable list of attendance records
type AttendanceReport struct {
	Title        string              `json:"title"`
	EmployeeID   string              `json:"employeeId,omitempty"`
	Records      []models.Attendance `json:"records"`
	TotalDays    int                 `json:"totalDays"`
	TotalWages   float64             `json:"totalWages"`
	GeneratedAt  string              `json:"generatedAt"`
	FormattedSum string              `json:"formattedTotalWages"`
}

// AttendanceService manages monthly attendance
type AttendanceService struct {
	repo         repository.AttendanceRepository
	employeeRepo repository.EmployeeRepository
	now          func() time.Time
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(repo repository.AttendanceRepository, employeeRepo repository.EmployeeRepository) *AttendanceService {
	return &AttendanceService{repo: repo, employeeRepo: employeeRepo, now: time.Now}
}

func (s *AttendanceService) List(ctx context.Context, query *repository.ListQuery) ([]models.Attendance, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *AttendanceService) FindByID(ctx context.Context, id string) (*models.Attendance, error) {
	record, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return record, nil
}

// Create rejects unknown employees and a second record for the same employee and month
func (s *AttendanceService) Create(ctx context.Context, input AttendanceInput) (*models.Attendance, error) {
	input, display, employee, err := s.check(ctx, input)
	if err != nil {
		return nil, err
	}

	record := models.Attendance{
		ID:        ledger.NewID(),
		CreatedAt: models.Timestamp(s.now()),
	}
	applyAttendance(&record, input, display, employee)

	created, err := s.repo.CreateUnless(ctx, record, func(existing models.Attendance) bool {
		return existing.EmployeeID == record.EmployeeID && existing.Month == record.Month
	})
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, ErrDuplicate
	}
	return &record, nil
}

// Update re-snapshots the employee's current name and wage. Uniqueness is not rechecked.
func (s *AttendanceService) Update(ctx context.Context, id string, input AttendanceInput) (*models.Attendance, error) {
	input, display, employee, err := s.check(ctx, input)
	if err != nil {
		return nil, err
	}

	record, found, err := s.repo.Update(ctx, id, func(a *models.Attendance) {
		applyAttendance(a, input, display, employee)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return record, nil
}

func (s *AttendanceService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// Report collects attendance for one employee, or everyone when employeeID is empty
func (s *AttendanceService) Report(ctx context.Context, employeeID string) (*AttendanceReport, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	report := &AttendanceReport{
		Title:       "All Employees Attendance Report",
		EmployeeID:  employeeID,
		Records:     make([]models.Attendance, 0),
		GeneratedAt: ledger.FormatDate(s.now()),
	}

	if employeeID != "" {
		employee, found, err := s.employeeRepo.FindByID(ctx, employeeID)
		if err != nil {
			return nil, err
		}
		if found {
			report.Title = "Attendance Report - " + employee.Name
		}
	}

	total := decimal.Zero
	for _, r := range all {
		if employeeID != "" && r.EmployeeID != employeeID {
			continue
		}
		report.Records = append(report.Records, r)
		report.TotalDays += r.DaysWorked
		total = total.Add(decimal.NewFromFloat(r.MonthlyWage))
	}
	report.TotalWages = total.Round(2).InexactFloat64()
	report.FormattedSum = ledger.FormatCurrency(report.TotalWages)
	return report, nil
}

func (s *AttendanceService) check(ctx context.Context, input AttendanceInput) (AttendanceInput, string, *models.Employee, error) {
	input.EmployeeID = strings.TrimSpace(input.EmployeeID)
	input.Month = strings.TrimSpace(input.Month)

	if err := validateInput(input); err != nil {
		return input, "", nil, err
	}
	display, err := ledger.FormatMonth(input.Month)
	if err != nil {
		return input, "", nil, fieldError("month", "expected YYYY-MM")
	}

	employee, found, err := s.employeeRepo.FindByID(ctx, input.EmployeeID)
	if err != nil {
		return input, "", nil, err
	}
	if !found {
		return input, "", nil, fieldError("employeeId", "unknown employee")
	}
	return input, display, employee, nil
}

func applyAttendance(a *models.Attendance, input AttendanceInput, display string, employee *models.Employee) {
	a.EmployeeID = employee.ID
	a.EmployeeName = employee.Name
	a.Month = input.Month
	a.MonthDisplay = display
	a.DaysWorked = input.DaysWorked
	a.DailyWage = employee.DailyWage
	a.MonthlyWage = decimal.NewFromInt(int64(input.DaysWorked)).
		Mul(decimal.NewFromFloat(employee.DailyWage)).Round(2).InexactFloat64()
}
