package services

import (
	"context"
	"strings"
	"time"

	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

// EmployeeInput is the editable part of an employee
type EmployeeInput struct {
	Name      string  `json:"name" validate:"required"`
	Role      string  `json:"role" validate:"required"`
	DailyWage float64 `json:"dailyWage" validate:"gte=0"`
	Phone     string  `json:"phone"`
}

// EmployeeService manages employees
type EmployeeService struct {
	repo        repository.EmployeeRepository
	phoneRegion string
	now         func() time.Time
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(repo repository.EmployeeRepository, phoneRegion string) *EmployeeService {
	return &EmployeeService{repo: repo, phoneRegion: phoneRegion, now: time.Now}
}

func (s *EmployeeService) List(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *EmployeeService) All(ctx context.Context) ([]models.Employee, error) {
	return s.repo.All(ctx)
}

func (s *EmployeeService) FindByID(ctx context.Context, id string) (*models.Employee, error) {
	employee, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return employee, nil
}

func (s *EmployeeService) Create(ctx context.Context, input EmployeeInput) (*models.Employee, error) {
	input = s.clean(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	employee := models.Employee{
		ID:        ledger.NewID(),
		Name:      input.Name,
		Role:      input.Role,
		DailyWage: input.DailyWage,
		Phone:     input.Phone,
		CreatedAt: models.Timestamp(s.now()),
	}
	if err := s.repo.Create(ctx, employee); err != nil {
		return nil, err
	}

	logger.Log.InfoContext(ctx, "employee created", "employee_id", employee.ID)
	return &employee, nil
}

// Update replaces the editable fields. Attendance snapshots keep the old name and wage.
func (s *EmployeeService) Update(ctx context.Context, id string, input EmployeeInput) (*models.Employee, error) {
	input = s.clean(input)
	if err := validateInput(input); err != nil {
		return nil, err
	}

	employee, found, err := s.repo.Update(ctx, id, func(e *models.Employee) {
		e.Name = input.Name
		e.Role = input.Role
		e.DailyWage = input.DailyWage
		e.Phone = input.Phone
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return employee, nil
}

// Delete removes the employee only; attendance records stay
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	logger.Log.InfoContext(ctx, "employee deleted", "employee_id", id)
	return nil
}

func (s *EmployeeService) clean(input EmployeeInput) EmployeeInput {
	input.Name = strings.TrimSpace(input.Name)
	input.Role = strings.TrimSpace(input.Role)
	input.Phone = normalizePhone(input.Phone, s.phoneRegion)
	return input
}
