package services

import (
	"context"
	"strings"
	"time"

	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
)

// ExpenseInput is the editable part of an expense
type ExpenseInput struct {
	Description string  `json:"description" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Category    string  `json:"category" validate:"required"`
	Date        string  `json:"date"`
	Notes       string  `json:"notes"`
}

// ExpenseService manages expenses
type ExpenseService struct {
	repo repository.ExpenseRepository
	now  func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(repo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{repo: repo, now: time.Now}
}

func (s *ExpenseService) List(ctx context.Context, query *repository.ListQuery) ([]models.Expense, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ExpenseService) FindByID(ctx context.Context, id string) (*models.Expense, error) {
	expense, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return expense, nil
}

// Categories returns the fixed expense categories
func (s *ExpenseService) Categories() []string {
	return models.ExpenseCategories()
}

func (s *ExpenseService) Create(ctx context.Context, input ExpenseInput) (*models.Expense, error) {
	input, err := s.check(input)
	if err != nil {
		return nil, err
	}

	expense := models.Expense{
		ID:          ledger.NewID(),
		Description: input.Description,
		Amount:      input.Amount,
		Category:    input.Category,
		Date:        input.Date,
		Notes:       input.Notes,
		CreatedAt:   models.Timestamp(s.now()),
	}
	if err := s.repo.Create(ctx, expense); err != nil {
		return nil, err
	}
	return &expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, id string, input ExpenseInput) (*models.Expense, error) {
	input, err := s.check(input)
	if err != nil {
		return nil, err
	}

	expense, found, err := s.repo.Update(ctx, id, func(e *models.Expense) {
		e.Description = input.Description
		e.Amount = input.Amount
		e.Category = input.Category
		e.Date = input.Date
		e.Notes = input.Notes
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

// check trims, defaults the date to today and validates category and date
func (s *ExpenseService) check(input ExpenseInput) (ExpenseInput, error) {
	input.Description = strings.TrimSpace(input.Description)
	input.Category = strings.TrimSpace(input.Category)
	input.Date = strings.TrimSpace(input.Date)
	if input.Date == "" {
		input.Date = ledger.FormatDate(s.now())
	}

	if err := validateInput(input); err != nil {
		return input, err
	}
	// oneof cannot express labels containing spaces
	if !models.IsExpenseCategory(input.Category) {
		return input, fieldError("category", "unknown category")
	}
	if _, err := ledger.ParseDate(input.Date); err != nil {
		return input, fieldError("date", "expected DD-MM-YYYY")
	}
	return input, nil
}
