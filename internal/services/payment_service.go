package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sjperalta/lumina-api/internal/kvstore"
	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/internal/statemachine"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

// PaymentInput records money received. InvoiceNo is filled from the invoice when it exists.
type PaymentInput struct {
	InvoiceID   string  `json:"invoiceId" validate:"required"`
	InvoiceNo   string  `json:"invoiceNo"`
	PaymentDate string  `json:"paymentDate"`
	Method      string  `json:"method" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0"`
	Notes       string  `json:"notes"`
}

// PaymentService records payments and reconciles them against invoices
type PaymentService struct {
	repo        repository.PaymentRepository
	invoiceRepo repository.InvoiceRepository
	locker      kvstore.Locker
	now         func() time.Time
}

// NewPaymentService creates a new payment service
func NewPaymentService(repo repository.PaymentRepository, invoiceRepo repository.InvoiceRepository, locker kvstore.Locker) *PaymentService {
	return &PaymentService{
		repo:        repo,
		invoiceRepo: invoiceRepo,
		locker:      locker,
		now:         time.Now,
	}
}

func (s *PaymentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Payment, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *PaymentService) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	payment, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return payment, nil
}

// Methods returns the suggested payment methods
func (s *PaymentService) Methods() []string {
	return models.PaymentMethods()
}

// Create persists the payment, then applies it to its invoice. A missing invoice is
// not an error: the payment stays and the invoice update is skipped.
func (s *PaymentService) Create(ctx context.Context, input PaymentInput) (*models.Payment, *models.Invoice, error) {
	input, err := s.check(input)
	if err != nil {
		return nil, nil, err
	}

	if input.InvoiceNo == "" {
		if inv, found, err := s.invoiceRepo.FindByID(ctx, input.InvoiceID); err == nil && found {
			input.InvoiceNo = inv.InvoiceNo
		}
	}

	payment := models.Payment{
		ID:          ledger.NewID(),
		InvoiceID:   input.InvoiceID,
		InvoiceNo:   input.InvoiceNo,
		PaymentDate: input.PaymentDate,
		Method:      input.Method,
		Amount:      input.Amount,
		Notes:       input.Notes,
		CreatedAt:   models.Timestamp(s.now()),
	}
	if err := s.repo.Create(ctx, payment); err != nil {
		return nil, nil, err
	}

	invoice, err := s.applyToInvoice(ctx, payment)
	if err != nil {
		// the payment is already stored; report the failed reconciliation
		return &payment, nil, fmt.Errorf("payment %s saved but invoice not updated: %w", payment.ID, err)
	}

	logger.Log.InfoContext(ctx, "payment recorded",
		"payment_id", payment.ID, "invoice_id", payment.InvoiceID, "amount", payment.Amount)
	return &payment, invoice, nil
}

func (s *PaymentService) applyToInvoice(ctx context.Context, payment models.Payment) (*models.Invoice, error) {
	release, err := s.locker.Lock(ctx, invoiceLockKey(payment.InvoiceID))
	if err != nil {
		return nil, err
	}
	defer release()

	var fsmErr error
	invoice, found, err := s.invoiceRepo.Update(ctx, payment.InvoiceID, func(inv *models.Invoice) {
		fsmErr = statemachine.NewInvoiceFSM(inv).RecordPayment(ctx, payment.Amount)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Log.WarnContext(ctx, "payment references a missing invoice, invoice update skipped",
			"payment_id", payment.ID, "invoice_id", payment.InvoiceID)
		return nil, nil
	}
	if fsmErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, fsmErr)
	}
	return invoice, nil
}

// Update edits the payment record only. The invoice keeps its amounts; use
// InvoiceService.Recalculate to rebuild them.
func (s *PaymentService) Update(ctx context.Context, id string, input PaymentInput) (*models.Payment, error) {
	input, err := s.check(input)
	if err != nil {
		return nil, err
	}

	payment, found, err := s.repo.Update(ctx, id, func(p *models.Payment) {
		if p.InvoiceID != input.InvoiceID {
			p.InvoiceNo = input.InvoiceNo
		} else if input.InvoiceNo != "" {
			p.InvoiceNo = input.InvoiceNo
		}
		p.InvoiceID = input.InvoiceID
		p.PaymentDate = input.PaymentDate
		p.Method = input.Method
		p.Amount = input.Amount
		p.Notes = input.Notes
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return payment, nil
}

// Delete removes the payment record only; the invoice is left as it is
func (s *PaymentService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *PaymentService) check(input PaymentInput) (PaymentInput, error) {
	input.InvoiceID = strings.TrimSpace(input.InvoiceID)
	input.InvoiceNo = strings.TrimSpace(input.InvoiceNo)
	input.Method = strings.TrimSpace(input.Method)
	input.PaymentDate = strings.TrimSpace(input.PaymentDate)
	if input.PaymentDate == "" {
		input.PaymentDate = ledger.FormatDate(s.now())
	}

	if err := validateInput(input); err != nil {
		return input, err
	}
	if _, err := ledger.ParseDate(input.PaymentDate); err != nil {
		return input, fieldError("paymentDate", "expected DD-MM-YYYY")
	}
	return input, nil
}
