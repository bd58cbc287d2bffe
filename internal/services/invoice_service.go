package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/lumina-api/internal/config"
	"github.com/sjperalta/lumina-api/internal/kvstore"
	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/internal/statemachine"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

// InvoiceInput creates or replaces an invoice. An empty number is generated, an empty
// due date defaults to the payment term and an empty status keeps the current one.
type InvoiceInput struct {
	DocumentInput
	InvoiceNo     string `json:"invoiceNo"`
	DueDate       string `json:"dueDate"`
	PaymentStatus string `json:"paymentStatus" validate:"omitempty,oneof=pending partial paid"`
}

// InvoiceService manages invoices and their payment status
type InvoiceService struct {
	repo          repository.InvoiceRepository
	paymentRepo   repository.PaymentRepository
	quotationRepo repository.QuotationRepository
	locker        kvstore.Locker
	numbers       *ledger.NumberGenerator
	cfg           *config.Config
	now           func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	repo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	quotationRepo repository.QuotationRepository,
	locker kvstore.Locker,
	numbers *ledger.NumberGenerator,
	cfg *config.Config,
) *InvoiceService {
	return &InvoiceService{
		repo:          repo,
		paymentRepo:   paymentRepo,
		quotationRepo: quotationRepo,
		locker:        locker,
		numbers:       numbers,
		cfg:           cfg,
		now:           time.Now,
	}
}

func (s *InvoiceService) List(ctx context.Context, query *repository.ListQuery) ([]models.Invoice, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *InvoiceService) FindByID(ctx context.Context, id string) (*models.Invoice, error) {
	invoice, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return invoice, nil
}

// NextNumber proposes an invoice number not used yet
func (s *InvoiceService) NextNumber(ctx context.Context) (string, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(all))
	for _, inv := range all {
		taken[inv.InvoiceNo] = true
	}
	return s.numbers.Next(ledger.PrefixInvoice, s.now(), taken)
}

// Create stores a new invoice. It starts pending with nothing paid unless paid is chosen.
func (s *InvoiceService) Create(ctx context.Context, input InvoiceInput) (*models.Invoice, error) {
	input, err := s.check(input)
	if err != nil {
		return nil, err
	}
	priced, err := price(input.DocumentInput, s.cfg.DefaultVATPercentage)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.InvoiceNo)
	if number == "" {
		if number, err = s.NextNumber(ctx); err != nil {
			return nil, err
		}
	}

	invoice := models.Invoice{
		ID:            ledger.NewID(),
		InvoiceNo:     number,
		PaymentStatus: models.InvoiceStatusPending,
		CreatedAt:     models.Timestamp(s.now()),
	}
	applyInvoice(&invoice, input, priced)

	status := input.PaymentStatus
	if status == "" {
		status = models.InvoiceStatusPending
	}
	if err := statemachine.NewInvoiceFSM(&invoice).Override(ctx, status); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, err)
	}

	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, err
	}

	logger.Log.InfoContext(ctx, "invoice created",
		"invoice_id", invoice.ID, "invoice_no", invoice.InvoiceNo,
		"grand_total", invoice.GrandTotal, "status", invoice.PaymentStatus)
	return &invoice, nil
}

// Update recomputes totals and applies the chosen status. The paid amount is kept
// unless paid is chosen, so the balance follows the new grand total.
func (s *InvoiceService) Update(ctx context.Context, id string, input InvoiceInput) (*models.Invoice, error) {
	input, err := s.check(input)
	if err != nil {
		return nil, err
	}
	priced, err := price(input.DocumentInput, s.cfg.DefaultVATPercentage)
	if err != nil {
		return nil, err
	}

	release, err := s.locker.Lock(ctx, invoiceLockKey(id))
	if err != nil {
		return nil, err
	}
	defer release()

	var fsmErr error
	invoice, found, err := s.repo.Update(ctx, id, func(inv *models.Invoice) {
		if n := strings.TrimSpace(input.InvoiceNo); n != "" {
			inv.InvoiceNo = n
		}
		applyInvoice(inv, input, priced)

		status := input.PaymentStatus
		if status == "" {
			status = inv.PaymentStatus
		}
		fsmErr = statemachine.NewInvoiceFSM(inv).Override(ctx, status)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	if fsmErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, fsmErr)
	}
	return invoice, nil
}

// Delete removes the invoice. Its payments stay and keep pointing at the old id.
func (s *InvoiceService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	logger.Log.InfoContext(ctx, "invoice deleted", "invoice_id", id)
	return nil
}

// Payments lists the payments recorded against an invoice
func (s *InvoiceService) Payments(ctx context.Context, id string) ([]models.Payment, error) {
	all, err := s.paymentRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	payments := make([]models.Payment, 0)
	for _, p := range all {
		if p.InvoiceID == id {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

// Recalculate rebuilds paid amount, balance and status from the invoice's payments.
// It is only run on request; editing or deleting a payment never triggers it.
func (s *InvoiceService) Recalculate(ctx context.Context, id string) (*models.Invoice, error) {
	release, err := s.locker.Lock(ctx, invoiceLockKey(id))
	if err != nil {
		return nil, err
	}
	defer release()

	payments, err := s.Payments(ctx, id)
	if err != nil {
		return nil, err
	}
	paid := decimal.Zero
	for _, p := range payments {
		paid = paid.Add(decimal.NewFromFloat(p.Amount))
	}

	var fsmErr error
	invoice, found, err := s.repo.Update(ctx, id, func(inv *models.Invoice) {
		fsmErr = statemachine.NewInvoiceFSM(inv).Reconcile(ctx, paid.InexactFloat64())
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	if fsmErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidState, fsmErr)
	}

	logger.Log.InfoContext(ctx, "invoice recalculated",
		"invoice_id", id, "payments", len(payments), "paid_amount", invoice.PaidAmount, "status", invoice.PaymentStatus)
	return invoice, nil
}

// ConvertQuotation creates a pending invoice carrying a quotation's client and items
func (s *InvoiceService) ConvertQuotation(ctx context.Context, quotationID string) (*models.Invoice, error) {
	quotation, found, err := s.quotationRepo.FindByID(ctx, quotationID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}

	vat := quotation.VATPercentage
	items := make([]models.QuotationItem, len(quotation.Items))
	for i, item := range quotation.Items {
		item.ID = ledger.NewID()
		items[i] = item
	}

	return s.Create(ctx, InvoiceInput{
		DocumentInput: DocumentInput{
			Date:          ledger.FormatDate(s.now()),
			Client:        quotation.Client,
			Contact:       quotation.Contact,
			Project:       quotation.Project,
			Location:      quotation.Location,
			TRN:           quotation.TRN,
			VATPercentage: &vat,
			Items:         items,
		},
		PaymentStatus: models.InvoiceStatusPending,
	})
}

// Overdue returns invoices past their due date that still have a balance
func (s *InvoiceService) Overdue(ctx context.Context, at time.Time) ([]models.Invoice, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	today := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, time.UTC)
	overdue := make([]models.Invoice, 0)
	for _, inv := range all {
		if !inv.IsOutstanding() {
			continue
		}
		due, err := ledger.ParseDate(inv.DueDate)
		if err != nil {
			continue
		}
		if due.Before(today) {
			overdue = append(overdue, inv)
		}
	}
	return overdue, nil
}

func (s *InvoiceService) check(input InvoiceInput) (InvoiceInput, error) {
	input.DocumentInput = cleanDocument(input.DocumentInput)
	input.DueDate = strings.TrimSpace(input.DueDate)
	input.PaymentStatus = strings.TrimSpace(input.PaymentStatus)

	if input.Date == "" {
		input.Date = ledger.FormatDate(s.now())
	}
	if err := validateInput(input); err != nil {
		return input, err
	}
	if _, err := ledger.ParseDate(input.Date); err != nil {
		return input, fieldError("date", "expected DD-MM-YYYY")
	}

	if input.DueDate == "" {
		due, err := ledger.DueDate(input.Date, s.cfg.PaymentTermDays)
		if err != nil {
			return input, fieldError("date", "expected DD-MM-YYYY")
		}
		input.DueDate = due
	} else if _, err := ledger.ParseDate(input.DueDate); err != nil {
		return input, fieldError("dueDate", "expected DD-MM-YYYY")
	}
	return input, nil
}

func applyInvoice(inv *models.Invoice, input InvoiceInput, priced pricedDocument) {
	inv.Date = input.Date
	inv.DueDate = input.DueDate
	inv.Client = input.Client
	inv.Contact = input.Contact
	inv.Project = input.Project
	inv.Location = input.Location
	inv.TRN = input.TRN
	inv.Items = priced.items
	inv.Subtotal = priced.totals.Subtotal
	inv.VATPercentage = priced.vatPercentage
	inv.VATAmount = priced.totals.VATAmount
	inv.GrandTotal = priced.totals.GrandTotal
	inv.AmountInWords = priced.amountInWords
}

func invoiceLockKey(id string) string {
	return "invoice:" + id
}
