package services

import (
	"context"
	"strings"
	"time"

	"github.com/sjperalta/lumina-api/internal/config"
	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
	"github.com/sjperalta/lumina-api/internal/repository"
	"github.com/sjperalta/lumina-api/pkg/logger"
)

// QuotationInput creates or replaces a quotation. An empty number is generated.
type QuotationInput struct {
	DocumentInput
	QuotationNo string `json:"quotationNo"`
}

// QuotationService manages quotations
type QuotationService struct {
	repo    repository.QuotationRepository
	numbers *ledger.NumberGenerator
	cfg     *config.Config
	now     func() time.Time
}

// NewQuotationService creates a new quotation service
func NewQuotationService(repo repository.QuotationRepository, numbers *ledger.NumberGenerator, cfg *config.Config) *QuotationService {
	return &QuotationService{repo: repo, numbers: numbers, cfg: cfg, now: time.Now}
}

func (s *QuotationService) List(ctx context.Context, query *repository.ListQuery) ([]models.Quotation, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *QuotationService) FindByID(ctx context.Context, id string) (*models.Quotation, error) {
	quotation, found, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return quotation, nil
}

// NextNumber proposes a quotation number not used yet
func (s *QuotationService) NextNumber(ctx context.Context) (string, error) {
	all, err := s.repo.All(ctx)
	if err != nil {
		return "", err
	}
	taken := make(map[string]bool, len(all))
	for _, q := range all {
		taken[q.QuotationNo] = true
	}
	return s.numbers.Next(ledger.PrefixQuotation, s.now(), taken)
}

func (s *QuotationService) Create(ctx context.Context, input QuotationInput) (*models.Quotation, error) {
	input, err := s.check(input)
	if err != nil {
		return nil, err
	}
	priced, err := price(input.DocumentInput, s.cfg.DefaultVATPercentage)
	if err != nil {
		return nil, err
	}

	number := strings.TrimSpace(input.QuotationNo)
	if number == "" {
		if number, err = s.NextNumber(ctx); err != nil {
			return nil, err
		}
	}

	quotation := models.Quotation{
		ID:          ledger.NewID(),
		QuotationNo: number,
		CreatedAt:   models.Timestamp(s.now()),
	}
	applyQuotation(&quotation, input, priced)

	if err := s.repo.Create(ctx, quotation); err != nil {
		return nil, err
	}

	logger.Log.InfoContext(ctx, "quotation created",
		"quotation_id", quotation.ID, "quotation_no", quotation.QuotationNo, "grand_total", quotation.GrandTotal)
	return &quotation, nil
}

// Update recomputes every derived amount from the submitted items
func (s *QuotationService) Update(ctx context.Context, id string, input QuotationInput) (*models.Quotation, error) {
	input, err := s.check(input)
	if err != nil {
		return nil, err
	}
	priced, err := price(input.DocumentInput, s.cfg.DefaultVATPercentage)
	if err != nil {
		return nil, err
	}

	quotation, found, err := s.repo.Update(ctx, id, func(q *models.Quotation) {
		if n := strings.TrimSpace(input.QuotationNo); n != "" {
			q.QuotationNo = n
		}
		applyQuotation(q, input, priced)
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNotFound
	}
	return quotation, nil
}

func (s *QuotationService) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *QuotationService) check(input QuotationInput) (QuotationInput, error) {
	input.DocumentInput = cleanDocument(input.DocumentInput)
	if input.Date == "" {
		input.Date = ledger.FormatDate(s.now())
	}
	if err := validateInput(input); err != nil {
		return input, err
	}
	if _, err := ledger.ParseDate(input.Date); err != nil {
		return input, fieldError("date", "expected DD-MM-YYYY")
	}
	return input, nil
}

func applyQuotation(q *models.Quotation, input QuotationInput, priced pricedDocument) {
	q.Date = input.Date
	q.Client = input.Client
	q.Contact = input.Contact
	q.Project = input.Project
	q.Location = input.Location
	q.TRN = input.TRN
	q.Items = priced.items
	q.Subtotal = priced.totals.Subtotal
	q.VATPercentage = priced.vatPercentage
	q.VATAmount = priced.totals.VATAmount
	q.GrandTotal = priced.totals.GrandTotal
	q.AmountInWords = priced.amountInWords
}
