package services

import (
	"errors"
	"strings"

	"github.com/sjperalta/lumina-api/internal/ledger"
	"github.com/sjperalta/lumina-api/internal/models"
)

// DocumentInput holds the fields shared by quotations and invoices
type DocumentInput struct {
	Date          string                 `json:"date"`
	Client        string                 `json:"client" validate:"required"`
	Contact       string                 `json:"contact"`
	Project       string                 `json:"project"`
	Location      string                 `json:"location"`
	TRN           string                 `json:"trn"`
	VATPercentage *float64               `json:"vatPercentage" validate:"omitempty,gte=0"`
	Items         []models.QuotationItem `json:"items"`
}

// pricedDocument is the derived part of a quotation or invoice
type pricedDocument struct {
	items         []models.QuotationItem
	vatPercentage float64
	totals        ledger.Totals
	amountInWords string
}

// price drops blank items, recomputes every amount and spells the grand total
func price(input DocumentInput, defaultVAT float64) (pricedDocument, error) {
	vat := defaultVAT
	if input.VATPercentage != nil {
		vat = *input.VATPercentage
	}

	items := ledger.DropBlankItems(input.Items)
	for i := range items {
		items[i].Description = strings.TrimSpace(items[i].Description)
		items[i].Qty = strings.TrimSpace(items[i].Qty)
		items[i].Rate = strings.TrimSpace(items[i].Rate)
	}
	totals := ledger.ComputeTotals(items, vat)

	words, err := ledger.AmountInWords(totals.GrandTotal)
	if errors.Is(err, ledger.ErrAmountOutOfRange) {
		return pricedDocument{}, fieldError("items", "grand total is out of range")
	}
	if err != nil {
		return pricedDocument{}, err
	}

	return pricedDocument{
		items:         items,
		vatPercentage: vat,
		totals:        totals,
		amountInWords: words,
	}, nil
}

func cleanDocument(input DocumentInput) DocumentInput {
	input.Date = strings.TrimSpace(input.Date)
	input.Client = strings.TrimSpace(input.Client)
	input.Contact = strings.TrimSpace(input.Contact)
	input.Project = strings.TrimSpace(input.Project)
	input.Location = strings.TrimSpace(input.Location)
	input.TRN = strings.TrimSpace(input.TRN)
	return input
}
