package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sjperalta/lumina-api/internal/models"
)

var hundred = decimal.NewFromInt(100)

// Totals are the derived amounts of a quotation or invoice
type Totals struct {
	Subtotal   float64
	VATAmount  float64
	GrandTotal float64
}

// ParseAmount reads a user-typed number. Anything unparseable counts as zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ComputeItem returns qty x rate
func ComputeItem(qty, rate string) float64 {
	return ParseAmount(qty).Mul(ParseAmount(rate)).InexactFloat64()
}

// ComputeTotals recomputes every item amount and the document totals.
// Items are updated in place.
func ComputeTotals(items []models.QuotationItem, vatPercentage float64) Totals {
	subtotal := decimal.Zero
	for i := range items {
		amount := ParseAmount(items[i].Qty).Mul(ParseAmount(items[i].Rate))
		items[i].Amount = amount.InexactFloat64()
		subtotal = subtotal.Add(amount)
	}

	vat := subtotal.Mul(decimal.NewFromFloat(vatPercentage)).Div(hundred)
	grand := subtotal.Add(vat)

	return Totals{
		Subtotal:   subtotal.Round(2).InexactFloat64(),
		VATAmount:  vat.Round(2).InexactFloat64(),
		GrandTotal: grand.Round(2).InexactFloat64(),
	}
}

// DropBlankItems removes items without a description. Missing item ids are filled in.
func DropBlankItems(items []models.QuotationItem) []models.QuotationItem {
	kept := make([]models.QuotationItem, 0, len(items))
	for _, item := range items {
		if strings.TrimSpace(item.Description) == "" {
			continue
		}
		if item.ID == "" {
			item.ID = NewID()
		}
		kept = append(kept, item)
	}
	return kept
}
