package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sjperalta/lumina-api/internal/models"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "Zero Riyals Only"},
		{1, "One Riyals Only"},
		{15, "Fifteen Riyals Only"},
		{21, "Twenty One Riyals Only"},
		{115, "One Hundred Fifteen Riyals Only"},
		{402.5, "Four Hundred Two Riyals and Fifty Halalas Only"},
		{1500.50, "One Thousand Five Hundred Riyals and Fifty Halalas Only"},
		{1000000, "One Million Riyals Only"},
		{2500000000, "Two Billion Five Hundred Million Riyals Only"},
		{10.99, "Ten Riyals and Ninety Nine Halalas Only"},
	}

	for _, tt := range tests {
		got, err := AmountInWords(tt.amount)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, got, "amount %v", tt.amount)
	}
}

func TestAmountInWords_Fragments(t *testing.T) {
	words, err := AmountInWords(1500.50)
	require.NoError(t, err)
	assert.Contains(t, words, "One Thousand Five Hundred")
	assert.Contains(t, words, "and Fifty Halalas")

	words, err = AmountInWords(1000000)
	require.NoError(t, err)
	assert.Contains(t, words, "Million")
}

func TestAmountInWords_RoundsHalalasIntoRiyals(t *testing.T) {
	words, err := AmountInWords(9.999)
	require.NoError(t, err)
	assert.Equal(t, "Ten Riyals Only", words)
}

func TestAmountInWords_OutOfRange(t *testing.T) {
	_, err := AmountInWords(-1)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)

	_, err = AmountInWords(MaxWordsAmount)
	assert.ErrorIs(t, err, ErrAmountOutOfRange)
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		amount   float64
		expected string
	}{
		{0, "﷼ 0.00"},
		{5, "﷼ 5.00"},
		{999.999, "﷼ 1,000.00"},
		{1234.56, "﷼ 1,234.56"},
		{1000000, "﷼ 1,000,000.00"},
		{-1234.5, "﷼ -1,234.50"},
		{-0.001, "﷼ 0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCurrency(tt.amount), "amount %v", tt.amount)
	}
}

func TestDates(t *testing.T) {
	d := time.Date(2025, time.March, 7, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "07-03-2025", FormatDate(d))

	parsed, err := ParseDate("07-03-2025")
	require.NoError(t, err)
	assert.Equal(t, 7, parsed.Day())
	assert.Equal(t, time.March, parsed.Month())

	_, err = ParseDate("2025-03-07")
	assert.Error(t, err)

	due, err := DueDate("15-01-2025", 30)
	require.NoError(t, err)
	assert.Equal(t, "14-02-2025", due)
}

func TestFormatMonth(t *testing.T) {
	display, err := FormatMonth("2025-03")
	require.NoError(t, err)
	assert.Equal(t, "March 2025", display)

	_, err = FormatMonth("03-2025")
	assert.Error(t, err)
}

func TestComputeTotals(t *testing.T) {
	items := []models.QuotationItem{
		{Description: "Tiles", Qty: "2", Rate: "100"},
		{Description: "Labour", Qty: "3", Rate: "50"},
	}

	totals := ComputeTotals(items, 15)

	assert.Equal(t, 350.0, totals.Subtotal)
	assert.Equal(t, 52.5, totals.VATAmount)
	assert.Equal(t, 402.5, totals.GrandTotal)
	assert.Equal(t, 200.0, items[0].Amount)
	assert.Equal(t, 150.0, items[1].Amount)
}

func TestComputeItem_NonNumeric(t *testing.T) {
	assert.Equal(t, 0.0, ComputeItem("abc", "10"))
	assert.Equal(t, 0.0, ComputeItem("", "10"))
	assert.Equal(t, 25.0, ComputeItem(" 2.5 ", "10"))
}

func TestDropBlankItems(t *testing.T) {
	items := []models.QuotationItem{
		{ID: "a", Description: "Paint", Qty: "1", Rate: "10"},
		{Description: "   ", Qty: "5", Rate: "5"},
		{Description: "Brushes", Qty: "2", Rate: "3"},
	}

	kept := DropBlankItems(items)

	require.Len(t, kept, 2)
	assert.Equal(t, "a", kept[0].ID)
	assert.NotEmpty(t, kept[1].ID)
}

func TestSettle(t *testing.T) {
	s := Settle(1000, 0, 400)
	assert.Equal(t, models.InvoiceStatusPartial, s.Status)
	assert.Equal(t, 400.0, s.PaidAmount)
	assert.Equal(t, 600.0, s.BalanceAmount)

	s = Settle(1000, s.PaidAmount, 600)
	assert.Equal(t, models.InvoiceStatusPaid, s.Status)
	assert.Equal(t, 1000.0, s.PaidAmount)
	assert.Equal(t, 0.0, s.BalanceAmount)

	s = Settle(1000, 1000, 50)
	assert.Equal(t, models.InvoiceStatusPaid, s.Status)
	assert.Equal(t, -50.0, s.BalanceAmount)

	s = SettleTotal(1000, 0)
	assert.Equal(t, models.InvoiceStatusPending, s.Status)
}

func TestNumberGenerator(t *testing.T) {
	suffixes := []int{7, 7, 42}
	march := time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)
	g := &NumberGenerator{
		suffix: func() int {
			s := suffixes[0]
			suffixes = suffixes[1:]
			return s
		},
	}

	n, err := g.Next(PrefixQuotation, march, nil)
	require.NoError(t, err)
	assert.Equal(t, "QT2503007", n)

	n, err = g.Next(PrefixInvoice, march, map[string]bool{"INV2503007": true})
	require.NoError(t, err)
	assert.Equal(t, "INV2503042", n)
}

func TestNumberGenerator_Exhausted(t *testing.T) {
	g := &NumberGenerator{
		suffix: func() int { return 1 },
	}
	now := time.Now()
	taken := map[string]bool{}
	taken[PrefixInvoice+now.Format("0601")+"001"] = true

	_, err := g.Next(PrefixInvoice, now, taken)
	assert.ErrorIs(t, err, ErrNumberSpaceExhausted)
}

func TestNewID(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
