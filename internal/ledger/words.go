package ledger

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrAmountOutOfRange is returned for amounts that cannot be spelled out
var ErrAmountOutOfRange = errors.New("amount out of range for words")

// MaxWordsAmount is the first amount AmountInWords refuses
const MaxWordsAmount = 1_000_000_000_000

// AmountInWords spells an amount in English with riyals and halalas.
// Example: 1500.50 -> "One Thousand Five Hundred Riyals and Fifty Halalas Only"
func AmountInWords(amount float64) (string, error) {
	if amount < 0 || amount >= MaxWordsAmount {
		return "", ErrAmountOutOfRange
	}
	if amount == 0 {
		return "Zero Riyals Only", nil
	}

	rounded := decimal.NewFromFloat(amount).Round(2)
	integerPart := rounded.IntPart()
	halalas := rounded.Sub(decimal.NewFromInt(integerPart)).Mul(decimal.NewFromInt(100)).IntPart()

	var b strings.Builder
	for _, scale := range scales {
		if integerPart >= scale.value {
			b.WriteString(convertHundreds(integerPart / scale.value))
			b.WriteString(scale.name)
			b.WriteString(" ")
			integerPart %= scale.value
		}
	}
	if integerPart > 0 {
		b.WriteString(convertHundreds(integerPart))
	}
	b.WriteString("Riyals")

	if halalas > 0 {
		b.WriteString(" and ")
		b.WriteString(convertHundreds(halalas))
		b.WriteString("Halalas")
	}

	return strings.TrimSpace(b.String()) + " Only", nil
}

// convertHundreds spells 0-999, each word followed by a space
func convertHundreds(n int64) string {
	var b strings.Builder

	if n >= 100 {
		b.WriteString(ones[n/100])
		b.WriteString(" Hundred ")
		n %= 100
	}

	switch {
	case n >= 20:
		b.WriteString(tens[n/10])
		b.WriteString(" ")
		n %= 10
	case n >= 10:
		b.WriteString(teens[n-10])
		b.WriteString(" ")
		return b.String()
	}

	if n > 0 {
		b.WriteString(ones[n])
		b.WriteString(" ")
	}
	return b.String()
}

var scales = []struct {
	value int64
	name  string
}{
	{1_000_000_000, "Billion"},
	{1_000_000, "Million"},
	{1_000, "Thousand"},
}

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
}

var teens = []string{
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}
