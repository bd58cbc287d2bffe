package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every formatted amount
const CurrencySymbol = "﷼"

// DateLayout is the DD-MM-YYYY layout used for every stored date
const DateLayout = "02-01-2006"

// MonthLayout is the YYYY-MM layout of attendance months
const MonthLayout = "2006-01"

// FormatCurrency renders amount as "﷼ 1,234.56"
func FormatCurrency(amount float64) string {
	return CurrencySymbol + " " + FormatAmount(amount)
}

// FormatAmount renders amount with thousands separators and exactly two decimals
func FormatAmount(amount float64) string {
	fixed := decimal.NewFromFloat(amount).StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign = "-"
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")
	if sign != "" && strings.Trim(intPart+fracPart, "0") == "" {
		sign = ""
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + b.String() + "." + fracPart
}

// FormatDate renders t as DD-MM-YYYY
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a DD-MM-YYYY string
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected DD-MM-YYYY: %w", s, err)
	}
	return t, nil
}

// ParseMonth parses a YYYY-MM string
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t, nil
}

// FormatMonth turns "2025-03" into "March 2025"
func FormatMonth(month string) (string, error) {
	t, err := ParseMonth(month)
	if err != nil {
		return "", err
	}
	return t.Format("January 2006"), nil
}

// DueDate returns the date terms days after date, both DD-MM-YYYY
func DueDate(date string, termDays int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, termDays)), nil
}
