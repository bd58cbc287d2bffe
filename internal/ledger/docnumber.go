package ledger

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Document number prefixes
const (
	PrefixQuotation = "QT"
	PrefixInvoice   = "INV"
)

// ErrNumberSpaceExhausted is returned when every attempt hit an existing number
var ErrNumberSpaceExhausted = errors.New("no free document number for this month")

const maxNumberAttempts = 50

// NumberGenerator builds document numbers as prefix + YY + MM + 3 random digits
type NumberGenerator struct {
	suffix func() int
}

// NewNumberGenerator creates a generator with random suffixes
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{
		suffix: func() int { return rand.IntN(1000) },
	}
}

// Next returns a number for the month of at that is not present in taken
func (g *NumberGenerator) Next(prefix string, at time.Time, taken map[string]bool) (string, error) {
	stamp := at.Format("0601")
	for i := 0; i < maxNumberAttempts; i++ {
		n := fmt.Sprintf("%s%s%03d", prefix, stamp, g.suffix())
		if !taken[n] {
			return n, nil
		}
	}
	return "", fmt.Errorf("%s: %w", prefix, ErrNumberSpaceExhausted)
}

// NewID returns an opaque unique identifier
func NewID() string {
	return uuid.NewString()
}
