// Package money provides the fixed-point currency representation used by the
// pricing engine. Amounts are carried as integer cents so that summing many
// rows never accumulates floating-point drift.
package money

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Cents is a USD amount in integer cents.
type Cents int64

var usd = message.NewPrinter(language.AmericanEnglish)

// String renders the amount as a localized en-US currency string, e.g.
// "$75.00" or "$1,234.56".
func (c Cents) String() string {
	neg := c < 0
	if neg {
		c = -c
	}
	d := number.Decimal(float64(c)/100,
		number.MinFractionDigits(2), number.MaxFractionDigits(2))
	if neg {
		return usd.Sprintf("-$%v", d)
	}
	return usd.Sprintf("$%v", d)
}

// Dollars returns the amount as a float64 dollar value. Display only; all
// arithmetic stays in cents.
func (c Cents) Dollars() float64 {
	return float64(c) / 100
}

// Parse converts a decimal dollar string such as "0.68" or "$1,234.56" to
// cents, rounding half away from zero.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return Cents(math.Round(f * 100)), nil
}

// ParseOrZero is Parse with non-numeric input treated as zero. Form inputs
// are free text, so junk collapses to an empty amount rather than an error.
func ParseOrZero(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		return 0
	}
	return c
}
