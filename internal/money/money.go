// Package money holds the decimal helpers shared by the billing code.
// Every monetary and percentage value is a decimal.Decimal; floats never
// enter a computation.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumericInput is returned when a value cannot be read as a number
// after locale normalization.
var ErrInvalidNumericInput = errors.New("invalid numeric input")

// Places is the number of fractional digits kept for amounts.
const Places = 2

// Hundred is used to turn percentages into rates.
var Hundred = decimal.NewFromInt(100)

// Normalize replaces comma decimal separators with dots and trims blanks.
// "12,5" becomes "12.5". Thousands separators are not supported.
func Normalize(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

// Parse reads a required decimal. Empty input is an error.
func Parse(s string) (decimal.Decimal, error) {
	n := Normalize(s)
	if n == "" {
		return decimal.Zero, fmt.Errorf("%w: empty value", ErrInvalidNumericInput)
	}
	d, err := decimal.NewFromString(n)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumericInput, s)
	}
	return d, nil
}

// ParseOptional reads a nullable decimal; blank input gives an invalid
// (null) value and no error.
func ParseOptional(s string) (decimal.NullDecimal, error) {
	if Normalize(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := Parse(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseDefault reads a decimal, falling back to def on blank input.
func ParseDefault(s string, def decimal.Decimal) (decimal.Decimal, error) {
	if Normalize(s) == "" {
		return def, nil
	}
	return Parse(s)
}

// Round rounds half-up to two places. Amounts are never negative so
// away-from-zero rounding is the same thing.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(Places)
}

// Rate converts a percentage (10 for 10%) to a multiplier (0.1).
func Rate(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(Hundred)
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Sum adds up values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Format renders d with two decimals.
func Format(d decimal.Decimal) string {
	return d.StringFixed(Places)
}

// FormatCurrency renders "EUR 12.50", or the bare amount when currency is empty.
func FormatCurrency(d decimal.Decimal, currency string) string {
	if currency == "" {
		return Format(d)
	}
	return currency + " " + Format(d)
}

// FormatPercent renders "10.00%"; a null value renders as an empty string.
func FormatPercent(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.StringFixed(Places) + "%"
}
