package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount a DECIMAL(10,2) column holds.
var MaxAmount = decimal.New(9_999_999_999, -2)

// Bounds on the digits an amount may carry before rounding. Rescaling a
// decimal costs time proportional to its exponent, so values such as
// "1e999999999" are rejected before Round touches them.
const (
	maxIntegerDigits  = 10
	maxFractionDigits = 20
)

// ParseAmount parses user input such as "12.50" or "12,50" into an amount.
// The value is rounded half-up to cents and must be positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "required", Err: ErrInvalidAmount}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "not a number", Err: ErrInvalidAmount}
	}
	return NormalizeAmount(d)
}

// NormalizeAmount rounds d to cents and checks it is within (0, MaxAmount].
func NormalizeAmount(d decimal.Decimal) (decimal.Decimal, error) {
	if exp := int64(d.Exponent()); exp > 0 && int64(d.NumDigits())+exp > maxIntegerDigits {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must not exceed " + MaxAmount.StringFixed(2), Err: ErrInvalidAmount}
	} else if exp < -maxFractionDigits {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "has too many decimal places", Err: ErrInvalidAmount}
	}
	d = d.Round(2)
	if !d.IsPositive() {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must be greater than zero", Err: ErrInvalidAmount}
	}
	if d.GreaterThan(MaxAmount) {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "must not exceed " + MaxAmount.StringFixed(2), Err: ErrInvalidAmount}
	}
	return d, nil
}

// ToCents converts an amount to integer cents, rounding half-up.
func ToCents(d decimal.Decimal) int64 {
	return d.Shift(2).Round(0).IntPart()
}

// FromCents converts integer cents back to an amount.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
