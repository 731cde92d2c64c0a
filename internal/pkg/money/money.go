// Package money holds the integer arithmetic helpers for monetary values.
//
// Every amount in this codebase is an int64 in the smallest currency unit
// (cents, paise, or the whole unit for zero-decimal currencies). Totals must
// reconcile exactly, so binary floating point is never used for currency.
package money

import "fmt"

// Percent returns pct percent of amount, truncated toward zero.
func Percent(amount, pct int64) int64 {
	return amount * pct / 100
}

// BasisPoints returns the fraction of amount expressed in basis points
// (1 bp = 0.01%). Tax rates are configured in basis points.
func BasisPoints(amount, bps int64) int64 {
	return amount * bps / 10000
}

// Min returns the smaller of two amounts.
func Min(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

// Format renders a minor-unit amount as a major-unit decimal string.
// Format(123456, 2) == "1234.56". An exponent of 0 renders the raw units.
func Format(minor int64, exponent int) string {
	if exponent <= 0 {
		return fmt.Sprintf("%d", minor)
	}
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	div := int64(1)
	for i := 0; i < exponent; i++ {
		div *= 10
	}
	return fmt.Sprintf("%s%d.%0*d", sign, minor/div, exponent, minor%div)
}
