// Package core holds the domain types shared by the ledger service and the
// statement engine: accounts, entries, categories and amount parsing.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount converts a user-supplied monetary string to a decimal amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. A leading
// minus is accepted: the ledger does not enforce non-negative magnitudes, and
// a negative amount is aggregated as the opposite entry type. Returns
// ErrInvalidAmount for anything that is not a plain decimal number.
//
// Examples:
//
//	ParseAmount("12.34")  -> 12.34
//	ParseAmount("12,34")  -> 12.34
//	ParseAmount("-5")     -> -5
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}
