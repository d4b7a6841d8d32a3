package core

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// amounts travel as JSON numbers, like the dashboard forms send them
	decimal.MarshalJSONWithoutQuotes = true
}

// ParseAmount converts raw form input into an amount. Invalid input is coerced to zero.
// Both "1234.5" and "1234,5" are accepted.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseCount converts raw form input into a non-negative count. Invalid input is coerced to zero.
func ParseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// NullAmount returns a valid decimal.NullDecimal holding d.
func NullAmount(d decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
