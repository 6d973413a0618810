package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatBRL renders an amount the way the reports display money:
// "R$ 1.234,56" with a comma decimal separator and dot thousand grouping.
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	parts := strings.SplitN(fixed, ".", 2)
	integer, cents := parts[0], parts[1]

	var grouped strings.Builder
	for i, digit := range integer {
		if i > 0 && (len(integer)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(digit)
	}

	out := "R$ " + grouped.String() + "," + cents
	if negative {
		out = "-" + out
	}
	return out
}

// FormatPlain renders an amount with two decimal places and no currency
// symbol, for CSV exports and API display strings.
func FormatPlain(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
