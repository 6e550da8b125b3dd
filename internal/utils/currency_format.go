package utils

import (
	"github.com/shopspring/decimal"
)

// FormatWithPrecision formats an amount with the given precision
// Example: 12.3456 with precision 2 returns "12.35"
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatAmount formats a transaction amount for display with two decimal places.
func FormatAmount(amount decimal.Decimal) string {
	return FormatWithPrecision(amount, 2)
}
