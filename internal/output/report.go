package output

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// FormatCurrency formats a decimal as currency
func FormatCurrency(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-$" + amount.Abs().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatPercentage formats a value already expressed in percent
func FormatPercentage(amount decimal.Decimal) string {
	return amount.StringFixed(2) + "%"
}

// FormatRatio formats a ratio such as 0.1384 as a percentage
func FormatRatio(ratio decimal.Decimal) string {
	return FormatPercentage(ratio.Mul(hundred))
}
