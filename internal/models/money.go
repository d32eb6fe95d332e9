package models

import "github.com/shopspring/decimal"

// CurrencySymbol prefixes every rendered monetary value.
const CurrencySymbol = "$"

// FormatAmount renders a monetary value with the currency symbol and
// exactly two fraction digits. Negative values carry a leading minus
// sign before the symbol.
func FormatAmount(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "-" + CurrencySymbol + amount.Neg().StringFixed(2)
	}
	return CurrencySymbol + amount.StringFixed(2)
}

// FormatStd renders a standard deviation, substituting a placeholder
// dash for undefined values so "NaN" never reaches the screen.
func FormatStd(std StdDev) string {
	if !std.Valid {
		return "-"
	}
	return FormatAmount(decimal.NewFromFloat(std.Value))
}
