package util

import (
	"strings"

	"github.com/samber/lo"
)

// KnownCurrencies are offered as choices when the xe command is registered.
// Lookups never reject codes outside this list; the upstream API decides.
var KnownCurrencies = []string{
	"USD", "EUR", "JPY", "BGN", "BTC", "CZK", "DKK", "GBP", "SEK", "CHF", "AUD",
	"BRL", "CAD", "CNY", "HKD", "INR", "KRW", "MXN", "MYR", "NZD", "PHP", "SGD",
}

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// IsKnownCurrency reports whether currency is one of KnownCurrencies.
func IsKnownCurrency(currency string) bool {
	return lo.Contains(KnownCurrencies, NormalizeCurrency(currency))
}
