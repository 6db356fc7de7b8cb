package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

func DecimalFromString(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(strings.TrimSpace(s))
}

// DecimalOrDefault parses s, returning fallback when s is empty or malformed.
func DecimalOrDefault(s string, fallback decimal.Decimal) decimal.Decimal {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	d, err := DecimalFromString(s)
	if err != nil {
		return fallback
	}
	return d
}
