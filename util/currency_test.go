package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "EUR", NormalizeCurrency(" eur "))
	assert.Equal(t, "", NormalizeCurrency("   "))
}

func TestIsKnownCurrency(t *testing.T) {
	assert.True(t, IsKnownCurrency("usd"))
	assert.True(t, IsKnownCurrency("SGD"))
	assert.False(t, IsKnownCurrency("XYZ"))
	assert.Len(t, KnownCurrencies, 22)
}
