package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// Round rounds a value to the given number of decimal places, half away from zero
func Round(value float64, places int32) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return value
	}
	return decimal.NewFromFloat(value).Round(places).InexactFloat64()
}

// Round2 rounds a currency amount to cents
func Round2(value float64) float64 {
	return Round(value, 2)
}

// IsFinite reports whether value is neither NaN nor infinite
func IsFinite(value float64) bool {
	return !math.IsNaN(value) && !math.IsInf(value, 0)
}
