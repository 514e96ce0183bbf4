package models

import (
	"fmt"
	"math"
)

// RoundCents rounds v to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatPrice renders v with a currency symbol, e.g. "$7.50".
func FormatPrice(symbol string, v float64) string {
	return fmt.Sprintf("%s%.2f", symbol, v)
}
