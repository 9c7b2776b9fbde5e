package utils

import (
	"math"

	"github.com/shopspring/decimal"
)

// ProposedQuantity returns how many whole shares amount buys at price.
func ProposedQuantity(amount float64, price float64) float64 {
	if price <= 0 || amount <= 0 {
		return 0
	}

	return decimal.NewFromFloat(amount).Div(decimal.NewFromFloat(price)).Floor().InexactFloat64()
}

// RoundToDecimalPrecision floors quantity to the specified decimal precision.
func RoundToDecimalPrecision(quantity float64, decimalPrecision int) float64 {
	multiplier := math.Pow10(decimalPrecision)

	return math.Floor(quantity*multiplier) / multiplier
}

// RoundPrice rounds a price half away from zero to the given number of decimals.
func RoundPrice(price float64, places int32) float64 {
	return decimal.NewFromFloat(price).Round(places).InexactFloat64()
}

// Notional returns quantity * price without accumulating float error.
func Notional(quantity float64, price float64) float64 {
	return decimal.NewFromFloat(quantity).Mul(decimal.NewFromFloat(price)).InexactFloat64()
}

// DiscountedPrice returns price * (1 - fraction) rounded to places decimals.
func DiscountedPrice(price float64, fraction float64, places int32) float64 {
	factor := decimal.NewFromInt(1).Sub(decimal.NewFromFloat(fraction))

	return decimal.NewFromFloat(price).Mul(factor).Round(places).InexactFloat64()
}
