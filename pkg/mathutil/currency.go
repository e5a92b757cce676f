// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(constants.PercentageMultiplier)

// RoundCents rounds a decimal amount to the nearest whole cent. Halves round
// away from zero.
func RoundCents(val decimal.Decimal) int64 {
	return val.Round(0).IntPart()
}

// DivRound divides a cent amount by n and rounds to the nearest cent.
// Division by zero yields 0.
func DivRound(amount, n int64) int64 {
	if n == 0 {
		return 0
	}
	return RoundCents(decimal.NewFromInt(amount).Div(decimal.NewFromInt(n)))
}

// Percent returns rate/100 as a decimal, e.g. 10 -> 0.1.
func Percent(rate float64) decimal.Decimal {
	return decimal.NewFromFloat(rate).Div(hundred)
}

// CalculatePercentage calculates what percentage value is of total. A zero
// total yields 0.
func CalculatePercentage(value, total int64) float64 {
	if total == 0 {
		return 0
	}
	pct, _ := decimal.NewFromInt(value).Div(decimal.NewFromInt(total)).Mul(hundred).Float64()
	return pct
}

// Max returns the larger of two cent amounts
func Max(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
