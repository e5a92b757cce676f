// Package loans provides common loan and facility interest calculations.
package loans

import (
	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/iwvelando/feasibility/pkg/mathutil"
	"github.com/shopspring/decimal"
)

var monthsPerYear = decimal.NewFromInt(constants.MonthsPerYear)

// MonthlyRate converts an annual percentage rate into a monthly fraction,
// e.g. 6 -> 0.005.
func MonthlyRate(annualInterestRate float64) decimal.Decimal {
	return mathutil.Percent(annualInterestRate).Div(monthsPerYear)
}

// SimpleInterest returns the interest on a fixed loan held for the full term
// at a flat monthly rate: principal × (rate/100/12) × termMonths, rounded to
// cents. Interest does not amortize or compound. Non-positive terms yield 0.
func SimpleInterest(principal int64, annualInterestRate float64, termMonths int) int64 {
	if termMonths <= 0 {
		return 0
	}
	interest := decimal.NewFromInt(principal).
		Mul(MonthlyRate(annualInterestRate)).
		Mul(decimal.NewFromInt(int64(termMonths)))
	return mathutil.RoundCents(interest)
}
