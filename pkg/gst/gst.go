// Package gst converts amounts between GST-inclusive, GST-exclusive and
// GST-exempt bases under a flat 10% rate, and computes margin-scheme GST.
//
// All amounts are integer cents. These functions are the only place the
// GST rate and its rounding policy live.
package gst

import (
	"github.com/iwvelando/feasibility/pkg/constants"
	"github.com/iwvelando/feasibility/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Status describes how an amount is treated for GST.
type Status string

const (
	Inclusive Status = "inclusive"
	Exclusive Status = "exclusive"
	Exempt    Status = "exempt"
)

var (
	rate       = decimal.NewFromInt(constants.GSTRatePercent).Div(decimal.NewFromInt(constants.PercentageMultiplier))
	grossUp    = decimal.NewFromInt(1).Add(rate)
	marginBase = decimal.NewFromInt(constants.MarginSchemeDivisor)
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case Inclusive, Exclusive, Exempt:
		return true
	}
	return false
}

// NormalizeToExGst returns the GST-exclusive amount. Inclusive amounts are
// divided by 1.10 and rounded; every other status passes through unchanged.
func NormalizeToExGst(amount int64, status Status) int64 {
	if status != Inclusive {
		return amount
	}
	return mathutil.RoundCents(decimal.NewFromInt(amount).Div(grossUp))
}

// CalculateGst returns the GST component payable on an ex-GST amount.
func CalculateGst(amountExGst int64, status Status) int64 {
	if status == Exempt {
		return 0
	}
	return mathutil.RoundCents(decimal.NewFromInt(amountExGst).Mul(rate))
}

// MarginSchemeGst returns GST under the margin scheme: one eleventh of the
// margin between sale and purchase price, or 0 when there is no margin.
func MarginSchemeGst(salePrice, purchasePrice int64) int64 {
	margin := salePrice - purchasePrice
	if margin <= 0 {
		return 0
	}
	return mathutil.RoundCents(decimal.NewFromInt(margin).Div(marginBase))
}
