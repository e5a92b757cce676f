// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/feasibility/internal/feasibility"
)

// FindEvaluation finds an evaluation by scenario name in the results slice.
// Returns a pointer to the evaluation if found, nil otherwise.
func FindEvaluation(results []feasibility.Evaluation, name string) *feasibility.Evaluation {
	for i := range results {
		if results[i].Name == name {
			return &results[i]
		}
	}
	return nil
}

// CashflowTotals are column sums over a run of cashflow months.
type CashflowTotals struct {
	Costs   int64
	Revenue int64
	Net     int64
}

// SumCashflow adds up the cost, revenue and net columns of months.
func SumCashflow(months []feasibility.CashflowMonth) CashflowTotals {
	var totals CashflowTotals
	for _, m := range months {
		totals.Costs += m.TotalCosts
		totals.Revenue += m.Revenue
		totals.Net += m.NetCashflow
	}
	return totals
}

// CumulativeSeries returns the cumulative cashflow column of months.
func CumulativeSeries(months []feasibility.CashflowMonth) []int64 {
	series := make([]int64, len(months))
	for i, m := range months {
		series[i] = m.CumulativeCashflow
	}
	return series
}
