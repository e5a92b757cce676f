// Package output provides utilities for formatting and displaying
// feasibility results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iwvelando/feasibility/internal/feasibility"
	"github.com/iwvelando/feasibility/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SummaryLine is one labelled figure of a rendered summary.
type SummaryLine struct {
	Label string
	Value string
}

// SummaryLines returns the summary figures in display order. It is shared by
// every renderer so console, workbook and PDF list the same rows.
func SummaryLines(s feasibility.FeasibilitySummary) []SummaryLine {
	p := message.NewPrinter(language.English)
	return []SummaryLine{
		{"Total land size (m2)", p.Sprintf("%.2f", s.TotalLandSize)},
		{"Lots", p.Sprintf("%d", s.LotCount)},
		{"Units", p.Sprintf("%d", s.UnitCount)},
		{"Land cost", format.Currency(s.LandCost)},
		{"Acquisition costs", format.Currency(s.AcquisitionCosts)},
		{"Professional fees", format.Currency(s.ProfessionalFees)},
		{"Construction costs", format.Currency(s.ConstructionCosts)},
		{"Development fees", format.Currency(s.DevFees)},
		{"Land holding costs", format.Currency(s.LandHoldingCosts)},
		{"Contingency", format.Currency(s.ContingencyCosts)},
		{"Agent fees", format.Currency(s.AgentFees)},
		{"Legal fees", format.Currency(s.LegalFees)},
		{"Total costs ex funding", format.Currency(s.TotalCostsExFunding)},
		{"Facility fees", format.Currency(s.FacilityFees)},
		{"Loan fees", format.Currency(s.LoanFees)},
		{"Equity fees", format.Currency(s.EquityFees)},
		{"Debt interest", format.Currency(s.TotalDebtInterest)},
		{"Total funding costs", format.Currency(s.TotalFundingCosts)},
		{"Total costs", format.Currency(s.TotalCosts)},
		{"Total revenue (inc GST)", format.Currency(s.TotalRevenue)},
		{"Total revenue (ex GST)", format.Currency(s.TotalRevenueExGst)},
		{"GST on revenue", format.Currency(s.TotalRevenueGst)},
		{"Margin scheme GST", format.Currency(s.MarginSchemeGst)},
		{"Profit", format.Currency(s.Profit)},
		{"Profit on cost", format.Percentage(s.ProfitOnCost)},
		{"Development margin", format.Percentage(s.DevelopmentMargin)},
		{"Revenue per unit", format.Currency(s.RevenuePerUnit)},
		{"Cost per unit", format.Currency(s.CostPerUnit)},
		{"Profit per unit", format.Currency(s.ProfitPerUnit)},
		{"Residual land value", format.Currency(s.ResidualLandValue)},
		{"Total debt facility", format.Currency(s.TotalDebtFacility)},
		{"Total loan principal", format.Currency(s.TotalLoanPrincipal)},
		{"Total equity", format.Currency(s.TotalEquity)},
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(results []feasibility.Evaluation) {
	WritePretty(os.Stdout, results)
}

// WritePretty writes the human-readable tables for every result to w.
func WritePretty(w io.Writer, results []feasibility.Evaluation) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		_, _ = fmt.Fprintf(w, "--- Feasibility for scenario %s ---\n", result.Name)
		for _, line := range SummaryLines(result.Summary) {
			_, _ = p.Fprintf(w, "%-24s | %18s\n", line.Label, line.Value)
		}

		_, _ = fmt.Fprintf(w, "\nMonth    | Costs           | Revenue         | Net             | Cumulative\n")
		_, _ = fmt.Fprintf(w, "_____    | _____           | _______         | ___             | __________\n")
		for _, month := range result.Projection.Months {
			_, _ = p.Fprintf(w, "%-8s | %15s | %15s | %15s | %s\n",
				month.Label,
				format.Currency(month.TotalCosts),
				format.Currency(month.Revenue),
				format.Currency(month.NetCashflow),
				format.Currency(month.CumulativeCashflow),
			)
		}

		if result.Projection.PeakFundingMonth >= 0 {
			label := result.Projection.Months[result.Projection.PeakFundingMonth].Label
			_, _ = fmt.Fprintf(w, "\nPeak funding requirement: %s in %s\n",
				format.Currency(result.Projection.PeakFundingRequirement), label)
		} else {
			_, _ = fmt.Fprintf(w, "\nPeak funding requirement: %s\n", format.Currency(0))
		}

		for _, dropped := range result.Projection.Dropped {
			_, _ = fmt.Fprintf(w, "Dropped %s '%s' month %d: %s\n",
				dropped.Source, dropped.Name, dropped.Month, format.Currency(dropped.Amount))
		}

		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvHeader is the header row written by CsvFormat.
var CsvHeader = []string{
	"scenario", "month", "label",
	"land", "acquisition", "professional fees", "construction", "dev fees",
	"land holding", "contingency", "marketing", "agent fees", "legal fees", "funding",
	"total costs", "revenue", "net cashflow", "cumulative cashflow",
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(results []feasibility.Evaluation) {
	_ = WriteCsv(os.Stdout, results)
}

// CsvString returns the CSV rendering as a string.
func CsvString(results []feasibility.Evaluation) string {
	var buf bytes.Buffer
	if err := WriteCsv(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}

// WriteCsv writes one row per scenario month, amounts in dollars.
func WriteCsv(w io.Writer, results []feasibility.Evaluation) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return err
	}
	for _, result := range results {
		for _, m := range result.Projection.Months {
			row := []string{
				result.Name,
				strconv.Itoa(m.Month + 1),
				m.Key,
				format.Decimal(m.LandCosts),
				format.Decimal(m.AcquisitionCosts),
				format.Decimal(m.ProfessionalFees),
				format.Decimal(m.ConstructionCosts),
				format.Decimal(m.DevFees),
				format.Decimal(m.LandHoldingCosts),
				format.Decimal(m.ContingencyCosts),
				format.Decimal(m.MarketingCosts),
				format.Decimal(m.AgentFees),
				format.Decimal(m.LegalFees),
				format.Decimal(m.FundingCosts),
				format.Decimal(m.TotalCosts),
				format.Decimal(m.Revenue),
				format.Decimal(m.NetCashflow),
				format.Decimal(m.CumulativeCashflow),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}
	writer.Flush()
	return writer.Error()
}
