// Package export renders feasibility results as XLSX workbooks and PDF
// reports.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/feasibility/internal/feasibility"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// SummarySheet is the name of the first workbook sheet.
const SummarySheet = "Summary"

const (
	currencyFormat = "$#,##0.00;[Red]-$#,##0.00"
	percentFormat  = "0.00\"%\""
	maxSheetName   = 31
)

type valueKind int

const (
	kindMoney valueKind = iota
	kindPercent
	kindCount
)

type summaryField struct {
	label string
	kind  valueKind
	value func(feasibility.FeasibilitySummary) float64
}

func cents(v int64) float64 {
	return decimal.New(v, -2).InexactFloat64()
}

var summaryFields = []summaryField{
	{"Total land size (m2)", kindCount, func(s feasibility.FeasibilitySummary) float64 { return s.TotalLandSize }},
	{"Lots", kindCount, func(s feasibility.FeasibilitySummary) float64 { return float64(s.LotCount) }},
	{"Units", kindCount, func(s feasibility.FeasibilitySummary) float64 { return float64(s.UnitCount) }},
	{"Land cost", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.LandCost) }},
	{"Acquisition costs", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.AcquisitionCosts) }},
	{"Professional fees", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.ProfessionalFees) }},
	{"Construction costs", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.ConstructionCosts) }},
	{"Development fees", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.DevFees) }},
	{"Land holding costs", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.LandHoldingCosts) }},
	{"Contingency", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.ContingencyCosts) }},
	{"Agent fees", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.AgentFees) }},
	{"Legal fees", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.LegalFees) }},
	{"Total costs ex funding", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.TotalCostsExFunding) }},
	{"Total funding costs", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.TotalFundingCosts) }},
	{"Total costs", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.TotalCosts) }},
	{"Total revenue (inc GST)", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.TotalRevenue) }},
	{"Total revenue (ex GST)", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.TotalRevenueExGst) }},
	{"Margin scheme GST", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.MarginSchemeGst) }},
	{"Profit", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.Profit) }},
	{"Profit on cost", kindPercent, func(s feasibility.FeasibilitySummary) float64 { return s.ProfitOnCost }},
	{"Development margin", kindPercent, func(s feasibility.FeasibilitySummary) float64 { return s.DevelopmentMargin }},
	{"Residual land value", kindMoney, func(s feasibility.FeasibilitySummary) float64 { return cents(s.ResidualLandValue) }},
}

// CashflowColumns are the header labels of every cashflow sheet.
var CashflowColumns = []string{
	"Month", "Period", "Land", "Acquisition", "Professional fees", "Construction",
	"Dev fees", "Land holding", "Contingency", "Marketing", "Agent fees", "Legal fees",
	"Funding", "Total costs", "Revenue", "Net cashflow", "Cumulative",
}

func cashflowValues(m feasibility.CashflowMonth) []interface{} {
	return []interface{}{
		m.Month + 1,
		m.Label,
		cents(m.LandCosts),
		cents(m.AcquisitionCosts),
		cents(m.ProfessionalFees),
		cents(m.ConstructionCosts),
		cents(m.DevFees),
		cents(m.LandHoldingCosts),
		cents(m.ContingencyCosts),
		cents(m.MarketingCosts),
		cents(m.AgentFees),
		cents(m.LegalFees),
		cents(m.FundingCosts),
		cents(m.TotalCosts),
		cents(m.Revenue),
		cents(m.NetCashflow),
		cents(m.CumulativeCashflow),
	}
}

type workbook struct {
	file     *excelize.File
	header   int
	currency int
	percent  int
	used     map[string]struct{}
}

// NewWorkbook builds a workbook with a Summary sheet comparing every result
// side by side, followed by one cashflow sheet per result.
func NewWorkbook(results []feasibility.Evaluation) (*excelize.File, error) {
	wb := &workbook{file: excelize.NewFile(), used: map[string]struct{}{strings.ToLower(SummarySheet): {}}}

	if err := wb.file.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to rename summary sheet: %w", err)
	}
	if err := wb.createStyles(); err != nil {
		return nil, err
	}
	if err := wb.writeSummary(results); err != nil {
		return nil, err
	}
	for _, result := range results {
		if err := wb.writeCashflow(result); err != nil {
			return nil, err
		}
	}
	return wb.file, nil
}

// WriteWorkbook renders results as an XLSX workbook to w.
func WriteWorkbook(w io.Writer, results []feasibility.Evaluation) error {
	file, err := NewWorkbook(results)
	if err != nil {
		return err
	}
	defer func() {
		_ = file.Close()
	}()

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (wb *workbook) createStyles() error {
	var err error
	wb.header, err = wb.file.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			WrapText:   true,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	format := currencyFormat
	wb.currency, err = wb.file.NewStyle(&excelize.Style{CustomNumFmt: &format})
	if err != nil {
		return fmt.Errorf("failed to create currency style: %w", err)
	}

	pct := percentFormat
	wb.percent, err = wb.file.NewStyle(&excelize.Style{CustomNumFmt: &pct})
	if err != nil {
		return fmt.Errorf("failed to create percent style: %w", err)
	}
	return nil
}

func (wb *workbook) writeSummary(results []feasibility.Evaluation) error {
	header := []interface{}{"Metric"}
	for _, result := range results {
		header = append(header, result.Name)
	}
	if err := wb.writeHeader(SummarySheet, header); err != nil {
		return err
	}

	for i, field := range summaryFields {
		row := i + 2
		values := []interface{}{field.label}
		for _, result := range results {
			values = append(values, field.value(result.Summary))
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := wb.file.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write summary row %q: %w", field.label, err)
		}

		style := 0
		switch field.kind {
		case kindMoney:
			style = wb.currency
		case kindPercent:
			style = wb.percent
		}
		if style != 0 && len(results) > 0 {
			first, _ := excelize.CoordinatesToCellName(2, row)
			last, _ := excelize.CoordinatesToCellName(len(results)+1, row)
			if err := wb.file.SetCellStyle(SummarySheet, first, last, style); err != nil {
				return fmt.Errorf("failed to style summary row %q: %w", field.label, err)
			}
		}
	}

	if err := wb.file.SetColWidth(SummarySheet, "A", "A", 28); err != nil {
		return err
	}
	if len(results) > 0 {
		last, _ := excelize.ColumnNumberToName(len(results) + 1)
		if err := wb.file.SetColWidth(SummarySheet, "B", last, 20); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) writeCashflow(result feasibility.Evaluation) error {
	sheet := wb.sheetName(result.Name)
	if _, err := wb.file.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", sheet, err)
	}

	header := make([]interface{}, len(CashflowColumns))
	for i, column := range CashflowColumns {
		header[i] = column
	}
	if err := wb.writeHeader(sheet, header); err != nil {
		return err
	}

	for i, month := range result.Projection.Months {
		values := cashflowValues(month)
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := wb.file.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write cashflow row %d: %w", i+1, err)
		}
	}

	if rows := len(result.Projection.Months); rows > 0 {
		lastCol, _ := excelize.ColumnNumberToName(len(CashflowColumns))
		if err := wb.file.SetCellStyle(sheet, "C2", fmt.Sprintf("%s%d", lastCol, rows+1), wb.currency); err != nil {
			return fmt.Errorf("failed to style cashflow sheet: %w", err)
		}
		if err := wb.file.SetColWidth(sheet, "B", lastCol, 15); err != nil {
			return err
		}
	}
	return nil
}

func (wb *workbook) writeHeader(sheet string, values []interface{}) error {
	if err := wb.file.SetSheetRow(sheet, "A1", &values); err != nil {
		return fmt.Errorf("failed to write header of %q: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(values), 1)
	if err := wb.file.SetCellStyle(sheet, "A1", last, wb.header); err != nil {
		return fmt.Errorf("failed to style header of %q: %w", sheet, err)
	}
	return wb.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		Split:       false,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	})
}

// sheetName derives a unique, Excel-legal sheet name for a scenario.
func (wb *workbook) sheetName(scenario string) string {
	base := strings.Map(func(r rune) rune {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			return '-'
		}
		return r
	}, strings.TrimSpace(scenario))
	base = strings.Trim(base, "'")
	if base == "" {
		base = "Scenario"
	}

	name := truncate(base, maxSheetName)
	for n := 2; ; n++ {
		if _, taken := wb.used[strings.ToLower(name)]; !taken {
			break
		}
		suffix := fmt.Sprintf(" (%d)", n)
		name = truncate(base, maxSheetName-len(suffix)) + suffix
	}
	wb.used[strings.ToLower(name)] = struct{}{}
	return name
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
