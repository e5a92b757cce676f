package export

import (
	"fmt"
	"io"
	"time"

	"github.com/iwvelando/feasibility/internal/feasibility"
	"github.com/iwvelando/feasibility/pkg/format"
	"github.com/iwvelando/feasibility/pkg/output"
	"github.com/jung-kurt/gofpdf"
)

// PDFOptions configures the feasibility report.
type PDFOptions struct {
	Title       string
	FontFamily  string
	FontSize    float64
	Orientation string // P or L
	GeneratedAt time.Time
}

// DefaultPDFOptions returns default PDF options
func DefaultPDFOptions() PDFOptions {
	return PDFOptions{
		Title:       "Development Feasibility Report",
		FontFamily:  "Arial",
		FontSize:    9,
		Orientation: "L",
	}
}

type rgb struct{ r, g, b int }

var (
	headerFill    = rgb{68, 114, 196}
	alternateFill = rgb{242, 242, 242}
)

const (
	marginMM   = 15.0
	rowHeight  = 6.0
	labelWidth = 70.0
	valueWidth = 45.0
)

var pdfCashflowColumns = []string{"Month", "Period", "Costs", "Revenue", "Net", "Cumulative"}

// WritePDF renders one page section per result: a summary table, a condensed
// cashflow table and any placements the projection dropped.
func WritePDF(w io.Writer, results []feasibility.Evaluation, opts PDFOptions) error {
	if opts.FontFamily == "" {
		opts.FontFamily = "Arial"
	}
	if opts.FontSize <= 0 {
		opts.FontSize = 9
	}
	if opts.Orientation == "" {
		opts.Orientation = "L"
	}
	if opts.GeneratedAt.IsZero() {
		opts.GeneratedAt = time.Now()
	}

	pdf := gofpdf.New(opts.Orientation, "mm", "A4", "")
	pdf.SetMargins(marginMM, marginMM+5, marginMM)
	pdf.SetAutoPageBreak(true, marginMM)
	pdf.SetTitle(opts.Title, false)
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(opts.FontFamily, "", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	if len(results) == 0 {
		pdf.AddPage()
		writeTitle(pdf, opts, "No active scenarios")
	}

	for _, result := range results {
		pdf.AddPage()
		writeTitle(pdf, opts, result.Name)
		writeSummaryTable(pdf, opts, result.Summary)
		pdf.Ln(6)
		writeCashflowTable(pdf, opts, result.Projection)
		writeDropped(pdf, opts, result.Projection.Dropped)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func writeTitle(pdf *gofpdf.Fpdf, opts PDFOptions, subtitle string) {
	pdf.SetFont(opts.FontFamily, "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, opts.Title, "", 1, "C", false, 0, "")

	pdf.SetFont(opts.FontFamily, "", opts.FontSize+3)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(0, 8, subtitle, "", 1, "C", false, 0, "")

	pdf.SetFont(opts.FontFamily, "", opts.FontSize-1)
	pdf.SetTextColor(128, 128, 128)
	pdf.CellFormat(0, 6, "Generated: "+opts.GeneratedAt.Format("2006-01-02"), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func writeHeaderRow(pdf *gofpdf.Fpdf, opts PDFOptions, labels []string, widths []float64) {
	pdf.SetFont(opts.FontFamily, "B", opts.FontSize)
	pdf.SetFillColor(headerFill.r, headerFill.g, headerFill.b)
	pdf.SetTextColor(255, 255, 255)
	for i, label := range labels {
		pdf.CellFormat(widths[i], rowHeight+1, label, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont(opts.FontFamily, "", opts.FontSize)
	pdf.SetTextColor(0, 0, 0)
}

func setRowFill(pdf *gofpdf.Fpdf, row int) {
	if row%2 == 1 {
		pdf.SetFillColor(alternateFill.r, alternateFill.g, alternateFill.b)
		return
	}
	pdf.SetFillColor(255, 255, 255)
}

func writeSummaryTable(pdf *gofpdf.Fpdf, opts PDFOptions, summary feasibility.FeasibilitySummary) {
	widths := []float64{labelWidth, valueWidth}
	writeHeaderRow(pdf, opts, []string{"Metric", "Value"}, widths)

	for i, line := range output.SummaryLines(summary) {
		setRowFill(pdf, i)
		pdf.CellFormat(widths[0], rowHeight, line.Label, "1", 0, "L", true, 0, "")
		pdf.CellFormat(widths[1], rowHeight, line.Value, "1", 1, "R", true, 0, "")
	}
}

func writeCashflowTable(pdf *gofpdf.Fpdf, opts PDFOptions, projection feasibility.Projection) {
	pageWidth, pageHeight := pdf.GetPageSize()
	available := pageWidth - 2*marginMM
	widths := []float64{15, 25}
	rest := (available - widths[0] - widths[1]) / float64(len(pdfCashflowColumns)-2)
	for i := 2; i < len(pdfCashflowColumns); i++ {
		widths = append(widths, rest)
	}

	writeHeaderRow(pdf, opts, pdfCashflowColumns, widths)

	for i, month := range projection.Months {
		if pdf.GetY()+rowHeight > pageHeight-marginMM {
			pdf.AddPage()
			writeHeaderRow(pdf, opts, pdfCashflowColumns, widths)
		}
		setRowFill(pdf, i)
		cells := []string{
			fmt.Sprintf("%d", month.Month+1),
			month.Label,
			format.Currency(month.TotalCosts),
			format.Currency(month.Revenue),
			format.Currency(month.NetCashflow),
			format.Currency(month.CumulativeCashflow),
		}
		for j, value := range cells {
			align := "R"
			if j == 1 {
				align = "L"
			}
			pdf.CellFormat(widths[j], rowHeight, value, "1", 0, align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(3)
	pdf.SetFont(opts.FontFamily, "B", opts.FontSize)
	peak := "Peak funding requirement: " + format.Currency(projection.PeakFundingRequirement)
	if projection.PeakFundingMonth >= 0 && projection.PeakFundingMonth < len(projection.Months) {
		peak += " in " + projection.Months[projection.PeakFundingMonth].Label
	}
	pdf.CellFormat(0, rowHeight, peak, "", 1, "L", false, 0, "")
	pdf.SetFont(opts.FontFamily, "", opts.FontSize)
}

func writeDropped(pdf *gofpdf.Fpdf, opts PDFOptions, dropped []feasibility.DroppedEntry) {
	if len(dropped) == 0 {
		return
	}
	pdf.Ln(2)
	pdf.SetFont(opts.FontFamily, "B", opts.FontSize)
	pdf.CellFormat(0, rowHeight, "Placements outside the project horizon", "", 1, "L", false, 0, "")
	pdf.SetFont(opts.FontFamily, "", opts.FontSize)
	for _, entry := range dropped {
		pdf.CellFormat(0, rowHeight,
			fmt.Sprintf("%s '%s' month %d: %s", entry.Source, entry.Name, entry.Month, format.Currency(entry.Amount)),
			"", 1, "L", false, 0, "")
	}
}
