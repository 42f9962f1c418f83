// Package report renders a session's results to PDF.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/theirongolddev/ada/internal/cli"
	"github.com/theirongolddev/ada/internal/model"
)

const (
	marginLeft   = 15.0
	marginTop    = 15.0
	marginRight  = 15.0
	marginBottom = 15.0
	contentWidth = 210.0 - marginLeft - marginRight
)

// Report is everything printed in an export.
type Report struct {
	Question    string
	Answer      string
	Inputs      model.FinancialInputs
	Projection  []model.ProjectionPoint
	Breakdown   []model.BreakdownCategory
	Terminal    int64
	GeneratedAt time.Time
}

// pdfText converts UTF-8 text to the Latin-1 bytes the core fonts expect.
func pdfText(s string) string {
	return strings.ReplaceAll(s, "£", "\xa3")
}

// WritePDF writes r to w as an A4 document.
func WritePDF(w io.Writer, r Report) error {
	if r.GeneratedAt.IsZero() {
		r.GeneratedAt = time.Now()
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginRight)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetTitle("ada financial projection", true)
	pdf.AddPage()

	// Free text may carry any UTF-8; the translator maps it to cp1252.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 22)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 12, "Financial Projection", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "I", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(contentWidth, 6, "Generated: "+r.GeneratedAt.Format("2 January 2006 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if r.Question != "" || r.Answer != "" {
		drawSectionHeader(pdf, "Advice")
		pdf.SetTextColor(50, 50, 50)
		if r.Question != "" {
			pdf.SetFont("Arial", "B", 10)
			pdf.MultiCell(contentWidth, 5, tr(r.Question), "", "L", false)
			pdf.Ln(2)
		}
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(contentWidth, 5, tr(r.Answer), "", "L", false)
		pdf.Ln(4)
	}

	drawSectionHeader(pdf, "Your Inputs")
	inputs := cli.InputsTable(r.Inputs)
	drawTable(pdf, inputs.Headers, inputs.Rows, []float64{90, 60})
	pdf.Ln(4)

	if len(r.Projection) > 0 {
		drawSectionHeader(pdf, "Investment Projection")
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(50, 50, 50)
		summary := fmt.Sprintf("%s a month for %s grows to %s at 8%% a year, compounded monthly.",
			cli.FormatGBP(r.Inputs.MonthlyInvestment), cli.FormatYears(len(r.Projection)), cli.FormatPounds(r.Terminal))
		pdf.MultiCell(contentWidth, 5, pdfText(summary), "", "L", false)
		pdf.Ln(2)

		rows := make([][]string, 0, len(r.Projection))
		for _, p := range r.Projection {
			rows = append(rows, []string{strconv.Itoa(p.Year), cli.FormatPounds(p.Value)})
		}
		drawTable(pdf, []string{"Year", "Value"}, rows, []float64{40, 80})
		pdf.Ln(4)
	}

	if len(r.Breakdown) > 0 {
		drawSectionHeader(pdf, "Monthly Breakdown")
		bd := cli.BreakdownTable(r.Breakdown)
		drawTable(pdf, bd.Headers, bd.Rows, []float64{60, 40, 40, 40})
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.MultiCell(contentWidth, 4, "Projections assume a fixed 8% annual return and are illustrative only. This is not financial advice.", "", "L", false)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf.Output(w)
}

func drawSectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 51, 102)
	pdf.CellFormat(contentWidth, 8, title, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(0, 51, 102)
	pdf.Line(marginLeft, pdf.GetY(), marginLeft+contentWidth, pdf.GetY())
	pdf.Ln(3)
}

func drawTable(pdf *fpdf.Fpdf, headers []string, rows [][]string, widths []float64) {
	pdf.SetFillColor(0, 51, 102)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 9)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 6, h, "1", 0, align(i), true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFillColor(250, 250, 250)
	pdf.SetTextColor(50, 50, 50)
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		if len(row) == 1 && row[0] == "---" {
			continue
		}
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], 5, pdfText(cell), "1", 0, align(i), true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}
