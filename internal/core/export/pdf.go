package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders a trend report as a one-or-more page PDF document.
type PDFExporter struct {
	orientation string
	pageSize    string
}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{
		orientation: "P", // Portrait
		pageSize:    "A4",
	}
}

// Export writes the report as a PDF.
func (p *PDFExporter) Export(report *TrendReport, writer io.Writer) error {
	pdf := gofpdf.New(p.orientation, "mm", p.pageSize, "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, report.Title)
	pdf.Ln(12)

	pdf.SetFont("Arial", "I", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", report.GeneratedAt.Format("2006-01-02 15:04:05")))
	if report.Author != "" {
		pdf.Cell(0, 5, fmt.Sprintf(" | Author: %s", report.Author))
	}
	pdf.Ln(8)
	if report.DateRange != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, "Date range: "+report.DateRange)
		pdf.Ln(10)
	}

	// Summary block
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, "Summary")
	pdf.Ln(8)
	for _, item := range report.Summary {
		pdf.SetFont("Arial", "B", 10)
		pdf.Cell(60, 6, item.Label)
		pdf.SetFont("Arial", "", 10)
		pdf.Cell(0, 6, item.Value)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	if len(report.Performers) > 0 {
		pdf.SetFont("Arial", "B", 11)
		pdf.Cell(0, 7, "Top Performers")
		pdf.Ln(8)

		performerHeaders := []string{"ID", "Name", "Value", "Share %"}
		performerRows := make([][]interface{}, 0, len(report.Performers))
		for _, perf := range report.Performers {
			performerRows = append(performerRows, []interface{}{
				perf.ID, perf.Name,
				fmt.Sprintf("%.2f", perf.Value),
				fmt.Sprintf("%.1f", perf.SharePct),
			})
		}
		p.drawTable(pdf, performerHeaders, performerRows)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(0, 7, "Period Series")
	pdf.Ln(8)
	p.drawTable(pdf, report.SeriesHeaders, report.SeriesRows)

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}

	return nil
}

func (p *PDFExporter) drawTable(pdf *gofpdf.Fpdf, headers []string, rows [][]interface{}) {
	if len(headers) == 0 {
		return
	}

	pageWidth, _ := pdf.GetPageSize()
	leftMargin, _, rightMargin, _ := pdf.GetMargins()
	colWidth := (pageWidth - leftMargin - rightMargin) / float64(len(headers))

	drawHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		for _, header := range headers {
			pdf.CellFormat(colWidth, 7, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", 10)
	}

	drawHeader()

	for rowIdx, row := range rows {
		if rowIdx%2 == 0 {
			pdf.SetFillColor(255, 255, 255)
		} else {
			pdf.SetFillColor(242, 242, 242)
		}

		for _, value := range row {
			pdf.CellFormat(colWidth, 6, fmt.Sprintf("%v", value), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)

		// Near bottom of A4 page
		if pdf.GetY() > 270 {
			pdf.AddPage()
			drawHeader()
		}
	}
}

// ContentType returns the MIME type for PDF files
func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

// FileExtension returns the file extension for PDF files
func (p *PDFExporter) FileExtension() string {
	return ".pdf"
}
