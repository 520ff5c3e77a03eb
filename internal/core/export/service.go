package export

import (
	"bytes"
	"fmt"
)

// Service provides high-level export functionality
type Service struct {
	author        string
	pdfExporter   Exporter
	excelExporter Exporter
}

// NewService creates a new export service. The author is stamped on reports
// that do not set one themselves.
func NewService(author string) *Service {
	return &Service{
		author:        author,
		pdfExporter:   NewPDFExporter(),
		excelExporter: NewExcelExporter(),
	}
}

// Export renders the report in the requested format and returns the bytes and
// content type.
func (s *Service) Export(report *TrendReport, format Format) ([]byte, string, error) {
	if report.Author == "" {
		report.Author = s.author
	}

	var exporter Exporter
	switch format {
	case FormatPDF:
		exporter = s.pdfExporter
	case FormatExcel:
		exporter = s.excelExporter
	default:
		return nil, "", fmt.Errorf("unsupported export format: %s", format)
	}

	var buf bytes.Buffer
	if err := exporter.Export(report, &buf); err != nil {
		return nil, "", fmt.Errorf("export failed: %w", err)
	}

	return buf.Bytes(), exporter.ContentType(), nil
}

// FileExtension returns the file extension for the given format
func (s *Service) FileExtension(format Format) string {
	switch format {
	case FormatPDF:
		return s.pdfExporter.FileExtension()
	case FormatExcel:
		return s.excelExporter.FileExtension()
	default:
		return ".bin"
	}
}
