package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// ExcelExporter renders a trend report as a spreadsheet: summary block on top,
// period series table below it.
type ExcelExporter struct {
	sheetName string
}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{
		sheetName: "Trend Report",
	}
}

// Export writes the report as an xlsx workbook.
func (e *ExcelExporter) Export(report *TrendReport, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", e.sheetName)

	rowIndex := 1
	f.SetCellValue(e.sheetName, fmt.Sprintf("A%d", rowIndex), report.Title)
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	f.SetCellStyle(e.sheetName, fmt.Sprintf("A%d", rowIndex), fmt.Sprintf("A%d", rowIndex), titleStyle)
	rowIndex++

	if report.DateRange != "" {
		f.SetCellValue(e.sheetName, fmt.Sprintf("A%d", rowIndex), "Date range: "+report.DateRange)
		rowIndex++
	}
	f.SetCellValue(e.sheetName, fmt.Sprintf("A%d", rowIndex),
		"Generated: "+report.GeneratedAt.Format("2006-01-02 15:04:05"))
	rowIndex += 2

	labelStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})

	for _, item := range report.Summary {
		labelCell := fmt.Sprintf("A%d", rowIndex)
		f.SetCellValue(e.sheetName, labelCell, item.Label)
		f.SetCellStyle(e.sheetName, labelCell, labelCell, labelStyle)
		f.SetCellValue(e.sheetName, fmt.Sprintf("B%d", rowIndex), item.Value)
		rowIndex++
	}
	rowIndex++

	if len(report.Performers) > 0 {
		f.SetCellValue(e.sheetName, fmt.Sprintf("A%d", rowIndex), "Top Performers")
		f.SetCellStyle(e.sheetName, fmt.Sprintf("A%d", rowIndex), fmt.Sprintf("A%d", rowIndex), labelStyle)
		rowIndex++

		headerStyle, err := e.headerStyle(f)
		if err != nil {
			return fmt.Errorf("failed to create header style: %w", err)
		}
		for colIndex, header := range []string{"ID", "Name", "Value", "Share %"} {
			cell := columnNumberToName(colIndex+1) + strconv.Itoa(rowIndex)
			f.SetCellValue(e.sheetName, cell, header)
			f.SetCellStyle(e.sheetName, cell, cell, headerStyle)
		}
		rowIndex++

		for _, p := range report.Performers {
			f.SetCellValue(e.sheetName, fmt.Sprintf("A%d", rowIndex), p.ID)
			f.SetCellValue(e.sheetName, fmt.Sprintf("B%d", rowIndex), p.Name)
			f.SetCellValue(e.sheetName, fmt.Sprintf("C%d", rowIndex), p.Value)
			f.SetCellValue(e.sheetName, fmt.Sprintf("D%d", rowIndex), p.SharePct)
			rowIndex++
		}
		rowIndex++
	}

	headerStyle, err := e.headerStyle(f)
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headerRow := rowIndex
	for colIndex, header := range report.SeriesHeaders {
		cell := columnNumberToName(colIndex+1) + strconv.Itoa(rowIndex)
		f.SetCellValue(e.sheetName, cell, header)
		f.SetCellStyle(e.sheetName, cell, cell, headerStyle)
	}
	rowIndex++

	for _, row := range report.SeriesRows {
		for colIndex, value := range row {
			cell := columnNumberToName(colIndex+1) + strconv.Itoa(rowIndex)
			f.SetCellValue(e.sheetName, cell, value)
		}
		rowIndex++
	}

	if len(report.SeriesHeaders) > 0 && len(report.SeriesRows) > 0 {
		lastCol := columnNumberToName(len(report.SeriesHeaders))
		f.AutoFilter(e.sheetName,
			fmt.Sprintf("A%d:%s%d", headerRow, lastCol, headerRow+len(report.SeriesRows)), nil)
	}

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	return nil
}

// ContentType returns the MIME type for Excel files
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns the file extension for Excel files
func (e *ExcelExporter) FileExtension() string {
	return ".xlsx"
}

func (e *ExcelExporter) headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"4472C4"},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
}

// columnNumberToName converts column number to Excel column name (1 -> A, 27 -> AA)
func columnNumberToName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+(col%26))) + name
		col /= 26
	}
	return name
}
