package export

import (
	"fmt"
	"io"
	"time"

	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/trends"
)

// Format is the export file format
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// Exporter renders a trend report into one output format.
type Exporter interface {
	Export(report *TrendReport, writer io.Writer) error
	ContentType() string
	FileExtension() string
}

// SummaryItem is one headline figure in the report (total, average, growth).
type SummaryItem struct {
	Label string
	Value string
}

// TrendReport is the renderable form of an analysis result: headline summary,
// optional top-performer ranking, and the ordered period series.
type TrendReport struct {
	Title       string
	Author      string
	GeneratedAt time.Time

	Metric    string
	TimeGrain string
	DateRange string

	Summary    []SummaryItem
	Performers []trends.TopPerformer

	SeriesHeaders []string
	SeriesRows    [][]interface{}
}

// FromAnalysis flattens a successful analysis into a TrendReport. The series
// rows keep the analyzer's order.
func FromAnalysis(req *trends.AnalysisRequest, result trends.Result, series []trends.PeriodRow) (*TrendReport, error) {
	if result.Status != trends.StatusSuccess {
		return nil, fmt.Errorf("cannot export error result: %s", result.Message)
	}

	report := &TrendReport{
		Title:       fmt.Sprintf("Sales Trend Report — %s by %s", req.Metric, req.TimeGrain),
		GeneratedAt: time.Now(),
		Metric:      string(req.Metric),
		TimeGrain:   string(req.TimeGrain),
	}

	if result.DateRange != nil {
		report.DateRange = fmt.Sprintf("%s to %s",
			result.DateRange.Start.Format("2006-01-02"),
			result.DateRange.End.Format("2006-01-02"))
	}

	switch analysis := result.Analysis.(type) {
	case trends.RevenueAnalysis:
		report.Summary = []SummaryItem{
			{Label: "Total Revenue", Value: formatAmount(analysis.TotalRevenue)},
			{Label: "Avg Revenue / Period", Value: formatAmount(analysis.AvgPeriodRevenue)},
			{Label: "Revenue Growth", Value: formatPct(analysis.RevenueGrowth)},
		}
		report.Performers = analysis.TopPerformers
	case trends.VolumeAnalysis:
		report.Summary = []SummaryItem{
			{Label: "Total Units", Value: formatAmount(analysis.TotalUnits)},
			{Label: "Avg Units / Period", Value: formatAmount(analysis.AvgPeriodUnits)},
			{Label: "Volume Growth", Value: formatPct(analysis.VolumeGrowth)},
		}
		report.Performers = analysis.TopPerformers
	case trends.AOVAnalysis:
		report.Summary = []SummaryItem{
			{Label: "Avg Order Value", Value: formatAmount(analysis.AvgAOV)},
			{Label: "AOV Growth", Value: formatPct(analysis.AOVGrowth)},
		}
	case trends.MarginAnalysis:
		report.Summary = []SummaryItem{
			{Label: "Avg Margin", Value: formatAmount(analysis.AvgMargin)},
			{Label: "Avg Margin %", Value: formatPct(analysis.AvgMarginPct * 100)},
			{Label: "Margin Growth", Value: formatPct(analysis.MarginGrowth)},
		}
	default:
		return nil, fmt.Errorf("unknown analysis payload %T", result.Analysis)
	}

	withDimension := req.Dimension != trends.DimensionNone
	report.SeriesHeaders = []string{"Period", "Revenue", "Units", "Orders"}
	if withDimension {
		report.SeriesHeaders = append(report.SeriesHeaders, "Dimension ID", "Dimension Name")
	}

	for _, row := range series {
		cells := []interface{}{row.Period, row.Revenue, row.Units, row.Orders}
		if withDimension {
			cells = append(cells, row.DimensionID, row.DimensionName)
		}
		report.SeriesRows = append(report.SeriesRows, cells)
	}

	return report, nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
