package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/trends"
)

func successResult() (*trends.AnalysisRequest, trends.Result, []trends.PeriodRow) {
	req, err := trends.NewRequest(trends.RequestParams{Metric: "revenue", Dimension: "product"})
	if err != nil {
		panic(err)
	}

	series := []trends.PeriodRow{
		{Period: "2024-01", Revenue: 100, Units: 10, Orders: 2, DimensionID: "A", DimensionName: "Alpha"},
		{Period: "2024-02", Revenue: 150, Units: 12, Orders: 3, DimensionID: "A", DimensionName: "Alpha"},
	}

	result := trends.Result{
		Status: trends.StatusSuccess,
		Analysis: trends.RevenueAnalysis{
			TotalRevenue:     250,
			AvgPeriodRevenue: 125,
			RevenueGrowth:    50,
			TopPerformers: []trends.TopPerformer{
				{ID: "A", Name: "Alpha", Value: 250, SharePct: 100},
			},
		},
		DateRange: &trends.DateRange{
			Start: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	return req, result, series
}

func TestFromAnalysis(t *testing.T) {
	req, result, series := successResult()

	report, err := FromAnalysis(req, result, series)
	require.NoError(t, err)

	assert.Equal(t, "revenue", report.Metric)
	assert.Equal(t, "monthly", report.TimeGrain)
	assert.Equal(t, "2024-01-01 to 2024-02-29", report.DateRange)

	require.Len(t, report.Summary, 3)
	assert.Equal(t, "Total Revenue", report.Summary[0].Label)
	assert.Equal(t, "250.00", report.Summary[0].Value)
	assert.Equal(t, "50.0%", report.Summary[2].Value)

	require.Len(t, report.Performers, 1)
	assert.Equal(t, "Alpha", report.Performers[0].Name)

	// Dimension breakdown adds the two dimension columns.
	assert.Equal(t, []string{"Period", "Revenue", "Units", "Orders", "Dimension ID", "Dimension Name"}, report.SeriesHeaders)
	require.Len(t, report.SeriesRows, 2)
	assert.Equal(t, "2024-01", report.SeriesRows[0][0])
	assert.Equal(t, "Alpha", report.SeriesRows[0][5])
}

func TestFromAnalysisRejectsErrorResult(t *testing.T) {
	req, _, _ := successResult()

	_, err := FromAnalysis(req, trends.Result{
		Status:  trends.StatusError,
		Message: "No data found for the specified period",
	}, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestFromAnalysisMarginSummary(t *testing.T) {
	req, err := trends.NewRequest(trends.RequestParams{Metric: "margin"})
	require.NoError(t, err)

	report, err := FromAnalysis(req, trends.Result{
		Status: trends.StatusSuccess,
		Analysis: trends.MarginAnalysis{
			AvgMargin:    40,
			AvgMarginPct: 0.4,
			MarginGrowth: 10,
		},
	}, nil)
	require.NoError(t, err)

	require.Len(t, report.Summary, 3)
	assert.Equal(t, "40.0%", report.Summary[1].Value)
	assert.Equal(t, []string{"Period", "Revenue", "Units", "Orders"}, report.SeriesHeaders)
}

func TestServiceExportFormats(t *testing.T) {
	req, result, series := successResult()
	report, err := FromAnalysis(req, result, series)
	require.NoError(t, err)

	service := NewService("analytics-bot")

	testData := []struct {
		format          Format
		wantContentType string
		wantExtension   string
	}{
		{FormatExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", ".xlsx"},
		{FormatPDF, "application/pdf", ".pdf"},
	}

	for _, tt := range testData {
		t.Run(string(tt.format), func(t *testing.T) {
			data, contentType, err := service.Export(report, tt.format)
			require.NoError(t, err)
			assert.NotEmpty(t, data)
			assert.Equal(t, tt.wantContentType, contentType)
			assert.Equal(t, tt.wantExtension, service.FileExtension(tt.format))
		})
	}
}

func TestServiceExportUnknownFormat(t *testing.T) {
	service := NewService("analytics-bot")

	_, _, err := service.Export(&TrendReport{}, Format("csv"))
	require.Error(t, err)
	assert.Equal(t, ".bin", service.FileExtension(Format("csv")))
}
