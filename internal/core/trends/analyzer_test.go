package trends

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	min, max  time.Time
	hasBounds bool
	boundsErr error

	rows     []PeriodRow
	queryErr error

	lastQuery PeriodQuery
}

func (f *fakeSource) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	return f.min, f.max, f.hasBounds, f.boundsErr
}

func (f *fakeSource) QueryPeriods(ctx context.Context, query PeriodQuery) ([]PeriodRow, error) {
	f.lastQuery = query
	return f.rows, f.queryErr
}

func mustRequest(t *testing.T, params RequestParams) *AnalysisRequest {
	t.Helper()
	req, err := NewRequest(params)
	require.NoError(t, err)
	return req
}

func TestAnalyzeSuccess(t *testing.T) {
	source := &fakeSource{
		min:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		max:       time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		hasBounds: true,
		rows: []PeriodRow{
			{Period: "2024-01", Revenue: 100, Units: 10, Orders: 2},
			{Period: "2024-02", Revenue: 150, Units: 12, Orders: 3},
			{Period: "2024-03", Revenue: 90, Units: 8, Orders: 2},
		},
	}
	analyzer := NewAnalyzer(source)

	result := analyzer.Analyze(context.Background(), mustRequest(t, RequestParams{}), AnalyzeOptions{})

	require.Equal(t, StatusSuccess, result.Status)
	require.NotNil(t, result.Analysis)
	require.NotNil(t, result.DateRange)
	assert.Empty(t, result.Message)
	assert.Equal(t, source.min, result.DateRange.Start)
	assert.Equal(t, source.max, result.DateRange.End)

	analysis, ok := result.Analysis.(RevenueAnalysis)
	require.True(t, ok)
	assert.InDelta(t, 340.0, analysis.TotalRevenue, 1e-9)
	assert.InDelta(t, -10.0, analysis.RevenueGrowth, 1e-9)
}

func TestAnalyzeExplicitRangeSkipsBoundsLookup(t *testing.T) {
	source := &fakeSource{
		// Bounds would fail, but an explicit range never asks for them.
		boundsErr: errors.New("connection refused"),
		rows:      []PeriodRow{{Period: "2024-01", Revenue: 1}},
	}
	analyzer := NewAnalyzer(source)

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC)

	result := analyzer.Analyze(context.Background(), mustRequest(t, RequestParams{}), AnalyzeOptions{Start: &start, End: &end})

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, start, result.DateRange.Start)
	assert.Equal(t, end, result.DateRange.End)
	assert.Equal(t, start, source.lastQuery.Args[0])
	assert.Equal(t, end, source.lastQuery.Args[1])
}

func TestAnalyzeEmptyDatabase(t *testing.T) {
	analyzer := NewAnalyzer(&fakeSource{hasBounds: false})

	result := analyzer.Analyze(context.Background(), mustRequest(t, RequestParams{}), AnalyzeOptions{})

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "No data available in the database", result.Message)
	assert.Nil(t, result.Analysis)
	assert.Nil(t, result.DateRange)
}

func TestAnalyzeEmptyResultSet(t *testing.T) {
	source := &fakeSource{
		min:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		max:       time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		hasBounds: true,
		rows:      nil,
	}
	analyzer := NewAnalyzer(source)

	result := analyzer.Analyze(context.Background(), mustRequest(t, RequestParams{}), AnalyzeOptions{})

	assert.Equal(t, StatusError, result.Status)
	assert.Equal(t, "No data found for the specified period", result.Message)
	assert.Nil(t, result.Analysis)
}

func TestAnalyzeQueryFaultIsNormalized(t *testing.T) {
	source := &fakeSource{
		min:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		max:       time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC),
		hasBounds: true,
		queryErr:  errors.New("relation does not exist"),
	}
	analyzer := NewAnalyzer(source)

	result := analyzer.Analyze(context.Background(), mustRequest(t, RequestParams{}), AnalyzeOptions{})

	assert.Equal(t, StatusError, result.Status)
	assert.Contains(t, result.Message, "relation does not exist")
	assert.Nil(t, result.Analysis)
}

func TestAnalyzeMetricDispatch(t *testing.T) {
	source := &fakeSource{
		min:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		max:       time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
		hasBounds: true,
		rows: []PeriodRow{
			{Period: "2024-01", Revenue: 100, Units: 10, Orders: 2, Cost: 50},
			{Period: "2024-02", Revenue: 200, Units: 20, Orders: 4, Cost: 90},
		},
	}
	analyzer := NewAnalyzer(source)

	testData := []struct {
		metric string
		check  func(t *testing.T, analysis interface{})
	}{
		{
			metric: "revenue",
			check: func(t *testing.T, analysis interface{}) {
				_, ok := analysis.(RevenueAnalysis)
				assert.True(t, ok)
			},
		},
		{
			metric: "units",
			check: func(t *testing.T, analysis interface{}) {
				payload, ok := analysis.(VolumeAnalysis)
				require.True(t, ok)
				assert.InDelta(t, 30.0, payload.TotalUnits, 1e-9)
			},
		},
		{
			metric: "aov",
			check: func(t *testing.T, analysis interface{}) {
				payload, ok := analysis.(AOVAnalysis)
				require.True(t, ok)
				assert.InDelta(t, 50.0, payload.AvgAOV, 1e-9)
			},
		},
		{
			metric: "margin",
			check: func(t *testing.T, analysis interface{}) {
				payload, ok := analysis.(MarginAnalysis)
				require.True(t, ok)
				assert.InDelta(t, 80.0, payload.AvgMargin, 1e-9)
			},
		},
	}

	for _, tt := range testData {
		t.Run(tt.metric, func(t *testing.T) {
			result := analyzer.Analyze(context.Background(), mustRequest(t, RequestParams{Metric: tt.metric}), AnalyzeOptions{})
			require.Equal(t, StatusSuccess, result.Status)
			tt.check(t, result.Analysis)
		})
	}
}

func TestAnalyzeWindowsTrendPeriods(t *testing.T) {
	source := &fakeSource{
		min:       time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		max:       time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
		hasBounds: true,
	}
	for m := 1; m <= 24; m++ {
		source.rows = append(source.rows, PeriodRow{
			Period:  time.Date(2023, time.Month(m), 1, 0, 0, 0, 0, time.UTC).Format("2006-01"),
			Revenue: float64(m),
		})
	}
	analyzer := NewAnalyzer(source)

	result := analyzer.Analyze(context.Background(), mustRequest(t, RequestParams{TrendPeriods: 6}), AnalyzeOptions{})

	require.Equal(t, StatusSuccess, result.Status)
	analysis := result.Analysis.(RevenueAnalysis)

	// Only the last 6 periods (19..24) survive the window.
	assert.InDelta(t, 19.0+20+21+22+23+24, analysis.TotalRevenue, 1e-9)
	assert.InDelta(t, (24.0-19.0)/19.0*100, analysis.RevenueGrowth, 1e-9)
}

func TestAnalyzeChartSideChannel(t *testing.T) {
	source := &fakeSource{
		min:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		max:       time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
		hasBounds: true,
		rows: []PeriodRow{
			{Period: "2024-01", Revenue: 100, DimensionID: "A"},
			{Period: "2024-01", Revenue: 50, DimensionID: "B"},
			{Period: "2024-02", Revenue: 200, DimensionID: "A"},
		},
	}
	analyzer := NewAnalyzer(source)

	req := mustRequest(t, RequestParams{Dimension: "product", IncludeVisualization: true})
	result := analyzer.Analyze(context.Background(), req, AnalyzeOptions{})

	require.Equal(t, StatusSuccess, result.Status)
	require.NotNil(t, result.Chart)
	assert.Equal(t, "line", result.Chart.Type)
	assert.Equal(t, []string{"2024-01", "2024-02"}, result.Chart.Labels)
	require.Len(t, result.Chart.Data, 1)
	assert.Equal(t, []float64{150, 200}, result.Chart.Data[0].Values)

	// Without the flag no chart is attached.
	result = analyzer.Analyze(context.Background(), mustRequest(t, RequestParams{}), AnalyzeOptions{})
	assert.Nil(t, result.Chart)
}
