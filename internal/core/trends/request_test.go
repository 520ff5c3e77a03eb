package trends

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestValidation(t *testing.T) {
	testData := []struct {
		name      string
		params    RequestParams
		wantErr   bool
		wantField string
	}{
		{
			name:   "defaults are valid",
			params: RequestParams{},
		},
		{
			name: "all fields valid",
			params: RequestParams{
				TimeGrain: "weekly",
				Metric:    "units",
				Dimension: "product",
				TopN:      3,
			},
		},
		{
			name:      "hourly grain rejected",
			params:    RequestParams{TimeGrain: "hourly"},
			wantErr:   true,
			wantField: "time_grain",
		},
		{
			name:      "unknown metric rejected",
			params:    RequestParams{Metric: "profit"},
			wantErr:   true,
			wantField: "metric",
		},
		{
			name:      "unknown dimension rejected",
			params:    RequestParams{Dimension: "warehouse"},
			wantErr:   true,
			wantField: "dimension",
		},
		{
			name:      "dimension is case sensitive",
			params:    RequestParams{Dimension: "Product"},
			wantErr:   true,
			wantField: "dimension",
		},
		{
			name:      "grain is case sensitive",
			params:    RequestParams{TimeGrain: "Monthly"},
			wantErr:   true,
			wantField: "time_grain",
		},
		{
			name:      "filter key outside allow-list rejected",
			params:    RequestParams{Filters: map[string]interface{}{"1=1; DROP TABLE": "x"}},
			wantErr:   true,
			wantField: "filters",
		},
		{
			name:   "allow-listed filter key accepted",
			params: RequestParams{Filters: map[string]interface{}{"customer_key": "C-100"}},
		},
		{
			name:      "negative top_n rejected",
			params:    RequestParams{TopN: -1},
			wantErr:   true,
			wantField: "top_n",
		},
		{
			name:      "negative trend_periods rejected",
			params:    RequestParams{TrendPeriods: -3},
			wantErr:   true,
			wantField: "trend_periods",
		},
	}

	for _, tt := range testData {
		t.Run(tt.name, func(t *testing.T) {
			req, err := NewRequest(tt.params)

			if tt.wantErr {
				require.Error(t, err)
				var confErr *ConfigurationError
				require.True(t, errors.As(err, &confErr))
				assert.Equal(t, tt.wantField, confErr.Field)
				assert.Nil(t, req)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, req)
		})
	}
}

func TestNewRequestNormalization(t *testing.T) {
	req, err := NewRequest(RequestParams{Metric: "REVENUE"})
	require.NoError(t, err)
	assert.Equal(t, MetricRevenue, req.Metric)

	// Defaults
	assert.Equal(t, GrainMonthly, req.TimeGrain)
	assert.Equal(t, DimensionNone, req.Dimension)
	assert.Equal(t, 5, req.TopN)
	assert.Equal(t, 12, req.TrendPeriods)
}
