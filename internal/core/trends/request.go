package trends

import (
	"sort"
	"strings"
)

// TimeGrain is the bucket width used to group transactions into periods.
type TimeGrain string

const (
	GrainDaily     TimeGrain = "daily"
	GrainWeekly    TimeGrain = "weekly"
	GrainMonthly   TimeGrain = "monthly"
	GrainQuarterly TimeGrain = "quarterly"
	GrainAnnual    TimeGrain = "annual"
)

// Metric selects which analyzer reduces the aggregated series.
type Metric string

const (
	MetricRevenue Metric = "revenue"
	MetricUnits   Metric = "units"
	MetricAOV     Metric = "aov"
	MetricMargin  Metric = "margin"
)

// Dimension is an optional categorical breakdown used to rank contributors.
// The empty string means no breakdown.
type Dimension string

const (
	DimensionNone     Dimension = ""
	DimensionProduct  Dimension = "product"
	DimensionCategory Dimension = "category"
	DimensionChannel  Dimension = "channel"
	DimensionRegion   Dimension = "region"
	DimensionCustomer Dimension = "customer"
)

var validGrains = map[TimeGrain]bool{
	GrainDaily:     true,
	GrainWeekly:    true,
	GrainMonthly:   true,
	GrainQuarterly: true,
	GrainAnnual:    true,
}

var validMetrics = map[Metric]bool{
	MetricRevenue: true,
	MetricUnits:   true,
	MetricAOV:     true,
	MetricMargin:  true,
}

var validDimensions = map[Dimension]bool{
	DimensionNone:     true,
	DimensionProduct:  true,
	DimensionCategory: true,
	DimensionChannel:  true,
	DimensionRegion:   true,
	DimensionCustomer: true,
}

// filterableColumns is the allow-list of fact-table columns a filter key may
// reference. Filter keys end up as identifiers in the generated SQL, so
// anything outside this list is rejected at construction.
var filterableColumns = map[string]bool{
	"item_key":                     true,
	"item_number":                  true,
	"item_category_hrchy_key":      true,
	"product_posting_group":        true,
	"sales_organization_key":       true,
	"business_unit_key":            true,
	"customer_geography_hrchy_key": true,
	"customer_key":                 true,
	"currency_code":                true,
	"sales_txn_number":             true,
}

// AnalysisRequest describes one trend analysis. Construct it with NewRequest;
// a request that passed construction is valid for the lifetime of the call and
// is never mutated by the analyzer.
type AnalysisRequest struct {
	TimeGrain            TimeGrain
	Metric               Metric
	Dimension            Dimension
	TopN                 int
	Filters              map[string]interface{}
	TrendPeriods         int
	IncludeVisualization bool
}

// RequestParams carries the raw, unvalidated request values, typically decoded
// from an HTTP body or a saved report row.
type RequestParams struct {
	TimeGrain            string                 `json:"time_grain"`
	Metric               string                 `json:"metric"`
	Dimension            string                 `json:"dimension"`
	TopN                 int                    `json:"top_n"`
	Filters              map[string]interface{} `json:"filters"`
	TrendPeriods         int                    `json:"trend_periods"`
	IncludeVisualization bool                   `json:"include_visualization"`
}

// NewRequest validates params against the closed enumerations and the filter
// column allow-list. Metric comparison is case-insensitive; time grain and
// dimension are exact. Zero TopN and TrendPeriods fall back to defaults.
func NewRequest(params RequestParams) (*AnalysisRequest, error) {
	grain := TimeGrain(params.TimeGrain)
	if grain == "" {
		grain = GrainMonthly
	}
	if !validGrains[grain] {
		return nil, &ConfigurationError{Field: "time_grain", Value: params.TimeGrain, Allowed: grainNames()}
	}

	metric := Metric(strings.ToLower(params.Metric))
	if metric == "" {
		metric = MetricRevenue
	}
	if !validMetrics[metric] {
		return nil, &ConfigurationError{Field: "metric", Value: params.Metric, Allowed: metricNames()}
	}

	dimension := Dimension(params.Dimension)
	if !validDimensions[dimension] {
		return nil, &ConfigurationError{Field: "dimension", Value: params.Dimension, Allowed: dimensionNames()}
	}

	topN := params.TopN
	if topN == 0 {
		topN = 5
	}
	if topN < 0 {
		return nil, &ConfigurationError{Field: "top_n", Value: "negative"}
	}

	trendPeriods := params.TrendPeriods
	if trendPeriods == 0 {
		trendPeriods = 12
	}
	if trendPeriods < 0 {
		return nil, &ConfigurationError{Field: "trend_periods", Value: "negative"}
	}

	for field := range params.Filters {
		if !filterableColumns[field] {
			return nil, &ConfigurationError{Field: "filters", Value: field, Allowed: filterableColumnNames()}
		}
	}

	return &AnalysisRequest{
		TimeGrain:            grain,
		Metric:               metric,
		Dimension:            dimension,
		TopN:                 topN,
		Filters:              params.Filters,
		TrendPeriods:         trendPeriods,
		IncludeVisualization: params.IncludeVisualization,
	}, nil
}

func grainNames() []string {
	return []string{string(GrainDaily), string(GrainWeekly), string(GrainMonthly), string(GrainQuarterly), string(GrainAnnual)}
}

func metricNames() []string {
	return []string{string(MetricRevenue), string(MetricUnits), string(MetricAOV), string(MetricMargin)}
}

func dimensionNames() []string {
	return []string{string(DimensionProduct), string(DimensionCategory), string(DimensionChannel), string(DimensionRegion), string(DimensionCustomer)}
}

func filterableColumnNames() []string {
	names := make([]string, 0, len(filterableColumns))
	for name := range filterableColumns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
