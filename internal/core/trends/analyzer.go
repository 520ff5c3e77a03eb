package trends

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// Analyzer runs trend analyses against a fact source. One Analyzer is safe for
// concurrent use; every Analyze call is self-contained and shares no state
// with other calls.
type Analyzer struct {
	source FactSource
}

// NewAnalyzer creates an Analyzer over the given fact source.
func NewAnalyzer(source FactSource) *Analyzer {
	return &Analyzer{source: source}
}

// AnalyzeOptions narrows the analysis window. Nil Start/End mean "use the
// earliest/latest date available in the fact source".
type AnalyzeOptions struct {
	Start *time.Time
	End   *time.Time
}

// Analyze resolves the date range, runs the period aggregation and reduces it
// with the metric analyzer selected by the request. Every fault after request
// construction is normalized into an error Result; no raw error escapes.
func (a *Analyzer) Analyze(ctx context.Context, req *AnalysisRequest, opts AnalyzeOptions) Result {
	result, _ := a.AnalyzeSeries(ctx, req, opts)
	return result
}

// AnalyzeSeries is Analyze plus the windowed series the analyzer consumed,
// for callers that render or export it. The series is nil on error results.
func (a *Analyzer) AnalyzeSeries(ctx context.Context, req *AnalysisRequest, opts AnalyzeOptions) (Result, []PeriodRow) {
	dateRange, err := a.resolveDateRange(ctx, opts)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve analysis date range")
		return errorResult(err.Error()), nil
	}

	rows, err := a.source.QueryPeriods(ctx, BuildPeriodQuery(req, dateRange))
	if err != nil {
		log.Error().Err(err).Str("metric", string(req.Metric)).Msg("period aggregation failed")
		return errorResult(err.Error()), nil
	}

	if len(rows) == 0 {
		return errorResult(ErrNoData.Error()), nil
	}

	rows = windowLastPeriods(rows, req.TrendPeriods)

	var analysis interface{}
	switch req.Metric {
	case MetricRevenue:
		analysis = analyzeRevenue(req, rows)
	case MetricUnits:
		analysis = analyzeVolume(req, rows)
	case MetricAOV:
		analysis = analyzeAOV(rows)
	case MetricMargin:
		analysis = analyzeMargin(rows)
	}

	result := Result{
		Status:    StatusSuccess,
		Analysis:  analysis,
		DateRange: &dateRange,
	}

	if req.IncludeVisualization {
		chart := BuildTrendChart(req.Metric, rows)
		result.Chart = &chart
	}

	return result, rows
}

func (a *Analyzer) resolveDateRange(ctx context.Context, opts AnalyzeOptions) (DateRange, error) {
	if opts.Start != nil && opts.End != nil {
		return DateRange{Start: *opts.Start, End: *opts.End}, nil
	}

	min, max, ok, err := a.source.DateBounds(ctx)
	if err != nil {
		return DateRange{}, err
	}
	if !ok {
		return DateRange{}, ErrNoDateRange
	}

	dateRange := DateRange{Start: min, End: max}
	if opts.Start != nil {
		dateRange.Start = *opts.Start
	}
	if opts.End != nil {
		dateRange.End = *opts.End
	}
	return dateRange, nil
}
