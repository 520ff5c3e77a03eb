package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/trends"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/models"
)

// Service executes saved reports against the trend analyzer and records the
// outcome in the run log.
type Service struct {
	repo     ReportRepo
	analyzer *trends.Analyzer
	runs     *RunLog
}

// NewService creates a new report service.
func NewService(repo ReportRepo, analyzer *trends.Analyzer, runs *RunLog) *Service {
	return &Service{repo: repo, analyzer: analyzer, runs: runs}
}

// Repo exposes the underlying report repository for CRUD handlers.
func (s *Service) Repo() ReportRepo {
	return s.repo
}

// Runs exposes the run log for history handlers.
func (s *Service) Runs() *RunLog {
	return s.runs
}

// RequestFor turns a saved report row into a validated analysis request.
// A report that was saved with values no longer in the enums fails here with
// the same ConfigurationError an ad-hoc request would get.
func RequestFor(report *models.SavedReport) (*trends.AnalysisRequest, error) {
	var filters map[string]interface{}
	if len(report.Filters) > 0 {
		if err := json.Unmarshal(report.Filters, &filters); err != nil {
			return nil, fmt.Errorf("invalid filters on report %s: %w", report.Name, err)
		}
	}

	return trends.NewRequest(trends.RequestParams{
		TimeGrain:    report.TimeGrain,
		Metric:       report.Metric,
		Dimension:    report.Dimension,
		TopN:         report.TopN,
		TrendPeriods: report.TrendPeriods,
		Filters:      filters,
	})
}

// Run executes a saved report over the full available date range and records
// the run. Configuration errors on stale report rows are recorded as error
// runs, not surfaced as faults.
func (s *Service) Run(ctx context.Context, report *models.SavedReport, trigger string) (trends.Result, error) {
	req, err := RequestFor(report)
	if err != nil {
		result := trends.Result{Status: trends.StatusError, Message: err.Error()}
		if logErr := s.runs.Record(ctx, &report.ID, &trends.AnalysisRequest{
			Metric:    trends.Metric(report.Metric),
			TimeGrain: trends.TimeGrain(report.TimeGrain),
		}, trigger, result, 0); logErr != nil {
			return result, logErr
		}
		return result, nil
	}

	started := time.Now()
	result := s.analyzer.Analyze(ctx, req, trends.AnalyzeOptions{})
	duration := time.Since(started).Milliseconds()

	if err := s.runs.Record(ctx, &report.ID, req, trigger, result, duration); err != nil {
		return result, err
	}
	return result, nil
}
