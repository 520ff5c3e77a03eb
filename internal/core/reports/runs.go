package reports

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/core/trends"
	"github.com/MuhamadAgungGumelar/sales-trend-analytics-be/internal/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RunLog records executed analyses so operators can see what ran, when, and
// with which outcome.
type RunLog struct {
	db *gorm.DB
}

// NewRunLog creates a new run log over the analysis_runs table.
func NewRunLog(db *gorm.DB) *RunLog {
	return &RunLog{db: db}
}

// Record persists one analysis run. The result payload is stored as JSONB;
// serialization failures are logged and the run is stored without a payload
// rather than dropped.
func (l *RunLog) Record(ctx context.Context, reportID *uuid.UUID, req *trends.AnalysisRequest, trigger string, result trends.Result, durationMs int64) error {
	run := &models.AnalysisRun{
		ReportID:    reportID,
		Metric:      string(req.Metric),
		TimeGrain:   string(req.TimeGrain),
		TriggeredBy: trigger,
		Status:      result.Status,
		Message:     result.Message,
		DurationMs:  durationMs,
	}

	if payload, err := json.Marshal(result); err != nil {
		log.Warn().Err(err).Msg("failed to serialize analysis result for run log")
	} else {
		run.Payload = datatypes.JSON(payload)
	}

	if err := l.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to record analysis run: %w", err)
	}
	return nil
}

// RunFilter narrows run history queries.
type RunFilter struct {
	ReportID *uuid.UUID
	Status   string
	Limit    int
}

// List returns run history, newest first.
func (l *RunLog) List(ctx context.Context, filter RunFilter) ([]models.AnalysisRun, error) {
	query := l.db.WithContext(ctx).Model(&models.AnalysisRun{})

	if filter.ReportID != nil {
		query = query.Where("report_id = ?", *filter.ReportID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	var runs []models.AnalysisRun
	if err := query.Order("created_at DESC").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list analysis runs: %w", err)
	}
	return runs, nil
}
