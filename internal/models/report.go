package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SavedReport is a persisted analysis definition. Filters are stored as the
// same field→value map the analyzer accepts; Schedule, when set, is a cron
// expression picked up by the report scheduler.
type SavedReport struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"type:text;unique;not null" json:"name"`

	TimeGrain    string         `gorm:"type:text;not null;default:'monthly'" json:"time_grain"`
	Metric       string         `gorm:"type:text;not null;default:'revenue'" json:"metric"`
	Dimension    string         `gorm:"type:text" json:"dimension"`
	TopN         int            `gorm:"not null;default:5" json:"top_n"`
	TrendPeriods int            `gorm:"not null;default:12" json:"trend_periods"`
	Filters      datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"filters,omitempty"`

	Schedule string `gorm:"type:text" json:"schedule,omitempty"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name
func (SavedReport) TableName() string {
	return "saved_reports"
}

// BeforeCreate sets UUID before creating
func (r *SavedReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// AnalysisRun records one execution of an analysis, ad-hoc or scheduled.
type AnalysisRun struct {
	ID       uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID *uuid.UUID `gorm:"type:uuid;index" json:"report_id,omitempty"`

	Metric      string `gorm:"type:text;not null" json:"metric"`
	TimeGrain   string `gorm:"type:text;not null" json:"time_grain"`
	TriggeredBy string `gorm:"column:triggered_by;type:text;not null;default:'manual'" json:"triggered_by"` // manual, scheduled, api

	Status     string         `gorm:"type:text;not null;index" json:"status"`
	Message    string         `gorm:"type:text" json:"message,omitempty"`
	Payload    datatypes.JSON `gorm:"type:jsonb" json:"payload,omitempty"`
	DurationMs int64          `gorm:"type:bigint" json:"duration_ms"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

// TableName specifies the table name
func (AnalysisRun) TableName() string {
	return "analysis_runs"
}

// BeforeCreate sets UUID before creating
func (r *AnalysisRun) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
