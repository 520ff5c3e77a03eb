package trends

import "time"

// PeriodRow is one aggregated bucket of the fact table: one row per period, or
// per (period, dimension value) pair when a breakdown was requested. The fact
// source must return rows ordered by period ascending, then dimension id —
// growth and first/last semantics depend on that sequence.
type PeriodRow struct {
	Period        string  `gorm:"column:period" json:"period"`
	Revenue       float64 `gorm:"column:revenue" json:"revenue"`
	Units         float64 `gorm:"column:units" json:"units"`
	Orders        int64   `gorm:"column:orders" json:"orders"`
	Cost          float64 `gorm:"column:cost" json:"cost,omitempty"`
	DimensionID   string  `gorm:"column:dimension_id" json:"dimension_id,omitempty"`
	DimensionName string  `gorm:"column:dimension_name" json:"dimension_name,omitempty"`
}

// DateRange is the resolved analysis window, inclusive on both ends.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// TopPerformer is one ranked contributor along the requested dimension.
// SharePct is its share of the metric total across the whole series.
type TopPerformer struct {
	ID       string  `json:"id"`
	Name     string  `json:"name,omitempty"`
	Value    float64 `json:"value"`
	SharePct float64 `json:"share_pct"`
}

// RevenueAnalysis is the payload for the revenue metric.
type RevenueAnalysis struct {
	TotalRevenue     float64        `json:"total_revenue"`
	AvgPeriodRevenue float64        `json:"avg_period_revenue"`
	RevenueGrowth    float64        `json:"revenue_growth"`
	TopPerformers    []TopPerformer `json:"top_performers,omitempty"`
}

// VolumeAnalysis is the payload for the units metric.
type VolumeAnalysis struct {
	TotalUnits     float64        `json:"total_units"`
	AvgPeriodUnits float64        `json:"avg_period_units"`
	VolumeGrowth   float64        `json:"volume_growth"`
	TopPerformers  []TopPerformer `json:"top_performers,omitempty"`
}

// AOVAnalysis is the payload for the average-order-value metric. Rows with
// zero orders contribute an AOV of 0 rather than dividing by zero.
type AOVAnalysis struct {
	AvgAOV    float64 `json:"avg_aov"`
	AOVGrowth float64 `json:"aov_growth"`
}

// MarginAnalysis is the payload for the margin metric. Rows with zero revenue
// report a margin percentage of 0 rather than dividing by zero.
type MarginAnalysis struct {
	AvgMargin    float64 `json:"avg_margin"`
	AvgMarginPct float64 `json:"avg_margin_pct"`
	MarginGrowth float64 `json:"margin_growth"`
}

// Result is the envelope every analysis returns. On success Analysis holds one
// of the metric payloads above; on error only Message is set.
type Result struct {
	Status    string      `json:"status"`
	Message   string      `json:"message,omitempty"`
	Analysis  interface{} `json:"analysis,omitempty"`
	DateRange *DateRange  `json:"date_range,omitempty"`
	Chart     *ChartData  `json:"chart,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

func errorResult(message string) Result {
	return Result{Status: StatusError, Message: message}
}
