package trends

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// FactSource is the dataset the analyzer queries. It answers the available
// date bounds over non-deleted, non-excluded transactions and runs a built
// period aggregation.
type FactSource interface {
	DateBounds(ctx context.Context) (min, max time.Time, ok bool, err error)
	QueryPeriods(ctx context.Context, query PeriodQuery) ([]PeriodRow, error)
}

type gormSource struct {
	db *gorm.DB
}

// NewGormSource returns a FactSource backed by the sales_transactions table.
func NewGormSource(db *gorm.DB) FactSource {
	return &gormSource{db: db}
}

type dateBoundsRow struct {
	MinDate *time.Time `gorm:"column:min_date"`
	MaxDate *time.Time `gorm:"column:max_date"`
}

func (s *gormSource) DateBounds(ctx context.Context) (time.Time, time.Time, bool, error) {
	var row dateBoundsRow

	query := fmt.Sprintf(
		"SELECT MIN(txn_date) AS min_date, MAX(txn_date) AS max_date FROM %s WHERE deleted_flag = false AND excluded_flag = false",
		factTable,
	)
	if err := s.db.WithContext(ctx).Raw(query).Scan(&row).Error; err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("failed to query date bounds: %w", err)
	}

	if row.MinDate == nil || row.MaxDate == nil {
		return time.Time{}, time.Time{}, false, nil
	}

	return *row.MinDate, *row.MaxDate, true, nil
}

func (s *gormSource) QueryPeriods(ctx context.Context, query PeriodQuery) ([]PeriodRow, error) {
	var rows []PeriodRow
	if err := s.db.WithContext(ctx).Raw(query.SQL, query.Args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query period aggregates: %w", err)
	}
	return rows, nil
}
