package trends

import (
	"fmt"
	"sort"
	"strings"
)

const factTable = "sales_transactions"

// bucketExpr returns the Postgres expression that folds txn_date into the
// period bucket for a grain. Every valid date maps to exactly one bucket.
func bucketExpr(grain TimeGrain) string {
	switch grain {
	case GrainDaily:
		return "TO_CHAR(txn_date, 'YYYY-MM-DD')"
	case GrainWeekly:
		return "TO_CHAR(txn_date, 'IYYY-IW')"
	case GrainMonthly:
		return "TO_CHAR(txn_date, 'YYYY-MM')"
	case GrainQuarterly:
		return `TO_CHAR(txn_date, 'YYYY"-Q"Q')`
	default: // annual
		return "TO_CHAR(txn_date, 'YYYY')"
	}
}

// dimensionColumns maps a breakdown dimension to its (id, label) column pair
// on the fact table. Region and customer use the same column for both.
func dimensionColumns(dim Dimension) (id, label string, ok bool) {
	switch dim {
	case DimensionProduct:
		return "item_key", "item_number", true
	case DimensionCategory:
		return "item_category_hrchy_key", "product_posting_group", true
	case DimensionChannel:
		return "sales_organization_key", "business_unit_key", true
	case DimensionRegion:
		return "customer_geography_hrchy_key", "customer_geography_hrchy_key", true
	case DimensionCustomer:
		return "customer_key", "customer_key", true
	default:
		return "", "", false
	}
}

// PeriodQuery is a built aggregation query: SQL text plus the positional
// arguments for the date bounds and filter values, in declaration order.
type PeriodQuery struct {
	SQL  string
	Args []interface{}
}

// BuildPeriodQuery translates the request into a grouped aggregation over the
// fact table for the given date range. Filter values are always bound as
// parameters; filter keys were allow-listed at construction, so they are safe
// to splice as identifiers. The margin metric additionally aggregates cost.
func BuildPeriodQuery(req *AnalysisRequest, dateRange DateRange) PeriodQuery {
	bucket := bucketExpr(req.TimeGrain)

	selectParts := []string{
		fmt.Sprintf("%s AS period", bucket),
		"SUM(net_sales_amount) AS revenue",
		"SUM(net_sales_quantity) AS units",
		"COUNT(DISTINCT sales_txn_number) AS orders",
	}
	if req.Metric == MetricMargin {
		selectParts = append(selectParts, "SUM(cost_amount) AS cost")
	}

	groupBy := []string{bucket}
	orderBy := []string{bucket}

	if idCol, labelCol, ok := dimensionColumns(req.Dimension); ok {
		selectParts = append(selectParts,
			fmt.Sprintf("%s AS dimension_id", idCol),
			fmt.Sprintf("%s AS dimension_name", labelCol),
		)
		groupBy = append(groupBy, idCol)
		if labelCol != idCol {
			groupBy = append(groupBy, labelCol)
		}
		orderBy = append(orderBy, idCol)
	}

	var sb strings.Builder
	args := []interface{}{dateRange.Start, dateRange.End}

	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(selectParts, ", "))
	sb.WriteString(" FROM ")
	sb.WriteString(factTable)
	sb.WriteString(" WHERE txn_date BETWEEN ? AND ?")
	sb.WriteString(" AND deleted_flag = false AND excluded_flag = false")

	// Deterministic predicate order keeps the SQL stable for identical requests.
	fields := make([]string, 0, len(req.Filters))
	for field := range req.Filters {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		switch value := req.Filters[field].(type) {
		case []interface{}:
			placeholders := strings.TrimSuffix(strings.Repeat("?,", len(value)), ",")
			sb.WriteString(fmt.Sprintf(" AND %s IN (%s)", field, placeholders))
			args = append(args, value...)
		case []string:
			placeholders := strings.TrimSuffix(strings.Repeat("?,", len(value)), ",")
			sb.WriteString(fmt.Sprintf(" AND %s IN (%s)", field, placeholders))
			for _, v := range value {
				args = append(args, v)
			}
		default:
			sb.WriteString(fmt.Sprintf(" AND %s = ?", field))
			args = append(args, value)
		}
	}

	sb.WriteString(" GROUP BY ")
	sb.WriteString(strings.Join(groupBy, ", "))
	sb.WriteString(" ORDER BY ")
	sb.WriteString(strings.Join(orderBy, ", "))

	return PeriodQuery{SQL: sb.String(), Args: args}
}
