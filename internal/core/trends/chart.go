package trends

import "fmt"

// ChartData is the payload handed to the rendering collaborator. It carries
// the same ordered series the analyzer consumed; nothing is decomposed or
// smoothed here.
type ChartData struct {
	Type   string        `json:"type"`
	Labels []string      `json:"labels"`
	Data   []ChartSeries `json:"data"`
}

// ChartSeries is one line in a chart.
type ChartSeries struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
	Color  string    `json:"color,omitempty"`
}

// BuildTrendChart converts the aggregated series into a line chart, one label
// per period and one series for the requested metric. Dimension rows are
// collapsed into period totals so the chart shows the overall trend.
func BuildTrendChart(metric Metric, rows []PeriodRow) ChartData {
	labels := make([]string, 0)
	seen := make(map[string]int)

	value := chartValue(metric)

	values := make([]float64, 0)
	for _, row := range rows {
		i, ok := seen[row.Period]
		if !ok {
			seen[row.Period] = len(labels)
			labels = append(labels, row.Period)
			values = append(values, value(row))
			continue
		}
		values[i] += value(row)
	}

	return ChartData{
		Type:   "line",
		Labels: labels,
		Data: []ChartSeries{
			{Name: seriesName(metric), Values: values},
		},
	}
}

func chartValue(metric Metric) func(PeriodRow) float64 {
	switch metric {
	case MetricUnits:
		return func(r PeriodRow) float64 { return r.Units }
	case MetricAOV:
		return func(r PeriodRow) float64 {
			if r.Orders == 0 {
				return 0
			}
			return r.Revenue / float64(r.Orders)
		}
	case MetricMargin:
		return func(r PeriodRow) float64 { return r.Revenue - r.Cost }
	default:
		return func(r PeriodRow) float64 { return r.Revenue }
	}
}

func seriesName(metric Metric) string {
	switch metric {
	case MetricRevenue:
		return "Revenue"
	case MetricUnits:
		return "Units"
	case MetricAOV:
		return "AOV"
	case MetricMargin:
		return "Margin"
	default:
		return fmt.Sprintf("%v", metric)
	}
}
