package trends

import "sort"

// growthRate is the first-to-last percentage change of a series. A series with
// fewer than two values, or a zero first value, reports 0.0 — a conservative
// default for degenerate series, not a statement that nothing changed.
func growthRate(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}

	first := values[0]
	last := values[len(values)-1]

	if first == 0 {
		return 0.0
	}

	return ((last - first) / first) * 100
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// topPerformers ranks dimension values by the summed metric and truncates to
// topN. The sort is stable over the builder's row order (period asc, dimension
// id asc), so equal values tie-break by ascending dimension id.
func topPerformers(rows []PeriodRow, value func(PeriodRow) float64, total float64, topN int) []TopPerformer {
	type key struct {
		id   string
		name string
	}

	sums := make(map[key]float64)
	order := make([]key, 0)

	for _, row := range rows {
		k := key{id: row.DimensionID, name: row.DimensionName}
		if _, seen := sums[k]; !seen {
			order = append(order, k)
		}
		sums[k] += value(row)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return sums[order[i]] > sums[order[j]]
	})

	if topN < len(order) {
		order = order[:topN]
	}

	performers := make([]TopPerformer, 0, len(order))
	for _, k := range order {
		p := TopPerformer{ID: k.id, Name: k.name, Value: sums[k]}
		if total != 0 {
			p.SharePct = (sums[k] / total) * 100
		}
		performers = append(performers, p)
	}

	return performers
}

// windowLastPeriods trims the series to the last n distinct periods, keeping
// every dimension row inside the window. Relies on the builder's ascending
// period order.
func windowLastPeriods(rows []PeriodRow, n int) []PeriodRow {
	if n <= 0 {
		return rows
	}

	distinct := make([]string, 0)
	seen := make(map[string]bool)
	for _, row := range rows {
		if !seen[row.Period] {
			seen[row.Period] = true
			distinct = append(distinct, row.Period)
		}
	}

	if len(distinct) <= n {
		return rows
	}

	keep := make(map[string]bool, n)
	for _, period := range distinct[len(distinct)-n:] {
		keep[period] = true
	}

	windowed := make([]PeriodRow, 0, len(rows))
	for _, row := range rows {
		if keep[row.Period] {
			windowed = append(windowed, row)
		}
	}
	return windowed
}

// periodTotals collapses a (possibly dimension-broken) series into one value
// per period, preserving period order. Growth is computed over these totals so
// a breakdown does not change the trend of the whole.
func periodTotals(rows []PeriodRow, value func(PeriodRow) float64) []float64 {
	totals := make([]float64, 0)
	index := make(map[string]int)

	for _, row := range rows {
		i, seen := index[row.Period]
		if !seen {
			index[row.Period] = len(totals)
			totals = append(totals, value(row))
			continue
		}
		totals[i] += value(row)
	}

	return totals
}

func analyzeRevenue(req *AnalysisRequest, rows []PeriodRow) RevenueAnalysis {
	revenue := func(r PeriodRow) float64 { return r.Revenue }

	var total float64
	for _, row := range rows {
		total += row.Revenue
	}

	totals := periodTotals(rows, revenue)

	analysis := RevenueAnalysis{
		TotalRevenue:     total,
		AvgPeriodRevenue: mean(totals),
		RevenueGrowth:    growthRate(totals),
	}

	if req.Dimension != DimensionNone {
		analysis.TopPerformers = topPerformers(rows, revenue, total, req.TopN)
	}

	return analysis
}

func analyzeVolume(req *AnalysisRequest, rows []PeriodRow) VolumeAnalysis {
	units := func(r PeriodRow) float64 { return r.Units }

	var total float64
	for _, row := range rows {
		total += row.Units
	}

	totals := periodTotals(rows, units)

	analysis := VolumeAnalysis{
		TotalUnits:     total,
		AvgPeriodUnits: mean(totals),
		VolumeGrowth:   growthRate(totals),
	}

	if req.Dimension != DimensionNone {
		analysis.TopPerformers = topPerformers(rows, units, total, req.TopN)
	}

	return analysis
}

func analyzeAOV(rows []PeriodRow) AOVAnalysis {
	aov := func(r PeriodRow) float64 {
		if r.Orders == 0 {
			return 0
		}
		return r.Revenue / float64(r.Orders)
	}

	values := make([]float64, len(rows))
	for i, row := range rows {
		values[i] = aov(row)
	}

	return AOVAnalysis{
		AvgAOV:    mean(values),
		AOVGrowth: growthRate(values),
	}
}

func analyzeMargin(rows []PeriodRow) MarginAnalysis {
	margins := make([]float64, len(rows))
	marginPcts := make([]float64, len(rows))

	for i, row := range rows {
		margin := row.Revenue - row.Cost
		margins[i] = margin
		if row.Revenue != 0 {
			marginPcts[i] = margin / row.Revenue
		}
	}

	return MarginAnalysis{
		AvgMargin:    mean(margins),
		AvgMarginPct: mean(marginPcts),
		MarginGrowth: growthRate(margins),
	}
}
