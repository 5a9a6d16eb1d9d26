package distribution

import (
	"fmt"
	"math"
	"sort"

	"leasedash/server/internal/filter"
	"leasedash/server/internal/models"
)

// DefaultCategoryLimit caps how many distinct categories a distribution
// shows before folding the tail into "Other".
const DefaultCategoryLimit = 10

// CategoryCount is one slice of a categorical distribution.
type CategoryCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ByCategory counts occurrences per distinct value of a categorical field.
// Missing values group under "Unknown". Categories are sorted descending by
// count; everything past limit folds into a trailing "Other" bucket, which
// is only emitted when the tail is non-empty.
func ByCategory(records []*models.Record, field string, limit int) (int, []CategoryCount) {
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}
	counts := make(map[string]int)
	for _, r := range records {
		v, _ := models.StringField(r, field)
		if v == "" {
			v = "Unknown"
		}
		counts[v]++
	}

	entries := make([]CategoryCount, 0, len(counts))
	for label, count := range counts {
		entries = append(entries, CategoryCount{Label: label, Count: count})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Label < entries[j].Label
	})

	if len(entries) > limit {
		other := 0
		for _, e := range entries[limit:] {
			other += e.Count
		}
		entries = entries[:limit]
		if other > 0 {
			entries = append(entries, CategoryCount{Label: "Other", Count: other})
		}
	}

	return len(records), entries
}

// pointValue resolves a metric for one record using the same rules the
// normalizer applied: derived fields come off the record, and days-on-market
// only counts when strictly positive.
func pointValue(r *models.Record, metric string) (float64, bool) {
	v, ok := models.NumericField(r, metric)
	if !ok {
		return 0, false
	}
	if (metric == "days_on_market" || metric == "dom") && v <= 0 {
		return 0, false
	}
	return v, true
}

// Grouped produces the chart series for an x-metric/y-metric pair. A
// categorical x-metric averages y per category; a numeric x-metric either
// returns raw sorted points (line/scatter) or mean-per-bin bars.
func Grouped(records []*models.Record, spec models.DistributionSpec) models.ChartData {
	filtered := filter.ApplyScoped(records, spec.Filters)

	if isCategoryMetric(spec.XMetric) {
		return groupedByCategory(filtered, spec)
	}
	return groupedNumeric(filtered, spec)
}

type categoryAccum struct {
	label string
	sum   float64
	count int
}

func groupedByCategory(records []*models.Record, spec models.DistributionSpec) models.ChartData {
	accums := make(map[string]*categoryAccum)
	order := make([]string, 0)
	for _, r := range records {
		category, _ := models.StringField(r, spec.XMetric)
		if category == "" {
			continue
		}
		y, ok := pointValue(r, spec.YMetric)
		if !ok {
			continue
		}
		acc, exists := accums[category]
		if !exists {
			acc = &categoryAccum{label: category}
			accums[category] = acc
			order = append(order, category)
		}
		acc.sum += y
		acc.count++
	}

	// Categories with no valid values never made it into the map, so every
	// surviving accumulator divides cleanly.
	entries := make([]*categoryAccum, 0, len(accums))
	for _, label := range order {
		entries = append(entries, accums[label])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	limit := spec.Limit
	if limit <= 0 {
		limit = DefaultCategoryLimit
	}
	if len(entries) > limit {
		entries = entries[:limit]
	}

	out := models.ChartData{
		Labels: make([]string, 0, len(entries)),
		Values: make([]*float64, 0, len(entries)),
	}
	for _, e := range entries {
		avg := e.sum / float64(e.count)
		out.Labels = append(out.Labels, e.label)
		out.Values = append(out.Values, &avg)
	}
	return out
}

func groupedNumeric(records []*models.Record, spec models.DistributionSpec) models.ChartData {
	points := make([]models.Point, 0, len(records))
	for _, r := range records {
		x, okX := pointValue(r, spec.XMetric)
		y, okY := pointValue(r, spec.YMetric)
		if okX && okY {
			points = append(points, models.Point{X: x, Y: y})
		}
	}

	// Line and scatter styles render raw pairs; only lines need x-order.
	if spec.ChartStyle == models.ChartLine || spec.ChartStyle == models.ChartScatter {
		if spec.ChartStyle == models.ChartLine {
			sort.SliceStable(points, func(i, j int) bool { return points[i].X < points[j].X })
		}
		return models.ChartData{Labels: []string{}, Values: []*float64{}, Points: points}
	}

	if len(points) == 0 {
		return models.ChartData{Labels: []string{}, Values: []*float64{}}
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].X < points[j].X })
	min := points[0].X
	max := points[len(points)-1].X

	binCount := binCountFor(len(points), max-min)
	binSize := (max - min) / float64(binCount)

	type bin struct {
		start, end float64
		sum        float64
		count      int
	}
	bins := make([]bin, binCount)
	info := infoFor(spec.XMetric)
	labels := make([]string, binCount)
	for i := range bins {
		bins[i].start = min + float64(i)*binSize
		if i == binCount-1 {
			bins[i].end = max
		} else {
			bins[i].end = min + float64(i+1)*binSize
		}
		labels[i] = binLabel(bins[i].start, bins[i].end, info)
	}

	// Each point lands in exactly one bin: [start, end) everywhere except the
	// final bin, which closes at max.
	for _, p := range points {
		for i := range bins {
			last := i == binCount-1
			if p.X >= bins[i].start && (p.X < bins[i].end || (last && p.X <= max)) {
				bins[i].sum += p.Y
				bins[i].count++
				break
			}
		}
	}

	values := make([]*float64, binCount)
	for i, b := range bins {
		if b.count == 0 {
			continue // nil marks a gap, not a zero bar
		}
		avg := b.sum / float64(b.count)
		values[i] = &avg
	}

	return models.ChartData{Labels: labels, Values: values, Points: points}
}

// binCountFor scales bin count with point volume, bounded to keep bars
// readable; very wide ranges allow up to 15 bins.
func binCountFor(pointCount int, dataRange float64) int {
	count := int(math.Ceil(float64(pointCount) / 10))
	if count < 5 {
		count = 5
	}
	if count > 10 {
		count = 10
	}
	if dataRange > 10000 && count > 15 {
		count = 15
	}
	return count
}

// Histogram builds a single-field integer histogram over the strictly
// positive values of a metric, with summary statistics computed over the
// same valid-value set.
func Histogram(records []*models.Record, metric string) (models.HistogramStats, models.Series) {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := pointValue(r, metric); ok {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return models.HistogramStats{}, models.Series{Labels: []string{}, Values: []*float64{}}
	}
	sort.Float64s(values)

	min := values[0]
	max := values[len(values)-1]
	var total float64
	for _, v := range values {
		total += v
	}
	stats := models.HistogramStats{
		Average: math.Round(total / float64(len(values))),
		Median:  median(values),
		Min:     min,
		Max:     max,
		Count:   len(values),
	}

	span := max - min
	binCount := int(math.Min(10, math.Max(1, span+1)))
	binSize := math.Max(1, math.Ceil(span/float64(binCount)))

	labels := make([]string, binCount)
	counts := make([]float64, binCount)
	starts := make([]float64, binCount)
	ends := make([]float64, binCount)
	for i := 0; i < binCount; i++ {
		starts[i] = min + float64(i)*binSize
		if i == binCount-1 {
			ends[i] = max
		} else {
			ends[i] = min + float64(i+1)*binSize - 1
		}
		if starts[i] == ends[i] {
			labels[i] = fmt.Sprintf("%.0f", starts[i])
		} else {
			labels[i] = fmt.Sprintf("%.0f-%.0f", starts[i], ends[i])
		}
	}

	for _, v := range values {
		for i := 0; i < binCount; i++ {
			if v >= starts[i] && v <= ends[i] {
				counts[i]++
				break
			}
		}
	}

	series := models.Series{Labels: labels, Values: make([]*float64, binCount)}
	for i := range counts {
		c := counts[i]
		series.Values[i] = &c
	}
	return stats, series
}

func median(sorted []float64) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return math.Round((sorted[mid-1] + sorted[mid]) / 2)
	}
	return sorted[mid]
}

// domRange is one fixed bucket of the days-on-market summary card.
type domRange struct {
	label    string
	min, max float64
}

var domRanges = []domRange{
	{"0-7 days", 0, 7},
	{"8-14 days", 8, 14},
	{"15-30 days", 15, 30},
	{"31-60 days", 31, 60},
	{"60+ days", 61, math.Inf(1)},
}

// DaysOnMarketRanges groups aging units into the fixed summary buckets used
// by the days-on-market card.
func DaysOnMarketRanges(records []*models.Record) models.Series {
	out := models.Series{
		Labels: make([]string, len(domRanges)),
		Values: make([]*float64, len(domRanges)),
	}
	for i, rng := range domRanges {
		count := 0.0
		for _, r := range records {
			if v, ok := pointValue(r, "days_on_market"); ok && v >= rng.min && v <= rng.max {
				count++
			}
		}
		c := count
		out.Labels[i] = rng.label
		out.Values[i] = &c
	}
	return out
}

// LabelValue is one slice of a pie-style distribution.
type LabelValue struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// DealStatusByUnitStatus counts deal statuses among records with the given
// unit status, the source for the status-breakdown pie. Missing deal
// statuses group under "Unknown"; output is sorted descending by count.
func DealStatusByUnitStatus(records []*models.Record, unitStatus string) []LabelValue {
	if unitStatus == "" {
		return []LabelValue{}
	}
	counts := make(map[string]float64)
	for _, r := range records {
		if r.UnitStatus != unitStatus {
			continue
		}
		status := r.DealStatus
		if status == "" {
			status = "Unknown"
		}
		counts[status]++
	}
	out := make([]LabelValue, 0, len(counts))
	for label, value := range counts {
		out = append(out, LabelValue{Label: label, Value: value})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// UniqueValues returns the distinct non-empty values of a categorical field
// in first-seen order, for dropdown options.
func UniqueValues(records []*models.Record, field string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, r := range records {
		v, _ := models.StringField(r, field)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
