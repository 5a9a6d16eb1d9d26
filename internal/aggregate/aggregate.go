package aggregate

import (
	"leasedash/server/internal/filter"
	"leasedash/server/internal/models"
)

// validValues collects the numerically valid entries of a field across the
// record set. Records whose field is absent or non-numeric are dropped.
func validValues(records []*models.Record, field string) []float64 {
	values := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := models.NumericField(r, field); ok {
			values = append(values, v)
		}
	}
	return values
}

// Aggregate computes a scalar over the record set. Count is row count
// regardless of field validity; sum/avg/min/max operate on the numerically
// valid subset and return 0 when nothing qualifies. Callers that need to
// distinguish "no data" from zero use Average instead.
func Aggregate(records []*models.Record, field, aggregation string) float64 {
	if aggregation == models.AggCount {
		return float64(len(records))
	}

	values := validValues(records, field)
	if len(values) == 0 {
		return 0
	}

	switch aggregation {
	case models.AggSum:
		return sum(values)
	case models.AggMin:
		m := values[0]
		for _, v := range values[1:] {
			if v < m {
				m = v
			}
		}
		return m
	case models.AggMax:
		m := values[0]
		for _, v := range values[1:] {
			if v > m {
				m = v
			}
		}
		return m
	default:
		// avg, and the fallback for unknown aggregations
		return sum(values) / float64(len(values))
	}
}

// Metric evaluates a MetricSpec: filter, then aggregate. The result count is
// the filtered row count so cards can report how many units matched.
func Metric(records []*models.Record, spec models.MetricSpec) models.MetricResult {
	filtered := filter.Apply(records, spec.Filters)
	value := Aggregate(filtered, spec.Field, spec.Aggregation)
	return models.MetricResult{Value: &value, Count: len(filtered)}
}

// Average computes the scoped average-metric card value. Unlike Aggregate it
// returns a nil average when no row has a valid value, so the card can show
// N/A instead of a misleading zero.
func Average(records []*models.Record, f models.ScopedFilters) models.AverageResult {
	if f.Metric == "" {
		return models.AverageResult{}
	}

	filtered := filter.ApplyScoped(records, f)

	// days_on_market only counts strictly positive aging.
	field := f.Metric
	values := make([]float64, 0, len(filtered))
	for _, r := range filtered {
		v, ok := models.NumericField(r, field)
		if !ok {
			continue
		}
		if (field == "days_on_market" || field == "dom") && v <= 0 {
			continue
		}
		values = append(values, v)
	}

	if len(values) == 0 {
		return models.AverageResult{}
	}

	avg := sum(values) / float64(len(values))
	return models.AverageResult{Avg: &avg, Count: len(values)}
}

func sum(values []float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}
