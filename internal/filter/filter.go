package filter

import (
	"strconv"
	"strings"
	"time"

	"leasedash/server/internal/models"
	"leasedash/server/internal/normalizer"
)

// Matches reports whether the record passes every condition. Conditions are
// ANDed; a condition with an empty field, operator, or value is skipped so a
// half-filled filter form never excludes anything.
func Matches(r *models.Record, conditions []models.FilterCondition) bool {
	for _, c := range conditions {
		if c.Field == "" || c.Operator == "" || c.Value == "" {
			continue
		}
		if !matchesCondition(r, c) {
			return false
		}
	}
	return true
}

// Apply returns the records that pass all conditions. The input slice is
// never mutated.
func Apply(records []*models.Record, conditions []models.FilterCondition) []*models.Record {
	out := make([]*models.Record, 0, len(records))
	for _, r := range records {
		if Matches(r, conditions) {
			out = append(out, r)
		}
	}
	return out
}

func matchesCondition(r *models.Record, c models.FilterCondition) bool {
	switch c.Operator {
	case models.OpEquals, models.OpNotEquals:
		eq := valuesEqual(r, c.Field, c.Value)
		if c.Operator == models.OpEquals {
			return eq
		}
		return !eq
	case models.OpGreater, models.OpLess, models.OpGreaterEqual, models.OpLessEqual:
		return compareOrdered(r, c)
	case models.OpContains:
		s, _ := fieldAsString(r, c.Field)
		return strings.Contains(strings.ToLower(s), strings.ToLower(c.Value))
	case models.OpStartsWith:
		s, _ := fieldAsString(r, c.Field)
		return strings.HasPrefix(strings.ToLower(s), strings.ToLower(c.Value))
	case models.OpEndsWith:
		s, _ := fieldAsString(r, c.Field)
		return strings.HasSuffix(strings.ToLower(s), strings.ToLower(c.Value))
	case models.OpAfter, models.OpBefore:
		return compareDates(r, c)
	default:
		// Unknown operators are a no-op, like unknown fields.
		return true
	}
}

// valuesEqual does a strict comparison after coercion: numeric when both
// sides parse as numbers, string otherwise.
func valuesEqual(r *models.Record, field, value string) bool {
	if fv, ok := fieldAsNumber(r, field); ok {
		if cv, err := strconv.ParseFloat(value, 64); err == nil {
			return fv == cv
		}
	}
	s, known := fieldAsString(r, field)
	if !known {
		// Nonexistent field: vacuously true, not an error.
		return true
	}
	return s == value
}

// compareOrdered coerces both sides numerically. Temporal fields have no
// numeric reading, so ordered operators on them fail closed; after/before are
// the date path.
func compareOrdered(r *models.Record, c models.FilterCondition) bool {
	fv, ok := fieldAsNumber(r, c.Field)
	if !ok {
		return false
	}
	cv, err := strconv.ParseFloat(c.Value, 64)
	if err != nil {
		return false
	}
	switch c.Operator {
	case models.OpGreater:
		return fv > cv
	case models.OpLess:
		return fv < cv
	case models.OpGreaterEqual:
		return fv >= cv
	case models.OpLessEqual:
		return fv <= cv
	}
	return false
}

func compareDates(r *models.Record, c models.FilterCondition) bool {
	if t, known := models.DateField(r, c.Field); known {
		if t == nil {
			// Open-ended rule: a missing move-out date means the unit is not
			// yet scheduled to vacate, so range filters pass it through.
			return c.Field == "move_out"
		}
		cv, ok := normalizer.ParseDate(c.Value)
		if !ok {
			return false
		}
		return compareInstants(*t, cv, c.Operator)
	}

	// Non-temporal field under a date operator: best-effort string parse.
	s, known := fieldAsString(r, c.Field)
	if !known {
		return true
	}
	fv, ok1 := normalizer.ParseDate(s)
	cv, ok2 := normalizer.ParseDate(c.Value)
	if !ok1 || !ok2 {
		return false
	}
	return compareInstants(fv, cv, c.Operator)
}

func compareInstants(a, b time.Time, op string) bool {
	if op == models.OpAfter {
		return a.After(b)
	}
	return a.Before(b)
}

func fieldAsNumber(r *models.Record, field string) (float64, bool) {
	if v, ok := models.NumericField(r, field); ok {
		return v, true
	}
	if s, ok := models.StringField(r, field); ok {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f, true
		}
	}
	return 0, false
}

// fieldAsString resolves any known field to a string, distinguishing a known
// field with an absent value (ok=true, empty) from an unknown field name
// (ok=false). Only the latter is vacuously true under equals.
func fieldAsString(r *models.Record, field string) (string, bool) {
	if s, ok := models.StringField(r, field); ok {
		return s, true
	}
	if models.IsNumericField(field) {
		if v, ok := models.NumericField(r, field); ok {
			return strconv.FormatFloat(v, 'f', -1, 64), true
		}
		return "", true
	}
	if t, ok := models.DateField(r, field); ok {
		if t == nil {
			return "", true
		}
		return t.Format("2006-01-02"), true
	}
	return "", false
}

// MatchesScoped evaluates the fixed metric-card filters: exact status match
// and an optional move-out window with the open-ended pass-through.
func MatchesScoped(r *models.Record, f models.ScopedFilters) bool {
	if f.DealStatus != "" && r.DealStatus != f.DealStatus {
		return false
	}
	if f.UnitStatus != "" && r.UnitStatus != f.UnitStatus {
		return false
	}
	if r.MoveOut == nil {
		return true
	}
	if f.MoveOutStart != "" {
		if start, ok := normalizer.ParseDate(f.MoveOutStart); ok && r.MoveOut.Before(start) {
			return false
		}
	}
	if f.MoveOutEnd != "" {
		if end, ok := normalizer.ParseDate(f.MoveOutEnd); ok && r.MoveOut.After(end) {
			return false
		}
	}
	return true
}

// ApplyScoped filters records by the metric-card filters.
func ApplyScoped(records []*models.Record, f models.ScopedFilters) []*models.Record {
	out := make([]*models.Record, 0, len(records))
	for _, r := range records {
		if MatchesScoped(r, f) {
			out = append(out, r)
		}
	}
	return out
}
