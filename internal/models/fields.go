package models

import "time"

// Field access goes through these maps so filter and aggregation code resolve
// field-name strings with one validated lookup instead of reflection.

var numericGetters = map[string]func(*Record) *float64{
	"beds":                 func(r *Record) *float64 { return r.Beds },
	"baths":                func(r *Record) *float64 { return r.Baths },
	"sqft":                 func(r *Record) *float64 { return r.Sqft },
	"gross":                func(r *Record) *float64 { return r.Gross },
	"previous_gross":       func(r *Record) *float64 { return r.PreviousGross },
	"actual_rent":          func(r *Record) *float64 { return r.ActualRent },
	"previous_actual_rent": func(r *Record) *float64 { return r.PreviousActualRent },
	"concession":           func(r *Record) *float64 { return r.Concession },
	"term":                 func(r *Record) *float64 { return r.Term },
	"days_on_market":       func(r *Record) *float64 { return r.DaysOnMarket },
	"dom":                  func(r *Record) *float64 { return r.DaysOnMarket },
	"gross_change_value":   func(r *Record) *float64 { return r.GrossChange },
	"rent_change_value":    func(r *Record) *float64 { return r.RentChange },
	"gpsf":                 func(r *Record) *float64 { return r.GPSF },
	"ppsf":                 func(r *Record) *float64 { return r.PPSF },
	"avg_price_per_sqft":   func(r *Record) *float64 { return r.PPSF },
	"yoy":                  func(r *Record) *float64 { return r.YOY },
}

var stringGetters = map[string]func(*Record) string{
	"unit_id":              func(r *Record) string { return r.UnitID },
	"address":              func(r *Record) string { return r.Address },
	"unit":                 func(r *Record) string { return r.Unit },
	"lease_type":           func(r *Record) string { return r.LeaseType },
	"portfolio":            func(r *Record) string { return r.Portfolio },
	"unit_status":          func(r *Record) string { return r.UnitStatus },
	"deal_status":          func(r *Record) string { return r.DealStatus },
	"previous_deal_status": func(r *Record) string { return r.PreviousDealStatus },
}

var dateGetters = map[string]func(*Record) *time.Time{
	"move_in":           func(r *Record) *time.Time { return r.MoveIn },
	"move_out":          func(r *Record) *time.Time { return r.MoveOut },
	"start_date":        func(r *Record) *time.Time { return r.StartDate },
	"expiry":            func(r *Record) *time.Time { return r.Expiry },
	"previous_move_out": func(r *Record) *time.Time { return r.PreviousMoveOut },
}

// NumericField resolves a numeric field by name. The second return is false
// when the field is unknown or the record holds no value for it.
func NumericField(r *Record, name string) (float64, bool) {
	get, ok := numericGetters[name]
	if !ok {
		return 0, false
	}
	v := get(r)
	if v == nil {
		return 0, false
	}
	return *v, true
}

// StringField resolves a categorical field by name.
func StringField(r *Record, name string) (string, bool) {
	get, ok := stringGetters[name]
	if !ok {
		return "", false
	}
	return get(r), true
}

// DateField resolves a temporal field by name. A nil time with ok=true means
// the field exists but the record has no date.
func DateField(r *Record, name string) (*time.Time, bool) {
	get, ok := dateGetters[name]
	if !ok {
		return nil, false
	}
	return get(r), true
}

// IsNumericField reports whether name resolves to a numeric getter.
func IsNumericField(name string) bool {
	_, ok := numericGetters[name]
	return ok
}
