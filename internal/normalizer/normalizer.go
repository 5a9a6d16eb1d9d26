package normalizer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"leasedash/server/internal/models"
)

// dateLayouts are tried in order. Layouts parse year/month/day components
// directly, so a date-only value never shifts across timezones.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"01/02/06",
	"1/2/06",
}

// ParseDate parses one of the upstream date formats. Sentinel values
// ("", "-", "null") and unparsable strings return ok=false, never an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || strings.EqualFold(s, "null") {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Float coerces an upstream value to a float64. Strings are parsed after
// stripping currency formatting; placeholders and junk return ok=false.
func Float(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case nil:
		return 0, false
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return 0, false
		}
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(val)
		s = strings.ReplaceAll(s, "$", "")
		s = strings.ReplaceAll(s, ",", "")
		if s == "" || s == "-" || strings.EqualFold(s, "null") {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	case bool:
		if val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// String coerces an upstream value to a trimmed string, treating null-ish
// placeholders as absent.
func String(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(val)
		if s == "-" || strings.EqualFold(s, "null") {
			return ""
		}
		return s
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// Bool coerces the rentable flag: 1/"1"/true are true, 0/"0"/false are
// false, anything else is absent.
func Bool(v interface{}) *bool {
	t, f := true, false
	switch val := v.(type) {
	case bool:
		if val {
			return &t
		}
		return &f
	case float64:
		if val == 1 {
			return &t
		}
		if val == 0 {
			return &f
		}
	case int:
		if val == 1 {
			return &t
		}
		if val == 0 {
			return &f
		}
	case string:
		switch strings.TrimSpace(strings.ToLower(val)) {
		case "1", "true":
			return &t
		case "0", "false":
			return &f
		}
	case json.Number:
		if val.String() == "1" {
			return &t
		}
		if val.String() == "0" {
			return &f
		}
	}
	return nil
}

func numField(raw models.RawRecord, key string) *float64 {
	if f, ok := Float(raw[key]); ok {
		return &f
	}
	return nil
}

func dateField(raw models.RawRecord, key string) *time.Time {
	if t, ok := ParseDate(String(raw[key])); ok {
		return &t
	}
	return nil
}

// DaysOnMarket computes whole days elapsed since moveOut relative to now,
// rounded up. Only strictly positive counts qualify; future or unparsable
// move-out dates yield nil.
func DaysOnMarket(moveOut *time.Time, now time.Time) *float64 {
	if moveOut == nil {
		return nil
	}
	days := math.Ceil(now.Sub(*moveOut).Hours() / 24)
	if days <= 0 {
		return nil
	}
	return &days
}

// PercentChange returns (current-previous)/previous*100, or nil when either
// side is absent or the previous value is zero.
func PercentChange(current, previous *float64) *float64 {
	if current == nil || previous == nil || *previous == 0 {
		return nil
	}
	change := (*current - *previous) / *previous * 100
	return &change
}

// PerSqftAnnualized converts a monthly amount to a yearly per-square-foot
// rate, or nil when the area is absent or not positive.
func PerSqftAnnualized(monthly, sqft *float64) *float64 {
	if monthly == nil || sqft == nil || *sqft <= 0 {
		return nil
	}
	v := *monthly / *sqft * 12
	return &v
}

// Normalize converts one raw row into an immutable Record, computing the
// derived fields against the supplied reference time. It is a pure function
// of the row and now; callers needing determinism inject a fixed clock.
func Normalize(raw models.RawRecord, now time.Time) *models.Record {
	r := &models.Record{
		UnitID:             String(raw["unit_id"]),
		Address:            String(raw["address"]),
		Unit:               String(raw["unit"]),
		LeaseType:          String(raw["lease_type"]),
		Portfolio:          String(raw["portfolio"]),
		UnitStatus:         String(raw["unit_status"]),
		DealStatus:         String(raw["deal_status"]),
		PreviousDealStatus: String(raw["previous_deal_status"]),
		Beds:               numField(raw, "beds"),
		Baths:              numField(raw, "baths"),
		Sqft:               numField(raw, "sqft"),
		Gross:              numField(raw, "gross"),
		PreviousGross:      numField(raw, "previous_gross"),
		ActualRent:         numField(raw, "actual_rent"),
		PreviousActualRent: numField(raw, "previous_actual_rent"),
		Concession:         numField(raw, "concession"),
		Term:               numField(raw, "term"),
		Rentable:           Bool(raw["rentable"]),
		MoveIn:             dateField(raw, "move_in"),
		MoveOut:            dateField(raw, "move_out"),
		StartDate:          dateField(raw, "start_date"),
		Expiry:             dateField(raw, "expiry"),
		PreviousMoveOut:    dateField(raw, "previous_move_out"),
		MostRecentNote:     String(raw["most_recent_note"]),
	}
	if r.UnitID == "" {
		r.UnitID = String(raw["id"])
	}

	r.DaysOnMarket = DaysOnMarket(r.MoveOut, now)
	r.GrossChange = PercentChange(r.Gross, r.PreviousGross)
	r.RentChange = PercentChange(r.ActualRent, r.PreviousActualRent)
	r.YOY = PercentChange(r.Gross, r.PreviousGross)
	r.GPSF = PerSqftAnnualized(r.Gross, r.Sqft)
	r.PPSF = PerSqftAnnualized(r.ActualRent, r.Sqft)

	return r
}

// NormalizeAll normalizes a fetched row set against a single reference time
// so every record in the snapshot ages consistently.
func NormalizeAll(rows []models.RawRecord, now time.Time) []*models.Record {
	records := make([]*models.Record, 0, len(rows))
	for _, raw := range rows {
		records = append(records, Normalize(raw, now))
	}
	return records
}
