package metrics

import (
	"fmt"
	"math"
	"strings"
	"time"

	"leasedash/server/internal/models"
)

// Down-unit keywords: any of these in unit_status marks the unit unrentable.
var downKeywords = []string{"dnr", "do not rent", "holdover", "legal"}

// TotalUnits is the unfiltered record count.
func TotalUnits(records []*models.Record) int {
	return len(records)
}

func isRentable(r *models.Record) bool {
	return r.Rentable != nil && *r.Rentable
}

// CurrentVacancy counts vacant, rentable units.
func CurrentVacancy(records []*models.Record) int {
	count := 0
	for _, r := range records {
		if strings.EqualFold(r.UnitStatus, "vacant") && isRentable(r) {
			count++
		}
	}
	return count
}

// ExpectedVacancy counts vacant rentable units with no active deal in
// flight, the units genuinely expected to stay empty.
func ExpectedVacancy(records []*models.Record) int {
	count := 0
	for _, r := range records {
		if strings.EqualFold(r.UnitStatus, "vacant") && isRentable(r) &&
			!strings.Contains(strings.ToLower(r.DealStatus), "active") {
			count++
		}
	}
	return count
}

// DownUnitsResult reports down units with their share of the portfolio,
// formatted to one decimal place.
type DownUnitsResult struct {
	Count   int    `json:"count"`
	Percent string `json:"percent"`
}

// DownUnits counts units that cannot be rented: unit_status matching a down
// keyword, or rentable explicitly off.
func DownUnits(records []*models.Record) DownUnitsResult {
	if len(records) == 0 {
		return DownUnitsResult{Count: 0, Percent: "0"}
	}
	count := 0
	for _, r := range records {
		status := strings.ToLower(r.UnitStatus)
		down := false
		for _, keyword := range downKeywords {
			if strings.Contains(status, keyword) {
				down = true
				break
			}
		}
		if !down && r.Rentable != nil && !*r.Rentable {
			down = true
		}
		if down {
			count++
		}
	}
	percent := fmt.Sprintf("%.1f", float64(count)/float64(len(records))*100)
	return DownUnitsResult{Count: count, Percent: percent}
}

// MoveOutCalendar is the upcoming move-out schedule: one count per calendar
// day for the next 30 days, labels formatted M/D.
type MoveOutCalendar struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"counts"`
	Total  int      `json:"total"`
}

// DailyMoveOuts counts scheduled move-outs per calendar day over the 30 days
// starting at now (inclusive). Matching is by calendar date, not instant.
func DailyMoveOuts(records []*models.Record, now time.Time) MoveOutCalendar {
	const window = 30

	cal := MoveOutCalendar{
		Labels: make([]string, window),
		Counts: make([]int, window),
	}
	index := make(map[string]int, window)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	for i := 0; i < window; i++ {
		day := start.AddDate(0, 0, i)
		key := day.Format("2006-01-02")
		index[key] = i
		cal.Labels[i] = fmt.Sprintf("%d/%d", int(day.Month()), day.Day())
	}

	for _, r := range records {
		if r.MoveOut == nil {
			continue
		}
		if i, ok := index[r.MoveOut.Format("2006-01-02")]; ok {
			cal.Counts[i]++
			cal.Total++
		}
	}
	return cal
}

// AverageDaysOnMarket is the mean aging across units on the market, rounded
// to the nearest whole day; 0 when no unit qualifies.
func AverageDaysOnMarket(records []*models.Record) int {
	var total float64
	count := 0
	for _, r := range records {
		if r.DaysOnMarket != nil && *r.DaysOnMarket > 0 {
			total += *r.DaysOnMarket
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(total / float64(count)))
}

// UnitsByStatus counts records whose field case-insensitively equals any of
// the given values.
func UnitsByStatus(records []*models.Record, field string, values ...string) int {
	count := 0
	for _, r := range records {
		v, ok := models.StringField(r, field)
		if !ok || v == "" {
			continue
		}
		for _, want := range values {
			if strings.EqualFold(v, want) {
				count++
				break
			}
		}
	}
	return count
}

// Summary bundles the headline dashboard metrics.
type Summary struct {
	TotalUnits          int             `json:"total_units"`
	CurrentVacancy      int             `json:"current_vacancy"`
	ExpectedVacancy     int             `json:"expected_vacancy"`
	DownUnits           DownUnitsResult `json:"down_units"`
	AverageDaysOnMarket int             `json:"average_days_on_market"`
}

// Summarize computes the headline metrics in one pass over the snapshot.
func Summarize(records []*models.Record) Summary {
	return Summary{
		TotalUnits:          TotalUnits(records),
		CurrentVacancy:      CurrentVacancy(records),
		ExpectedVacancy:     ExpectedVacancy(records),
		DownUnits:           DownUnits(records),
		AverageDaysOnMarket: AverageDaysOnMarket(records),
	}
}
