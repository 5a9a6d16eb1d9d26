package distribution

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"leasedash/server/internal/models"
)

func fptr(v float64) *float64 { return &v }

func TestByCategory(t *testing.T) {
	records := []*models.Record{
		{UnitStatus: "Vacant"},
		{UnitStatus: "Vacant"},
		{UnitStatus: "Occupied"},
		{UnitStatus: ""},
	}

	total, categories := ByCategory(records, "unit_status", 10)
	assert.Equal(t, 4, total)
	assert.Len(t, categories, 3)
	assert.Equal(t, CategoryCount{Label: "Vacant", Count: 2}, categories[0])
	// Ties break alphabetically; missing values group under Unknown
	assert.Equal(t, CategoryCount{Label: "Occupied", Count: 1}, categories[1])
	assert.Equal(t, CategoryCount{Label: "Unknown", Count: 1}, categories[2])
}

func TestByCategoryOtherOverflow(t *testing.T) {
	records := make([]*models.Record, 0, 15)
	for i := 0; i < 15; i++ {
		records = append(records, &models.Record{Portfolio: fmt.Sprintf("Portfolio %02d", i)})
	}

	total, categories := ByCategory(records, "portfolio", 10)
	assert.Equal(t, 15, total)
	// 15 distinct categories fold into 10 plus a trailing Other
	assert.Len(t, categories, 11)
	assert.Equal(t, "Other", categories[10].Label)
	assert.Equal(t, 5, categories[10].Count)
}

func TestGroupedByCategory(t *testing.T) {
	records := []*models.Record{
		{UnitStatus: "Vacant", Gross: fptr(3000)},
		{UnitStatus: "Vacant", Gross: fptr(4000)},
		{UnitStatus: "Occupied", Gross: fptr(2500)},
		{UnitStatus: "Occupied"},     // no y-value, ignored
		{UnitStatus: "", Gross: fptr(9999)}, // no category, ignored
	}

	chart := Grouped(records, models.DistributionSpec{
		XMetric:    "unit_status",
		YMetric:    "gross",
		ChartStyle: models.ChartBar,
	})

	assert.Equal(t, []string{"Vacant", "Occupied"}, chart.Labels)
	assert.Len(t, chart.Values, 2)
	assert.InDelta(t, 3500.0, *chart.Values[0], 1e-9)
	assert.InDelta(t, 2500.0, *chart.Values[1], 1e-9)
}

func TestGroupedByCategoryLimit(t *testing.T) {
	records := make([]*models.Record, 0)
	for i := 0; i < 12; i++ {
		// Category i appears i+1 times so ordering is deterministic
		for j := 0; j <= i; j++ {
			records = append(records, &models.Record{
				Portfolio: fmt.Sprintf("P%02d", i),
				Gross:     fptr(1000),
			})
		}
	}

	chart := Grouped(records, models.DistributionSpec{
		XMetric: "portfolio",
		YMetric: "gross",
		Limit:   3,
	})

	assert.Equal(t, []string{"P11", "P10", "P09"}, chart.Labels)
}

func TestGroupedNumericBars(t *testing.T) {
	records := []*models.Record{
		{Sqft: fptr(0), Gross: fptr(0)},
		{Sqft: fptr(1), Gross: fptr(1)},
		{Sqft: fptr(2), Gross: fptr(2)},
		{Sqft: fptr(3), Gross: fptr(3)},
		{Sqft: fptr(4), Gross: fptr(4)},
		{Sqft: fptr(100), Gross: fptr(100)},
	}

	chart := Grouped(records, models.DistributionSpec{
		XMetric:    "sqft",
		YMetric:    "gross",
		ChartStyle: models.ChartBar,
	})

	// Six points still spread over the minimum five bins
	assert.Len(t, chart.Labels, 5)
	assert.Len(t, chart.Values, 5)

	// First bin holds 0-4, last bin holds 100; middle bins are gaps
	assert.NotNil(t, chart.Values[0])
	assert.InDelta(t, 2.0, *chart.Values[0], 1e-9)
	assert.Nil(t, chart.Values[1])
	assert.Nil(t, chart.Values[2])
	assert.Nil(t, chart.Values[3])
	assert.NotNil(t, chart.Values[4])
	assert.InDelta(t, 100.0, *chart.Values[4], 1e-9)
}

func TestGroupedLinePoints(t *testing.T) {
	records := []*models.Record{
		{Sqft: fptr(800), Gross: fptr(2000)},
		{Sqft: fptr(500), Gross: fptr(1500)},
		{Sqft: fptr(650), Gross: fptr(1800)},
	}

	chart := Grouped(records, models.DistributionSpec{
		XMetric:    "sqft",
		YMetric:    "gross",
		ChartStyle: models.ChartLine,
	})

	// Line charts return raw points sorted by x
	assert.Len(t, chart.Points, 3)
	assert.Equal(t, 500.0, chart.Points[0].X)
	assert.Equal(t, 650.0, chart.Points[1].X)
	assert.Equal(t, 800.0, chart.Points[2].X)
	assert.Empty(t, chart.Labels)
}

func TestGroupedScatterUnsorted(t *testing.T) {
	records := []*models.Record{
		{Sqft: fptr(800), Gross: fptr(2000)},
		{Sqft: fptr(500), Gross: fptr(1500)},
	}

	chart := Grouped(records, models.DistributionSpec{
		XMetric:    "sqft",
		YMetric:    "gross",
		ChartStyle: models.ChartScatter,
	})

	assert.Len(t, chart.Points, 2)
	assert.Equal(t, 800.0, chart.Points[0].X)
}

func TestGroupedEmpty(t *testing.T) {
	chart := Grouped(nil, models.DistributionSpec{XMetric: "sqft", YMetric: "gross"})
	assert.Empty(t, chart.Labels)
	assert.Empty(t, chart.Values)
}

func TestHistogram(t *testing.T) {
	records := []*models.Record{
		{DaysOnMarket: fptr(3)},
		{DaysOnMarket: fptr(5)},
		{DaysOnMarket: fptr(5)},
		{DaysOnMarket: fptr(10)},
		{DaysOnMarket: fptr(0)}, // not on market, excluded
		{},
	}

	stats, series := Histogram(records, "days_on_market")

	assert.Equal(t, 4, stats.Count)
	assert.Equal(t, 3.0, stats.Min)
	assert.Equal(t, 10.0, stats.Max)
	assert.Equal(t, 6.0, stats.Average) // round(23/4)
	assert.Equal(t, 5.0, stats.Median)

	// Span of 7 gives 8 single-day bins
	assert.Len(t, series.Labels, 8)
	assert.Equal(t, "3", series.Labels[0])
	assert.Equal(t, 1.0, *series.Values[0])
	assert.Equal(t, 2.0, *series.Values[2]) // the two fives
	assert.Equal(t, 1.0, *series.Values[7])
}

func TestHistogramEmpty(t *testing.T) {
	stats, series := Histogram(nil, "days_on_market")
	assert.Equal(t, 0, stats.Count)
	assert.Empty(t, series.Labels)
}

func TestDaysOnMarketRanges(t *testing.T) {
	records := []*models.Record{
		{DaysOnMarket: fptr(5)},
		{DaysOnMarket: fptr(14)},
		{DaysOnMarket: fptr(45)},
		{DaysOnMarket: fptr(100)},
	}

	series := DaysOnMarketRanges(records)

	assert.Equal(t, []string{"0-7 days", "8-14 days", "15-30 days", "31-60 days", "60+ days"}, series.Labels)
	assert.Equal(t, 1.0, *series.Values[0])
	assert.Equal(t, 1.0, *series.Values[1])
	assert.Equal(t, 0.0, *series.Values[2])
	assert.Equal(t, 1.0, *series.Values[3])
	assert.Equal(t, 1.0, *series.Values[4])
}

func TestDealStatusByUnitStatus(t *testing.T) {
	records := []*models.Record{
		{UnitStatus: "Vacant", DealStatus: "Active Lead"},
		{UnitStatus: "Vacant", DealStatus: "Active Lead"},
		{UnitStatus: "Vacant", DealStatus: ""},
		{UnitStatus: "Occupied", DealStatus: "Signed"},
	}

	out := DealStatusByUnitStatus(records, "Vacant")
	assert.Len(t, out, 2)
	assert.Equal(t, LabelValue{Label: "Active Lead", Value: 2}, out[0])
	assert.Equal(t, LabelValue{Label: "Unknown", Value: 1}, out[1])

	assert.Empty(t, DealStatusByUnitStatus(records, ""))
}

func TestUniqueValues(t *testing.T) {
	records := []*models.Record{
		{Portfolio: "North"},
		{Portfolio: "South"},
		{Portfolio: "North"},
		{Portfolio: ""},
		{Portfolio: "East"},
	}

	// First-seen order, blanks dropped
	assert.Equal(t, []string{"North", "South", "East"}, UniqueValues(records, "portfolio"))
}

func TestBinLabels(t *testing.T) {
	// Currency metrics get dollar-grouped labels
	assert.Equal(t, "$1,200-$1,800", binLabel(1200, 1800, infoFor("gross")))
	// Plain numbers floor/ceil with the unit suffix
	assert.Equal(t, "3-8 days", binLabel(3.2, 7.6, infoFor("days_on_market")))
}
