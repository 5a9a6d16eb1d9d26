package distribution

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type metricKind int

const (
	kindNumber metricKind = iota
	kindCurrency
	kindCategory
)

// metricInfo drives bin-label formatting per metric.
type metricInfo struct {
	Kind     metricKind
	Prefix   string
	Suffix   string
	Decimals int
}

var metricInfos = map[string]metricInfo{
	"days_on_market":     {Kind: kindNumber, Suffix: " days"},
	"dom":                {Kind: kindNumber, Suffix: " days"},
	"gross":              {Kind: kindCurrency, Prefix: "$"},
	"actual_rent":        {Kind: kindCurrency, Prefix: "$"},
	"avg_price_per_sqft": {Kind: kindCurrency, Prefix: "$", Suffix: "/sqft", Decimals: 2},
	"ppsf":               {Kind: kindCurrency, Prefix: "$", Suffix: "/sqft", Decimals: 2},
	"gpsf":               {Kind: kindCurrency, Prefix: "$", Suffix: "/sqft", Decimals: 2},
	"sqft":               {Kind: kindNumber, Suffix: " sqft"},
	"beds":               {Kind: kindNumber, Suffix: " bed"},
	"baths":              {Kind: kindNumber, Suffix: " bath", Decimals: 1},
	"unit_status":        {Kind: kindCategory},
	"deal_status":        {Kind: kindCategory},
	"lease_type":         {Kind: kindCategory},
	"portfolio":          {Kind: kindCategory},
}

func infoFor(metric string) metricInfo {
	if info, ok := metricInfos[metric]; ok {
		return info
	}
	return metricInfo{Kind: kindNumber, Decimals: 1}
}

// isCategoryMetric reports whether the metric groups categorically rather
// than binning numerically.
func isCategoryMetric(metric string) bool {
	return infoFor(metric).Kind == kindCategory
}

// binLabel renders a bin range according to the metric's formatting rules:
// currency ranges get $-prefixed grouped integers, day counts get a " days"
// suffix, generic numerics render at the configured precision.
func binLabel(start, end float64, info metricInfo) string {
	switch info.Kind {
	case kindCurrency:
		if info.Decimals == 0 {
			return fmt.Sprintf("%s%s-%s%s%s",
				info.Prefix, groupThousands(math.Round(start)),
				info.Prefix, groupThousands(math.Round(end)), info.Suffix)
		}
		return fmt.Sprintf("%s%.*f-%s%.*f%s",
			info.Prefix, info.Decimals, start,
			info.Prefix, info.Decimals, end, info.Suffix)
	case kindNumber:
		if info.Decimals == 0 {
			// Widen to whole numbers; bins always render as ranges.
			return fmt.Sprintf("%d-%d%s", int(math.Floor(start)), int(math.Ceil(end)), info.Suffix)
		}
		return fmt.Sprintf("%.*f-%.*f%s", info.Decimals, start, info.Decimals, end, info.Suffix)
	default:
		return fmt.Sprintf("%.1f-%.1f", start, end)
	}
}

// groupThousands formats a rounded value with comma separators.
func groupThousands(v float64) string {
	neg := v < 0
	s := strconv.FormatFloat(math.Abs(v), 'f', 0, 64)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
		if len(s) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(s); i += 3 {
		b.WriteString(s[i : i+3])
		if i+3 < len(s) {
			b.WriteByte(',')
		}
	}
	return b.String()
}
