package aggregate

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/carbonlens/carbonlens/internal/model"
)

// Interval selects the calendar bucket size of a trend series.
//
//nolint:recvcheck // UnmarshalJSON requires pointer receiver; String/MarshalJSON use value receivers.
type Interval int

const (
	// IntervalDaily buckets by calendar date.
	IntervalDaily Interval = iota

	// IntervalWeekly buckets by ISO week.
	IntervalWeekly

	// IntervalMonthly buckets by calendar month.
	IntervalMonthly

	// IntervalQuarterly buckets by calendar quarter.
	IntervalQuarterly

	// IntervalYearly buckets by calendar year.
	IntervalYearly
)

// String returns the interval label.
func (i Interval) String() string {
	switch i {
	case IntervalDaily:
		return "daily"
	case IntervalWeekly:
		return "weekly"
	case IntervalMonthly:
		return "monthly"
	case IntervalQuarterly:
		return "quarterly"
	case IntervalYearly:
		return "yearly"
	default:
		return fmt.Sprintf("unknown(%d)", int(i))
	}
}

// ParseInterval converts an interval label to its Interval value.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "daily", "day":
		return IntervalDaily, nil
	case "weekly", "week":
		return IntervalWeekly, nil
	case "monthly", "month", "":
		return IntervalMonthly, nil
	case "quarterly", "quarter":
		return IntervalQuarterly, nil
	case "yearly", "year", "annual":
		return IntervalYearly, nil
	default:
		return 0, fmt.Errorf("unknown interval %q", s)
	}
}

// MarshalJSON encodes the interval as its label.
func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.String())
}

// UnmarshalJSON decodes an interval from its label.
func (i *Interval) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseInterval(s)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// TrendPoint is one calendar bucket of a trend series.
type TrendPoint struct {
	// Bucket is the calendar-aligned bucket key (2024-03, 2024-Q1,
	// 2024-W09, 2024-03-15, or 2024 depending on the interval).
	Bucket string `json:"bucket"`

	// TotalCO2e is the bucket total across all scopes, tonnes CO2e.
	TotalCO2e float64 `json:"totalCo2e"`

	// ByScope is the bucket total per scope.
	ByScope map[string]float64 `json:"byScope"`
}

// TrendSeries buckets records by the interval's calendar boundary and sums
// CO2e per bucket per scope. Buckets are calendar-aligned (ISO week, month,
// quarter, year), never rolling windows, and the series is sorted by bucket
// key ascending. Records are assigned by their PeriodStart.
func TrendSeries(records []model.EmissionRecord, interval Interval) []TrendPoint {
	buckets := map[string]*TrendPoint{}

	for _, r := range records {
		key := bucketKey(r.PeriodStart, interval)
		point, ok := buckets[key]
		if !ok {
			point = &TrendPoint{Bucket: key, ByScope: map[string]float64{}}
			buckets[key] = point
		}
		point.TotalCO2e += r.CO2Equivalent
		point.ByScope[r.Scope.String()] += r.CO2Equivalent
	}

	series := make([]TrendPoint, 0, len(buckets))
	for _, point := range buckets {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Bucket < series[j].Bucket })

	return series
}

// bucketKey renders the calendar-aligned bucket key for a timestamp.
// Keys sort lexicographically in chronological order within an interval.
func bucketKey(t time.Time, interval Interval) string {
	t = t.UTC()
	switch interval {
	case IntervalDaily:
		return t.Format("2006-01-02")
	case IntervalWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case IntervalMonthly:
		return t.Format("2006-01")
	case IntervalQuarterly:
		quarter := (int(t.Month())-1)/3 + 1
		return fmt.Sprintf("%04d-Q%d", t.Year(), quarter)
	case IntervalYearly:
		return t.Format("2006")
	default:
		return t.Format("2006-01")
	}
}

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// trendDeadband is the fixed ±5% deadband around zero change inside which a
// period-over-period movement reads as stable. A design constant, not
// configuration: report consumers depend on the exact boundary.
const trendDeadband = 0.05

// TrendDirection compares the most recent completed period's total against
// the immediately prior period of equal length. Change above +5% reads
// "increasing", below -5% "decreasing", otherwise "stable".
//
// A zero prior period reads "stable" when the current period is also zero,
// otherwise "increasing": relative change is undefined against zero.
func TrendDirection(current, previous float64) string {
	if previous == 0 {
		if current == 0 {
			return TrendStable
		}
		return TrendIncreasing
	}

	change := (current - previous) / previous
	switch {
	case change > trendDeadband:
		return TrendIncreasing
	case change < -trendDeadband:
		return TrendDecreasing
	default:
		return TrendStable
	}
}

// YearOverYear summarizes the two most recent year buckets of the records
// and their trend direction. Returns false when fewer than two year buckets
// exist.
type YearOverYear struct {
	CurrentYear   string  `json:"currentYear"`
	PreviousYear  string  `json:"previousYear"`
	CurrentCO2e   float64 `json:"currentCo2e"`
	PreviousCO2e  float64 `json:"previousCo2e"`
	ChangePercent float64 `json:"changePercent"`
	Direction     string  `json:"direction"`
}

// YearOverYearTrend computes the year-over-year summary from the records.
func YearOverYearTrend(records []model.EmissionRecord) (YearOverYear, bool) {
	series := TrendSeries(records, IntervalYearly)
	if len(series) < 2 {
		return YearOverYear{}, false
	}

	previous := series[len(series)-2]
	current := series[len(series)-1]

	yoy := YearOverYear{
		CurrentYear:  current.Bucket,
		PreviousYear: previous.Bucket,
		CurrentCO2e:  current.TotalCO2e,
		PreviousCO2e: previous.TotalCO2e,
		Direction:    TrendDirection(current.TotalCO2e, previous.TotalCO2e),
	}
	if previous.TotalCO2e != 0 {
		yoy.ChangePercent = (current.TotalCO2e - previous.TotalCO2e) / math.Abs(previous.TotalCO2e) * 100
	}

	return yoy, true
}
