package analysis

import (
	"sort"

	"github.com/jwulff/cgm-go/internal/glucose"
)

// DefaultDayLimit is how many ranked days are returned when the caller
// does not ask for a specific count.
const DefaultDayLimit = 5

// DaySummary aggregates one local calendar day.
type DaySummary struct {
	Date         string  `json:"date"`
	Peak         float64 `json:"peak"`
	Trough       float64 `json:"trough"`
	Mean         float64 `json:"mean"`
	Readings     int     `json:"readings"`
	HighCount    int     `json:"high_count"`
	LowCount     int     `json:"low_count"`
	InRangeCount int     `json:"in_range_count"`
}

type dayAccum struct {
	values []int
	high   int
	low    int
	in     int
}

// RankDays groups readings by local calendar day, optionally restricted
// to an hour window, and ranks days descending by raw peak value. At
// most limit days are returned; limit <= 0 means DefaultDayLimit.
// Readings with unparseable timestamps are skipped.
func RankDays(readings []glucose.Reading, t glucose.Thresholds, d Display, hours *HourWindow, limit int) []DaySummary {
	if limit <= 0 {
		limit = DefaultDayLimit
	}

	byDay := map[string]*dayAccum{}
	for _, r := range readings {
		ts, ok := r.Time()
		if !ok {
			continue
		}
		if hours != nil && !hours.Contains(ts.Hour()) {
			continue
		}

		date := ts.Format("2006-01-02")
		acc := byDay[date]
		if acc == nil {
			acc = &dayAccum{}
			byDay[date] = acc
		}
		acc.values = append(acc.values, r.SGV)
		switch t.Classify(r.SGV) {
		case glucose.BandVeryLow, glucose.BandLow:
			acc.low++
		case glucose.BandInRange:
			acc.in++
		default:
			acc.high++
		}
	}

	summaries := make([]DaySummary, 0, len(byDay))
	for date, acc := range byDay {
		peak, trough, sum := acc.values[0], acc.values[0], 0
		for _, v := range acc.values {
			if v > peak {
				peak = v
			}
			if v < trough {
				trough = v
			}
			sum += v
		}
		summaries = append(summaries, DaySummary{
			Date:         date,
			Peak:         d.Convert(float64(peak)),
			Trough:       d.Convert(float64(trough)),
			Mean:         d.Convert(glucose.Round1(float64(sum) / float64(len(acc.values)))),
			Readings:     len(acc.values),
			HighCount:    acc.high,
			LowCount:     acc.low,
			InRangeCount: acc.in,
		})
	}

	// Descending by peak, most recent date on ties.
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].Peak != summaries[j].Peak {
			return summaries[i].Peak > summaries[j].Peak
		}
		return summaries[i].Date > summaries[j].Date
	})

	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries
}
