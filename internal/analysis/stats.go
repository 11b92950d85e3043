// Package analysis computes statistical summaries, time-in-range
// breakdowns, pattern rankings, and day rankings over sets of stored
// readings. All math runs on raw mg/dL values; conversion to the
// display unit happens only on the way out.
package analysis

import (
	"math"
	"sort"

	"github.com/jwulff/cgm-go/internal/glucose"
)

// CVStableLimit is the coefficient-of-variation boundary between
// "stable" and "high variability". Fixed, not user-configurable.
const CVStableLimit = 36.0

// Display captures how values are converted for output.
type Display struct {
	UseMmol bool
	Unit    string
}

// Convert maps a raw mg/dL value to the display unit.
func (d Display) Convert(v float64) float64 {
	if d.UseMmol {
		return glucose.MgdlToMmol(v)
	}
	return v
}

// Stats holds descriptive statistics for a set of readings, converted
// for display.
type Stats struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
	Unit   string  `json:"unit"`
}

// TimeInRange is the five-band breakdown as percentages of the reading
// count. Each band is rounded independently, so the bands may not sum
// to exactly 100.
type TimeInRange struct {
	VeryLowPct  float64 `json:"very_low_pct"`
	LowPct      float64 `json:"low_pct"`
	InRangePct  float64 `json:"in_range_pct"`
	HighPct     float64 `json:"high_pct"`
	VeryHighPct float64 `json:"very_high_pct"`
}

// Values extracts the raw glucose values from a reading set.
func Values(readings []glucose.Reading) []int {
	values := make([]int, len(readings))
	for i, r := range readings {
		values[i] = r.SGV
	}
	return values
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// populationStd is the population (not sample) standard deviation.
func populationStd(values []int, m float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var ss float64
	for _, v := range values {
		d := float64(v) - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// ComputeStats calculates descriptive statistics. The median is the
// element at index n/2 of the sorted values. Returns the zero Stats
// for an empty set.
func ComputeStats(values []int, d Display) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	sorted := make([]int, len(values))
	copy(sorted, values)
	sort.Ints(sorted)

	n := len(sorted)
	m := mean(sorted)
	std := populationStd(sorted, m)

	return Stats{
		Count:  n,
		Mean:   d.Convert(glucose.Round1(m)),
		Std:    d.Convert(glucose.Round1(std)),
		Min:    d.Convert(float64(sorted[0])),
		Max:    d.Convert(float64(sorted[n-1])),
		Median: d.Convert(float64(sorted[n/2])),
		Unit:   d.Unit,
	}
}

// ComputeTimeInRange partitions raw values into the five threshold
// bands as percentages.
func ComputeTimeInRange(values []int, t glucose.Thresholds) TimeInRange {
	if len(values) == 0 {
		return TimeInRange{}
	}

	var counts [5]int
	for _, v := range values {
		counts[t.Classify(v)]++
	}

	n := float64(len(values))
	pct := func(c int) float64 {
		return glucose.Round1(float64(c) / n * 100)
	}
	return TimeInRange{
		VeryLowPct:  pct(counts[glucose.BandVeryLow]),
		LowPct:      pct(counts[glucose.BandLow]),
		InRangePct:  pct(counts[glucose.BandInRange]),
		HighPct:     pct(counts[glucose.BandHigh]),
		VeryHighPct: pct(counts[glucose.BandVeryHigh]),
	}
}

// GMI is the glucose management indicator, an estimated long-term
// average derived from the raw mg/dL mean. It is unit-independent and
// never converted.
func GMI(values []int) float64 {
	return glucose.Round1(3.31 + 0.02392*mean(values))
}

// CV is the coefficient of variation in percent, from raw values.
// Zero when the mean is zero.
func CV(values []int) float64 {
	m := mean(values)
	if m == 0 {
		return 0
	}
	return glucose.Round1(populationStd(values, m) / m * 100)
}

// CVStatus classifies a CV value.
func CVStatus(cv float64) string {
	if cv < CVStableLimit {
		return "stable"
	}
	return "high variability"
}

// HourlyAverages groups readings by local hour of day and averages each
// group. Readings with unparseable timestamps are skipped. Averages are
// rounded to the nearest integer before display conversion.
func HourlyAverages(readings []glucose.Reading, d Display) map[int]float64 {
	sums := map[int]int{}
	counts := map[int]int{}
	for _, r := range readings {
		t, ok := r.Time()
		if !ok {
			continue
		}
		sums[t.Hour()] += r.SGV
		counts[t.Hour()]++
	}

	averages := make(map[int]float64, len(sums))
	for hour, sum := range sums {
		avg := math.Round(float64(sum) / float64(counts[hour]))
		averages[hour] = d.Convert(avg)
	}
	return averages
}
