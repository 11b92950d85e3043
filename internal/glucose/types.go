// Package glucose holds the core domain types for CGM readings:
// the reading record, threshold bands, and unit conversion.
package glucose

import (
	"math"
	"strings"
	"time"
)

// MmolFactor is the molar conversion constant between mg/dL and mmol/L.
const MmolFactor = 18.0182

// Default thresholds in mg/dL, used when the remote settings are unavailable.
const (
	DefaultUrgentLow  = 55
	DefaultLowTarget  = 70
	DefaultHighTarget = 180
	DefaultUrgentHigh = 250
)

// Reading is one stored glucose observation. Value is always raw mg/dL;
// zero is the sentinel for an invalid reading and is excluded from analysis.
type Reading struct {
	ID         string
	SGV        int
	DateMs     int64
	DateString string
	Trend      int
	Direction  string
	Device     string
}

// Time parses the reading's timestamp text. The returned time keeps the
// offset embedded in the string, so Hour() and calendar grouping reflect
// the reading's local clock. ok is false for malformed timestamps.
func (r Reading) Time() (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(r.DateString))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Thresholds are the four ascending band boundaries in mg/dL.
type Thresholds struct {
	UrgentLow  int `json:"urgent_low"`
	LowTarget  int `json:"low_target"`
	HighTarget int `json:"high_target"`
	UrgentHigh int `json:"urgent_high"`
}

// DefaultThresholds returns the documented fallback boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		UrgentLow:  DefaultUrgentLow,
		LowTarget:  DefaultLowTarget,
		HighTarget: DefaultHighTarget,
		UrgentHigh: DefaultUrgentHigh,
	}
}

// Band is the five-way range classification of a reading.
type Band int

const (
	BandVeryLow Band = iota
	BandLow
	BandInRange
	BandHigh
	BandVeryHigh
)

// String returns the snake_case key used in structured output.
func (b Band) String() string {
	switch b {
	case BandVeryLow:
		return "very_low"
	case BandLow:
		return "low"
	case BandInRange:
		return "in_range"
	case BandHigh:
		return "high"
	default:
		return "very_high"
	}
}

// StatusLabel returns the human-readable status for the current reading.
func (b Band) StatusLabel() string {
	switch b {
	case BandVeryLow:
		return "VERY LOW - urgent"
	case BandLow:
		return "low"
	case BandInRange:
		return "in range"
	case BandHigh:
		return "high"
	default:
		return "VERY HIGH"
	}
}

// Classify buckets a raw mg/dL value. Both target boundaries are
// inclusive: LowTarget and HighTarget themselves are in range.
func (t Thresholds) Classify(mgdl int) Band {
	switch {
	case mgdl < t.UrgentLow:
		return BandVeryLow
	case mgdl < t.LowTarget:
		return BandLow
	case mgdl <= t.HighTarget:
		return BandInRange
	case mgdl <= t.UrgentHigh:
		return BandHigh
	default:
		return BandVeryHigh
	}
}

// Round1 rounds to one decimal place, half away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// MgdlToMmol converts a mg/dL value to mmol/L rounded to one decimal.
func MgdlToMmol(v float64) float64 {
	return Round1(v / MmolFactor)
}
