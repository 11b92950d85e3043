package analysis

import (
	"fmt"
	"strings"
	"time"

	"github.com/jwulff/cgm-go/internal/glucose"
)

// HourWindow filters readings to an hour-of-day range. When Start is
// greater than End the window wraps past midnight: 22→6 means hour 22
// or later, or before hour 6. A non-wrapping window is inclusive on
// both ends.
type HourWindow struct {
	Start int
	End   int
}

// Contains reports whether an hour of day falls inside the window.
func (w HourWindow) Contains(hour int) bool {
	if w.Start > w.End {
		return hour >= w.Start || hour < w.End
	}
	return hour >= w.Start && hour <= w.End
}

// FilterByHourWindow keeps readings whose local hour is inside the
// window, dropping readings with unparseable timestamps.
func FilterByHourWindow(readings []glucose.Reading, w HourWindow) []glucose.Reading {
	var out []glucose.Reading
	for _, r := range readings {
		t, ok := r.Time()
		if !ok {
			continue
		}
		if w.Contains(t.Hour()) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByWeekday keeps readings that fall on the given weekday,
// dropping readings with unparseable timestamps.
func FilterByWeekday(readings []glucose.Reading, day time.Weekday) []glucose.Reading {
	var out []glucose.Reading
	for _, r := range readings {
		t, ok := r.Time()
		if !ok {
			continue
		}
		if t.Weekday() == day {
			out = append(out, r)
		}
	}
	return out
}

// FilterByDate keeps readings on the given local calendar day.
func FilterByDate(readings []glucose.Reading, date string) []glucose.Reading {
	var out []glucose.Reading
	for _, r := range readings {
		t, ok := r.Time()
		if !ok {
			continue
		}
		if t.Format("2006-01-02") == date {
			out = append(out, r)
		}
	}
	return out
}

// ParseWeekday resolves a weekday name, case-insensitively. Both full
// names and three-letter abbreviations are accepted.
func ParseWeekday(name string) (time.Weekday, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if needle == full || (len(needle) == 3 && needle == full[:3]) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown day name: %q", name)
}
