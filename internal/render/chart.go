// Package render draws terminal visualizations over already-computed
// reading sets: sparklines, day charts, hour-by-day heatmaps, and week
// overviews. It only formats; all aggregation happens upstream.
package render

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jwulff/cgm-go/internal/glucose"
)

// sparkLevels are the eight block characters used for sparklines,
// lowest to highest.
var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Options controls chart output.
type Options struct {
	Color bool
}

// Sparkline renders values as one line of block characters, scaled to
// the min/max of the input. Empty input yields an empty string.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range values {
		idx := 0
		if hi > lo {
			idx = int((v - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}

// hourlyMeans averages raw values per (date, hour). Dates come back
// sorted ascending.
func hourlyMeans(readings []glucose.Reading) (dates []string, means map[string]map[int]int) {
	sums := map[string]map[int][2]int{}
	for _, r := range readings {
		t, ok := r.Time()
		if !ok {
			continue
		}
		date := t.Format("2006-01-02")
		if sums[date] == nil {
			sums[date] = map[int][2]int{}
		}
		acc := sums[date][t.Hour()]
		sums[date][t.Hour()] = [2]int{acc[0] + r.SGV, acc[1] + 1}
	}

	means = make(map[string]map[int]int, len(sums))
	for date, hours := range sums {
		dates = append(dates, date)
		means[date] = map[int]int{}
		for hour, acc := range hours {
			means[date][hour] = int(math.Round(float64(acc[0]) / float64(acc[1])))
		}
	}
	sort.Strings(dates)
	return dates, means
}

// Heatmap draws one row per calendar day and one column per hour, with
// each cell classified by the hour's mean value.
func Heatmap(readings []glucose.Reading, t glucose.Thresholds, opts Options) string {
	dates, means := hourlyMeans(readings)
	if len(dates) == 0 {
		return "no data to chart\n"
	}

	var b strings.Builder
	b.WriteString(paintAxis("            0  2  4  6  8 10 12 14 16 18 20 22", opts.Color))
	b.WriteString("\n")

	for _, date := range dates {
		b.WriteString(paintAxis(date+" ", opts.Color))
		for hour := 0; hour < 24; hour++ {
			mean, ok := means[date][hour]
			if !ok {
				b.WriteString(" ")
				continue
			}
			b.WriteString(paint(heatCell(mean, t), mean, t, opts.Color))
		}
		b.WriteString("\n")
	}

	b.WriteString(paintAxis("cells: · in range  ▪ out of range  █ urgent", opts.Color))
	b.WriteString("\n")
	return b.String()
}

func heatCell(mean int, t glucose.Thresholds) string {
	switch t.Classify(mean) {
	case glucose.BandInRange:
		return "·"
	case glucose.BandLow, glucose.BandHigh:
		return "▪"
	default:
		return "█"
	}
}

// DayChart plots one day's readings as a scaled scatter with a value
// axis. height is the number of plot rows; values are bucketed into
// rows between the day's min and max.
func DayChart(readings []glucose.Reading, t glucose.Thresholds, height int, opts Options) string {
	if height <= 0 {
		height = 12
	}
	if len(readings) == 0 {
		return "no data to chart\n"
	}

	lo, hi := readings[0].SGV, readings[0].SGV
	for _, r := range readings {
		if r.SGV < lo {
			lo = r.SGV
		}
		if r.SGV > hi {
			hi = r.SGV
		}
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	// rows[0] is the top of the chart.
	rows := make([][]rune, height)
	for i := range rows {
		rows[i] = []rune(strings.Repeat(" ", len(readings)))
	}
	for col, r := range readings {
		level := (r.SGV - lo) * (height - 1) / span
		rows[height-1-level][col] = '•'
	}

	var b strings.Builder
	for i, row := range rows {
		label := lo + (height-1-i)*span/(height-1)
		b.WriteString(paintAxis(fmt.Sprintf("%4d │", label), opts.Color))
		for col, ch := range row {
			if ch == ' ' {
				b.WriteString(" ")
				continue
			}
			b.WriteString(paint(string(ch), readings[col].SGV, t, opts.Color))
		}
		b.WriteString("\n")
	}
	b.WriteString(paintAxis("     └"+strings.Repeat("─", len(readings)), opts.Color))
	b.WriteString("\n")
	return b.String()
}

// WeekView renders the last seven days as one sparkline of hourly
// means per day, with a min/max summary.
func WeekView(readings []glucose.Reading, t glucose.Thresholds, opts Options) string {
	dates, means := hourlyMeans(readings)
	if len(dates) == 0 {
		return "no data to chart\n"
	}
	if len(dates) > 7 {
		dates = dates[len(dates)-7:]
	}

	var b strings.Builder
	for _, date := range dates {
		var values []float64
		lo, hi := math.MaxInt, 0
		for hour := 0; hour < 24; hour++ {
			mean, ok := means[date][hour]
			if !ok {
				continue
			}
			values = append(values, float64(mean))
			if mean < lo {
				lo = mean
			}
			if mean > hi {
				hi = mean
			}
		}
		line := Sparkline(values)
		if opts.Color {
			line = bandStyle(t.Classify(hi)).Render(line)
		}
		b.WriteString(fmt.Sprintf("%s  %-24s  min %3d  max %3d\n", paintAxis(date, opts.Color), line, lo, hi))
	}
	return b.String()
}
