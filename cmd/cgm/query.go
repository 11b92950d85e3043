package main

import (
	"context"
	"flag"
	"os"

	"github.com/jwulff/cgm-go/internal/analysis"
)

type queryFilters struct {
	Day       string `json:"day,omitempty"`
	HourStart *int   `json:"hour_start,omitempty"`
	HourEnd   *int   `json:"hour_end,omitempty"`
}

type queryResult struct {
	PeriodDays  int                  `json:"period_days"`
	Filters     queryFilters         `json:"filters"`
	Readings    int                  `json:"readings"`
	Statistics  analysis.Stats       `json:"statistics"`
	TimeInRange analysis.TimeInRange `json:"time_in_range"`
	Unit        string               `json:"unit"`
}

func runQuery() {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	days := fs.Int("days", 90, "Number of days to query")
	dayName := fs.String("day", "", "Restrict to a weekday (e.g. monday)")
	hourStart := fs.Int("hour-start", -1, "First hour of day to include (0-23)")
	hourEnd := fs.Int("hour-end", -1, "Last hour of day to include (0-23)")
	fs.Parse(os.Args[1:])

	a := newApp()
	defer a.Close()
	ctx := context.Background()

	if err := a.engine.EnsureData(ctx, *days); err != nil {
		printJSON(errorResult("Failed to fetch data: %v", err))
		return
	}

	readings, err := a.readingsForDays(ctx, *days)
	if err != nil || len(readings) == 0 {
		printJSON(errorResult("No data found for the specified period. Run 'refresh' first."))
		return
	}

	filters := queryFilters{}
	if *dayName != "" {
		weekday, err := analysis.ParseWeekday(*dayName)
		if err != nil {
			printJSON(errorResult("Invalid day name: %q", *dayName))
			return
		}
		filters.Day = weekday.String()
		readings = analysis.FilterByWeekday(readings, weekday)
	}
	if window, ok := hourWindowFromFlags(*hourStart, *hourEnd); ok {
		filters.HourStart = &window.Start
		filters.HourEnd = &window.End
		readings = analysis.FilterByHourWindow(readings, window)
	}

	if len(readings) == 0 {
		printJSON(errorResult("No readings match the given filters."))
		return
	}

	values := analysis.Values(readings)
	d := a.display(ctx)
	printJSON(queryResult{
		PeriodDays:  *days,
		Filters:     filters,
		Readings:    len(values),
		Statistics:  analysis.ComputeStats(values, d),
		TimeInRange: analysis.ComputeTimeInRange(values, a.provider.Thresholds(ctx)),
		Unit:        d.Unit,
	})
}

// hourWindowFromFlags builds a window when at least one bound was
// given; an unset bound defaults to the edge of the day.
func hourWindowFromFlags(start, end int) (analysis.HourWindow, bool) {
	if start < 0 && end < 0 {
		return analysis.HourWindow{}, false
	}
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 23
	}
	return analysis.HourWindow{Start: start, End: end}, true
}
