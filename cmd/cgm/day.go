package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jwulff/cgm-go/internal/analysis"
	"github.com/jwulff/cgm-go/internal/glucose"
)

type dayReading struct {
	Time    string  `json:"time"`
	Glucose float64 `json:"glucose"`
	Status  string  `json:"status"`
	Trend   string  `json:"trend,omitempty"`
}

type daySummary struct {
	Count  int     `json:"count"`
	Mean   float64 `json:"mean"`
	Peak   float64 `json:"peak"`
	Trough float64 `json:"trough"`
}

type dayResult struct {
	Date     string       `json:"date"`
	Readings []dayReading `json:"readings"`
	Summary  daySummary   `json:"summary"`
	Unit     string       `json:"unit"`
}

func runDay() {
	fs := flag.NewFlagSet("day", flag.ExitOnError)
	hourStart := fs.Int("hour-start", -1, "First hour of day to include (0-23)")
	hourEnd := fs.Int("hour-end", -1, "Last hour of day to include (0-23)")

	// The date is the first positional argument: cgm day <date> [flags].
	args := os.Args[1:]
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage: cgm day <date> [--hour-start H] [--hour-end H]")
		fs.PrintDefaults()
		return
	}
	dateArg := args[0]
	fs.Parse(args[1:])

	a := newApp()
	defer a.Close()
	ctx := context.Background()

	date, err := parseDateArg(dateArg)
	if err != nil {
		printJSON(errorResult("Invalid date: %v", err))
		return
	}

	if err := a.engine.EnsureData(ctx, 90); err != nil {
		printJSON(errorResult("Failed to fetch data: %v", err))
		return
	}

	all, err := a.store.QuerySince(ctx, 0)
	if err != nil || len(all) == 0 {
		printJSON(errorResult("No data found. Run 'refresh' first."))
		return
	}

	readings := analysis.FilterByDate(all, date)
	if window, ok := hourWindowFromFlags(*hourStart, *hourEnd); ok {
		readings = analysis.FilterByHourWindow(readings, window)
	}
	if len(readings) == 0 {
		printJSON(errorResult("No readings found for %s.", date))
		return
	}

	thresholds := a.provider.Thresholds(ctx)
	d := a.display(ctx)

	out := dayResult{Date: date, Unit: d.Unit}
	peak, trough, sum := readings[0].SGV, readings[0].SGV, 0
	for _, r := range readings {
		t, _ := r.Time()
		out.Readings = append(out.Readings, dayReading{
			Time:    t.Format("15:04"),
			Glucose: d.Convert(float64(r.SGV)),
			Status:  thresholds.Classify(r.SGV).String(),
			Trend:   r.Direction,
		})
		if r.SGV > peak {
			peak = r.SGV
		}
		if r.SGV < trough {
			trough = r.SGV
		}
		sum += r.SGV
	}
	out.Summary = daySummary{
		Count:  len(readings),
		Mean:   d.Convert(glucose.Round1(float64(sum) / float64(len(readings)))),
		Peak:   d.Convert(float64(peak)),
		Trough: d.Convert(float64(trough)),
	}
	printJSON(out)
}
