package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jwulff/cgm-go/internal/analysis"
	"github.com/jwulff/cgm-go/internal/render"
)

func runChart() {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	heatmap := fs.Bool("heatmap", false, "Hour-by-day heatmap")
	dayDate := fs.String("day", "", "Chart a single day (date argument)")
	dateAlias := fs.String("date", "", "Alias for -day")
	sparkline := fs.Bool("sparkline", false, "One-line sparkline of recent readings")
	week := fs.Bool("week", false, "Last seven days, one sparkline per day")
	days := fs.Int("days", 14, "Days of history for the heatmap")
	hours := fs.Int("hours", 24, "Hours of history for the sparkline")
	color := fs.Bool("color", false, "ANSI color output")
	fs.Parse(os.Args[1:])
	if *dayDate == "" {
		*dayDate = *dateAlias
	}

	a := newApp()
	defer a.Close()
	ctx := context.Background()

	if err := a.engine.EnsureData(ctx, *days); err != nil {
		fmt.Printf("Failed to fetch data: %v\n", err)
		return
	}

	thresholds := a.provider.Thresholds(ctx)
	opts := render.Options{Color: *color}

	switch {
	case *heatmap:
		readings, _ := a.readingsForDays(ctx, *days)
		fmt.Print(render.Heatmap(readings, thresholds, opts))

	case *dayDate != "":
		date, err := parseDateArg(*dayDate)
		if err != nil {
			fmt.Printf("Invalid date: %v\n", err)
			return
		}
		all, _ := a.store.QuerySince(ctx, 0)
		readings := analysis.FilterByDate(all, date)
		fmt.Println(date)
		fmt.Print(render.DayChart(readings, thresholds, 12, opts))

	case *week:
		readings, _ := a.readingsForDays(ctx, 7)
		fmt.Print(render.WeekView(readings, thresholds, opts))

	case *sparkline:
		fallthrough
	default:
		cutoffMs := time.Now().UTC().Add(-time.Duration(*hours) * time.Hour).UnixMilli()
		readings, _ := a.store.QuerySince(ctx, cutoffMs)
		if len(readings) == 0 {
			fmt.Println("no data to chart")
			return
		}
		values := make([]float64, len(readings))
		lo, hi := readings[0].SGV, readings[0].SGV
		for i, r := range readings {
			values[i] = float64(r.SGV)
			if r.SGV < lo {
				lo = r.SGV
			}
			if r.SGV > hi {
				hi = r.SGV
			}
		}
		fmt.Printf("last %dh  %s  min %d  max %d\n", *hours, render.Sparkline(values), lo, hi)
	}
}
