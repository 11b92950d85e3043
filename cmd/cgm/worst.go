package main

import (
	"context"
	"flag"
	"os"

	"github.com/jwulff/cgm-go/internal/analysis"
)

type worstResult struct {
	PeriodDays int                   `json:"period_days"`
	Days       []analysis.DaySummary `json:"days"`
	Unit       string                `json:"unit"`
}

func runWorst() {
	fs := flag.NewFlagSet("worst", flag.ExitOnError)
	days := fs.Int("days", 90, "Number of days to rank")
	hourStart := fs.Int("hour-start", -1, "First hour of day to include (0-23)")
	hourEnd := fs.Int("hour-end", -1, "Last hour of day to include (0-23)")
	limit := fs.Int("limit", analysis.DefaultDayLimit, "How many days to return")
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

	var window *analysis.HourWindow
	if w, ok := hourWindowFromFlags(*hourStart, *hourEnd); ok {
		window = &w
	}

	ranked := analysis.RankDays(readings, a.provider.Thresholds(ctx), a.display(ctx), window, *limit)
	printJSON(worstResult{PeriodDays: *days, Days: ranked, Unit: a.provider.UnitLabel(ctx)})
}
