package main

import (
	"context"
	"flag"
	"os"

	"github.com/jwulff/cgm-go/internal/analysis"
)

type patternsResult struct {
	PeriodDays int `json:"period_days"`
	analysis.Patterns
}

func runPatterns() {
	fs := flag.NewFlagSet("patterns", flag.ExitOnError)
	days := fs.Int("days", 90, "Number of days to mine")
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

	p := analysis.MinePatterns(readings, a.provider.Thresholds(ctx), a.display(ctx))
	printJSON(patternsResult{PeriodDays: *days, Patterns: p})
}
