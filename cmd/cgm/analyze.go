package main

import (
	"context"
	"flag"
	"os"

	"github.com/jwulff/cgm-go/internal/analysis"
)

type analyzeResult struct {
	DateRange         dateRange            `json:"date_range"`
	Readings          int                  `json:"readings"`
	Statistics        analysis.Stats       `json:"statistics"`
	TimeInRange       analysis.TimeInRange `json:"time_in_range"`
	GMIEstimatedA1c   float64              `json:"gmi_estimated_a1c"`
	CVVariability     float64              `json:"cv_variability"`
	CVStatus          string               `json:"cv_status"`
	HourlyAverages    map[int]float64      `json:"hourly_averages"`
	Unit              string               `json:"unit"`
	SettingsDefaulted bool                 `json:"settings_defaulted,omitempty"`
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	days := fs.Int("days", 90, "Number of days to analyze")
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

	values := analysis.Values(readings)
	d := a.display(ctx)
	cv := analysis.CV(values)

	printJSON(analyzeResult{
		DateRange:         newDateRange(readings, *days),
		Readings:          len(values),
		Statistics:        analysis.ComputeStats(values, d),
		TimeInRange:       analysis.ComputeTimeInRange(values, a.provider.Thresholds(ctx)),
		GMIEstimatedA1c:   analysis.GMI(values),
		CVVariability:     cv,
		CVStatus:          analysis.CVStatus(cv),
		HourlyAverages:    analysis.HourlyAverages(readings, d),
		Unit:              d.Unit,
		SettingsDefaulted: a.provider.UsedDefaults(ctx),
	})
}
