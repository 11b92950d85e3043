package main

import (
	"context"
)

type currentResult struct {
	Glucose           float64 `json:"glucose"`
	Unit              string  `json:"unit"`
	Trend             string  `json:"trend"`
	Timestamp         string  `json:"timestamp"`
	Status            string  `json:"status"`
	SettingsDefaulted bool    `json:"settings_defaulted,omitempty"`
}

func runCurrent() {
	a := newApp()
	defer a.Close()
	ctx := context.Background()

	entry, err := a.client.FetchLatest(ctx)
	if err != nil {
		printJSON(errorResult("Failed to fetch current glucose: %v", err))
		return
	}
	if entry == nil {
		printJSON(errorResult("No data available"))
		return
	}

	thresholds := a.provider.Thresholds(ctx)
	printJSON(currentResult{
		Glucose:           a.provider.Convert(ctx, float64(entry.SGV)),
		Unit:              a.provider.UnitLabel(ctx),
		Trend:             entry.Direction,
		Timestamp:         entry.DateString,
		Status:            thresholds.Classify(entry.SGV).StatusLabel(),
		SettingsDefaulted: a.provider.UsedDefaults(ctx),
	})
}
