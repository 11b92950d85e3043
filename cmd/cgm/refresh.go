package main

import (
	"context"
	"flag"
	"os"
)

type refreshResult struct {
	Status        string `json:"status"`
	NewReadings   int    `json:"new_readings"`
	TotalReadings int    `json:"total_readings"`
	Database      string `json:"database"`
}

func runRefresh() {
	fs := flag.NewFlagSet("refresh", flag.ExitOnError)
	days := fs.Int("days", 90, "Days of data to fetch")
	fs.Parse(os.Args[1:])

	a := newApp()
	defer a.Close()

	res, err := a.engine.Sync(context.Background(), *days)
	if err != nil {
		printJSON(errorResult("Failed to fetch data: %v", err))
		return
	}

	printJSON(refreshResult{
		Status:        "success",
		NewReadings:   res.New,
		TotalReadings: res.Total,
		Database:      a.cfg.DBPath,
	})
}
