// Command cgm fetches, caches, and analyzes continuous glucose monitor
// data from a Nightscout server.
//
// Usage:
//
//	cgm current              Latest glucose reading
//	cgm refresh              Fetch new readings into the local cache
//	cgm analyze              Statistics, time-in-range, GMI, CV
//	cgm query                Filtered readings and statistics
//	cgm patterns             Best/worst times of day and week
//	cgm day <date>           Reading-by-reading view of one day
//	cgm worst                Days ranked by peak glucose
//	cgm chart                Terminal charts
package main

import (
	"fmt"
	"os"
)

const usage = `cgm — Nightscout CGM data fetcher and analyzer

Usage:
  cgm <command> [flags]

Commands:
  current     Get the latest glucose reading
  refresh     Fetch latest data from Nightscout and update the local cache
  analyze     Analyze cached CGM data (statistics, TIR, GMI, CV)
  query       Query cached readings with day/hour filters
  patterns    Surface best/worst times of day and week
  day         Show one day's readings (date, "today", "yesterday", "January 15")
  worst       Rank days by peak glucose
  chart       Terminal charts (heatmap, day, sparkline, week)

Environment:
  NIGHTSCOUT_URL   Nightscout endpoint (required); bare domain is fine
  CGM_DB_PATH      Local cache location (default ~/.cgm/cgm_data.db)
  CGM_LOG_LEVEL    debug, info, warn, error (default warn)

Run 'cgm <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(1)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "current":
		runCurrent()
	case "refresh":
		runRefresh()
	case "analyze":
		runAnalyze()
	case "query":
		runQuery()
	case "patterns":
		runPatterns()
	case "day":
		runDay()
	case "worst":
		runWorst()
	case "chart":
		runChart()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "cgm: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
