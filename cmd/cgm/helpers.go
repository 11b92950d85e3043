package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jwulff/cgm-go/internal/analysis"
	"github.com/jwulff/cgm-go/internal/config"
	"github.com/jwulff/cgm-go/internal/glucose"
	"github.com/jwulff/cgm-go/internal/ingest"
	"github.com/jwulff/cgm-go/internal/logging"
	"github.com/jwulff/cgm-go/internal/nightscout"
	"github.com/jwulff/cgm-go/internal/settings"
	"github.com/jwulff/cgm-go/internal/storage/sqlite"
)

// app wires the components every command needs. Construction exits the
// process on the one fatal error class: missing configuration.
type app struct {
	cfg      *config.Config
	log      *log.Logger
	client   *nightscout.Client
	store    *sqlite.Store
	provider *settings.Provider
	engine   *ingest.Engine
}

func newApp() *app {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		fmt.Fprintln(os.Stderr, "Set it to your Nightscout endpoint, e.g.:")
		fmt.Fprintln(os.Stderr, "  export NIGHTSCOUT_URL='https://your-site.example.com'")
		os.Exit(1)
	}

	logger := logging.New(cfg.LogLevel)
	client := nightscout.NewClient(cfg.NightscoutURL)

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			logger.Warn("could not create cache directory", "dir", dir, "err", err)
		}
	}
	store, err := sqlite.NewFileStore(cfg.DBPath)
	if err != nil {
		// Store trouble is a no-data condition, not a crash.
		printJSON(errorResult("Failed to open local cache: %v", err))
		os.Exit(0)
	}

	return &app{
		cfg:      cfg,
		log:      logger,
		client:   client,
		store:    store,
		provider: settings.NewProvider(client),
		engine:   ingest.NewEngine(client, store, logger),
	}
}

func (a *app) Close() {
	_ = a.store.Close()
}

// display snapshots the unit configuration for output conversion.
func (a *app) display(ctx context.Context) analysis.Display {
	return analysis.Display{
		UseMmol: a.provider.UseMmol(ctx),
		Unit:    a.provider.UnitLabel(ctx),
	}
}

// readingsForDays loads the non-zero readings of the trailing window,
// ascending by timestamp.
func (a *app) readingsForDays(ctx context.Context, days int) ([]glucose.Reading, error) {
	cutoffMs := time.Now().UTC().AddDate(0, 0, -days).UnixMilli()
	return a.store.QuerySince(ctx, cutoffMs)
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("{\"error\": %q}\n", err.Error())
		return
	}
	fmt.Println(string(out))
}

func errorResult(format string, args ...any) map[string]string {
	return map[string]string{"error": fmt.Sprintf(format, args...)}
}

// dateRange summarizes the span of an ordered reading set the way the
// analyze payload reports it.
type dateRange struct {
	From         string `json:"from"`
	To           string `json:"to"`
	DaysAnalyzed int    `json:"days_analyzed"`
}

func newDateRange(readings []glucose.Reading, days int) dateRange {
	datePart := func(r glucose.Reading) string {
		if len(r.DateString) >= 10 {
			return r.DateString[:10]
		}
		return "unknown"
	}
	return dateRange{
		From:         datePart(readings[0]),
		To:           datePart(readings[len(readings)-1]),
		DaysAnalyzed: days,
	}
}

// parseDateArg resolves a user-supplied date: ISO dates, "today",
// "yesterday", and month-name forms, case- and whitespace-tolerant.
func parseDateArg(arg string) (string, error) {
	s := strings.ToLower(strings.TrimSpace(arg))
	now := time.Now()

	switch s {
	case "today":
		return now.Format("2006-01-02"), nil
	case "yesterday":
		return now.AddDate(0, 0, -1).Format("2006-01-02"), nil
	}

	titled := titleWords(s)
	layouts := []struct {
		layout  string
		addYear bool
	}{
		{"2006-01-02", false},
		{"January 2, 2006", false},
		{"January 2 2006", false},
		{"Jan 2, 2006", false},
		{"Jan 2 2006", false},
		{"January 2", true},
		{"Jan 2", true},
	}
	for _, l := range layouts {
		t, err := time.Parse(l.layout, titled)
		if err != nil {
			continue
		}
		if l.addYear {
			t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		}
		return t.Format("2006-01-02"), nil
	}
	return "", fmt.Errorf("could not parse date: %q", arg)
}

func titleWords(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
