// Package settings provides the process-lifetime cache of remote
// Nightscout settings (display unit, alert thresholds).
package settings

import (
	"context"
	"strings"

	"github.com/jwulff/cgm-go/internal/glucose"
	"github.com/jwulff/cgm-go/internal/nightscout"
)

// StatusFetcher is the single remote call the provider depends on.
type StatusFetcher interface {
	FetchStatus(ctx context.Context) (*nightscout.Status, error)
}

// Provider lazily fetches server settings once and caches them for the
// rest of the process. A fetch failure is non-fatal: every accessor
// falls back to its documented default and UsedDefaults reports that
// the fallback happened.
type Provider struct {
	fetcher StatusFetcher

	loaded       bool
	settings     nightscout.Settings
	usedDefaults bool
}

// NewProvider creates a provider backed by the given fetcher.
func NewProvider(fetcher StatusFetcher) *Provider {
	return &Provider{fetcher: fetcher}
}

func (p *Provider) load(ctx context.Context) {
	if p.loaded {
		return
	}
	p.loaded = true

	status, err := p.fetcher.FetchStatus(ctx)
	if err != nil || status == nil {
		p.usedDefaults = true
		return
	}
	p.settings = status.Settings
}

// UsedDefaults reports whether the settings fetch failed and the
// defaults are in effect.
func (p *Provider) UsedDefaults(ctx context.Context) bool {
	p.load(ctx)
	return p.usedDefaults
}

// UseMmol reports whether the server is configured for mmol/L display.
func (p *Provider) UseMmol(ctx context.Context) bool {
	p.load(ctx)
	return strings.HasPrefix(strings.ToLower(p.settings.Units), "mmol")
}

// UnitLabel returns the display unit label.
func (p *Provider) UnitLabel(ctx context.Context) string {
	if p.UseMmol(ctx) {
		return "mmol/L"
	}
	return "mg/dL"
}

// Thresholds returns the server thresholds with per-field defaults for
// anything the server left unset.
func (p *Provider) Thresholds(ctx context.Context) glucose.Thresholds {
	p.load(ctx)

	t := glucose.DefaultThresholds()
	remote := p.settings.Thresholds
	if remote.BGLow > 0 {
		t.UrgentLow = remote.BGLow
	}
	if remote.BGTargetBottom > 0 {
		t.LowTarget = remote.BGTargetBottom
	}
	if remote.BGTargetTop > 0 {
		t.HighTarget = remote.BGTargetTop
	}
	if remote.BGHigh > 0 {
		t.UrgentHigh = remote.BGHigh
	}
	return t
}

// Convert maps a raw mg/dL value to its display value: mmol/L rounded
// to one decimal when the server uses mmol, otherwise unchanged. All
// statistical math stays in raw mg/dL; conversion happens only at
// output boundaries.
func (p *Provider) Convert(ctx context.Context, mgdl float64) float64 {
	if p.UseMmol(ctx) {
		return glucose.MgdlToMmol(mgdl)
	}
	return mgdl
}
