// Package nightscout is an HTTP client for the two read-only Nightscout
// endpoints this tool consumes: the entries list and the server status.
package nightscout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const entriesSuffix = "/api/v1/entries.json"

// Timeouts per call shape: single-item and status fetches are quick,
// bulk history pages can be large.
const (
	shortTimeout = 10 * time.Second
	bulkTimeout  = 30 * time.Second
)

// Entry is one raw entry object from the entries endpoint. Only
// entries with Type == "sgv" are glucose observations.
type Entry struct {
	ID         string `json:"_id"`
	Type       string `json:"type"`
	SGV        int    `json:"sgv"`
	Date       int64  `json:"date"`
	DateString string `json:"dateString"`
	Trend      int    `json:"trend"`
	Direction  string `json:"direction"`
	Device     string `json:"device"`
}

// Status is the subset of the status endpoint we care about.
type Status struct {
	Settings Settings `json:"settings"`
}

// Settings carries the server's display unit and alert thresholds.
type Settings struct {
	Units      string           `json:"units"`
	Thresholds StatusThresholds `json:"thresholds"`
}

// StatusThresholds uses Nightscout's field names. Zero means the field
// was absent and the caller should fall back to its default.
type StatusThresholds struct {
	BGLow          int `json:"bgLow"`
	BGTargetBottom int `json:"bgTargetBottom"`
	BGTargetTop    int `json:"bgTargetTop"`
	BGHigh         int `json:"bgHigh"`
}

// Client fetches entries and status from a Nightscout server.
type Client struct {
	EntriesURL string
	StatusURL  string
	HTTPClient *http.Client
}

// NewClient creates a client from a raw NIGHTSCOUT_URL value. The value
// may be a bare domain or any partially-qualified entries path; it is
// normalized to the canonical entries.json URL.
func NewClient(rawURL string) *Client {
	base := NormalizeURL(rawURL)
	root := strings.TrimSuffix(base, entriesSuffix)
	return &Client{
		EntriesURL: base,
		StatusURL:  root + "/api/v1/status.json",
		HTTPClient: &http.Client{Timeout: bulkTimeout},
	}
}

// NormalizeURL completes a bare or partial Nightscout URL so it always
// ends in /api/v1/entries.json.
func NormalizeURL(raw string) string {
	u := strings.TrimRight(strings.TrimSpace(raw), "/")
	switch {
	case strings.HasSuffix(u, entriesSuffix):
		return u
	case strings.HasSuffix(u, "/api/v1/entries"):
		return u + ".json"
	case strings.HasSuffix(u, "/api/v1"):
		return u + "/entries.json"
	case strings.HasSuffix(u, "/api"):
		return u + "/v1/entries.json"
	default:
		return u + entriesSuffix
	}
}

// FetchEntries fetches up to count entries, newest first. When maxDateMs
// is positive, only entries with date <= maxDateMs are returned, which is
// the backward-pagination cursor.
func (c *Client) FetchEntries(ctx context.Context, count int, maxDateMs int64) ([]Entry, error) {
	q := url.Values{}
	q.Set("count", fmt.Sprintf("%d", count))
	if maxDateMs > 0 {
		q.Set("find[date][$lte]", fmt.Sprintf("%d", maxDateMs))
	}

	ctx, cancel := context.WithTimeout(ctx, bulkTimeout)
	defer cancel()

	var entries []Entry
	if err := c.getJSON(ctx, c.EntriesURL+"?"+q.Encode(), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// FetchLatest fetches the single most recent entry. A nil entry with a
// nil error means the server has no data.
func (c *Client) FetchLatest(ctx context.Context) (*Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()

	var entries []Entry
	if err := c.getJSON(ctx, c.EntriesURL+"?count=1", &entries); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// FetchStatus fetches the server settings.
func (c *Client) FetchStatus(ctx context.Context) (*Status, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()

	var status Status
	if err := c.getJSON(ctx, c.StatusURL, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
