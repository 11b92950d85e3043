package nightscout

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"bare domain", "https://h.com"},
		{"trailing slash", "https://h.com/"},
		{"partial api", "https://h.com/api"},
		{"partial api v1", "https://h.com/api/v1"},
		{"entries without extension", "https://h.com/api/v1/entries"},
		{"already complete", "https://h.com/api/v1/entries.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "https://h.com/api/v1/entries.json", NormalizeURL(tt.input))
		})
	}
}

func TestNewClientDerivesStatusURL(t *testing.T) {
	c := NewClient("https://h.com")
	assert.Equal(t, "https://h.com/api/v1/entries.json", c.EntriesURL)
	assert.Equal(t, "https://h.com/api/v1/status.json", c.StatusURL)
}

func TestFetchEntries(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[
			{"_id":"a1","type":"sgv","sgv":120,"date":1700000000000,"dateString":"2023-11-14T22:13:20Z","direction":"Flat","device":"g6"},
			{"_id":"a2","type":"cal","sgv":0,"date":1699999700000,"dateString":"2023-11-14T22:08:20Z"}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	entries, err := c.FetchEntries(context.Background(), 100, 1700000000000)
	require.NoError(t, err)

	require.Len(t, entries, 2)
	assert.Equal(t, "a1", entries[0].ID)
	assert.Equal(t, "sgv", entries[0].Type)
	assert.Equal(t, 120, entries[0].SGV)
	assert.Equal(t, int64(1700000000000), entries[0].Date)
	assert.Contains(t, gotQuery, "count=100")
	assert.Contains(t, gotQuery, "find%5Bdate%5D%5B%24lte%5D=1700000000000")
}

func TestFetchEntriesNoCursor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("find[date][$lte]"))
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	entries, err := c.FetchEntries(context.Background(), 1000, 0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFetchLatest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"_id":"a1","type":"sgv","sgv":95,"date":1700000000000,"dateString":"2023-11-14T22:13:20Z","direction":"FortyFiveUp"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	entry, err := c.FetchLatest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 95, entry.SGV)
	assert.Equal(t, "FortyFiveUp", entry.Direction)
}

func TestFetchLatestEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	entry, err := c.FetchLatest(context.Background())
	require.NoError(t, err)
	assert.Nil(t, entry)
}

func TestFetchLatestMalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchLatest(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse")
}

func TestFetchStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/status.json", r.URL.Path)
		w.Write([]byte(`{"settings":{"units":"mmol","thresholds":{"bgLow":60,"bgTargetBottom":80,"bgTargetTop":170,"bgHigh":260}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	status, err := c.FetchStatus(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "mmol", status.Settings.Units)
	assert.Equal(t, 60, status.Settings.Thresholds.BGLow)
	assert.Equal(t, 260, status.Settings.Thresholds.BGHigh)
}

func TestFetchStatusHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.FetchStatus(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
