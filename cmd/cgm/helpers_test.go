package main

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwulff/cgm-go/internal/glucose"
)

func TestParseDateArgISO(t *testing.T) {
	date, err := parseDateArg("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", date)
}

func TestParseDateArgToday(t *testing.T) {
	date, err := parseDateArg("  today  ")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format("2006-01-02"), date)
}

func TestParseDateArgYesterday(t *testing.T) {
	date, err := parseDateArg("yesterday")
	require.NoError(t, err)
	assert.Equal(t, time.Now().AddDate(0, 0, -1).Format("2006-01-02"), date)
}

func TestParseDateArgMonthName(t *testing.T) {
	date, err := parseDateArg("JaNuArY 15")
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d-01-15", time.Now().Year()), date)
}

func TestParseDateArgMonthNameWithYear(t *testing.T) {
	date, err := parseDateArg("january 15, 2023")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-15", date)
}

func TestParseDateArgInvalid(t *testing.T) {
	_, err := parseDateArg("not a date")
	assert.Error(t, err)
}

func TestHourWindowFromFlags(t *testing.T) {
	_, ok := hourWindowFromFlags(-1, -1)
	assert.False(t, ok)

	w, ok := hourWindowFromFlags(8, -1)
	require.True(t, ok)
	assert.Equal(t, 8, w.Start)
	assert.Equal(t, 23, w.End)

	w, ok = hourWindowFromFlags(-1, 6)
	require.True(t, ok)
	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 6, w.End)

	w, ok = hourWindowFromFlags(22, 6)
	require.True(t, ok)
	assert.Equal(t, 22, w.Start)
	assert.Equal(t, 6, w.End)
}

func TestNewDateRange(t *testing.T) {
	readings := []glucose.Reading{
		{DateString: "2024-01-10T08:00:00Z"},
		{DateString: "2024-01-15T08:00:00Z"},
	}

	dr := newDateRange(readings, 7)
	assert.Equal(t, "2024-01-10", dr.From)
	assert.Equal(t, "2024-01-15", dr.To)
	assert.Equal(t, 7, dr.DaysAnalyzed)
}

func TestNewDateRangeShortDateString(t *testing.T) {
	readings := []glucose.Reading{
		{DateString: ""},
		{DateString: "2024-01-15T08:00:00Z"},
	}

	dr := newDateRange(readings, 30)
	assert.Equal(t, "unknown", dr.From)
	assert.Equal(t, "2024-01-15", dr.To)
}
