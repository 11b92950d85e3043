package glucose

import (
	"testing"
)

func TestClassify(t *testing.T) {
	th := DefaultThresholds()

	tests := []struct {
		mgdl     int
		expected Band
	}{
		{40, BandVeryLow},
		{54, BandVeryLow},
		{55, BandLow},
		{69, BandLow},
		{70, BandInRange},
		{100, BandInRange},
		{180, BandInRange},
		{181, BandHigh},
		{250, BandHigh},
		{251, BandVeryHigh},
		{400, BandVeryHigh},
	}

	for _, tt := range tests {
		result := th.Classify(tt.mgdl)
		if result != tt.expected {
			t.Errorf("Classify(%d) = %s, want %s", tt.mgdl, result, tt.expected)
		}
	}
}

func TestMgdlToMmol(t *testing.T) {
	tests := []struct {
		mgdl     float64
		expected float64
	}{
		{100, 5.5},
		{180, 10.0},
		{70, 3.9},
		{250, 13.9},
		{90, 5.0},
	}

	for _, tt := range tests {
		result := MgdlToMmol(tt.mgdl)
		if result != tt.expected {
			t.Errorf("MgdlToMmol(%.0f) = %.1f, want %.1f", tt.mgdl, result, tt.expected)
		}
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		name       string
		dateString string
		ok         bool
		hour       int
	}{
		{"utc with Z", "2024-01-15T08:30:00Z", true, 8},
		{"offset kept", "2024-01-15T23:05:00-08:00", true, 23},
		{"fractional seconds", "2024-01-15T14:00:00.123Z", true, 14},
		{"surrounding whitespace", "  2024-01-15T06:00:00Z  ", true, 6},
		{"malformed", "not-a-date", false, 0},
		{"empty", "", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Reading{DateString: tt.dateString}
			parsed, ok := r.Time()
			if ok != tt.ok {
				t.Fatalf("Time() ok = %v, want %v", ok, tt.ok)
			}
			if ok && parsed.Hour() != tt.hour {
				t.Errorf("Time().Hour() = %d, want %d", parsed.Hour(), tt.hour)
			}
		})
	}
}

func TestBandLabels(t *testing.T) {
	if BandInRange.String() != "in_range" {
		t.Errorf("BandInRange.String() = %q", BandInRange.String())
	}
	if BandVeryLow.StatusLabel() != "VERY LOW - urgent" {
		t.Errorf("BandVeryLow.StatusLabel() = %q", BandVeryLow.StatusLabel())
	}
	if BandVeryHigh.StatusLabel() != "VERY HIGH" {
		t.Errorf("BandVeryHigh.StatusLabel() = %q", BandVeryHigh.StatusLabel())
	}
}
