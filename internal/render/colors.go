package render

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jwulff/cgm-go/internal/glucose"
)

// Band colors follow the Dexcom scheme: red below range, green in
// range, yellow/orange above.
var (
	styleVeryLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleLow      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleInRange  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleHigh     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	styleVeryHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	styleAxis     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func bandStyle(b glucose.Band) lipgloss.Style {
	switch b {
	case glucose.BandVeryLow:
		return styleVeryLow
	case glucose.BandLow:
		return styleLow
	case glucose.BandInRange:
		return styleInRange
	case glucose.BandHigh:
		return styleHigh
	default:
		return styleVeryHigh
	}
}

// paint colors s by the band of a raw mg/dL value when color output is
// enabled, and passes it through unchanged otherwise.
func paint(s string, mgdl int, t glucose.Thresholds, color bool) string {
	if !color {
		return s
	}
	return bandStyle(t.Classify(mgdl)).Render(s)
}

func paintAxis(s string, color bool) string {
	if !color {
		return s
	}
	return styleAxis.Render(s)
}
