package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette.
const (
	ColorDexRed  = lipgloss.Color("#DC0A2D")
	ColorScreen  = lipgloss.Color("#98CB98")
	ColorText    = lipgloss.Color("#F2F2F2")
	ColorSubtle  = lipgloss.Color("#8A8A8A")
	ColorWarning = lipgloss.Color("#FFCB05")
	ColorError   = lipgloss.Color("#FF5555")
	ColorShiny   = lipgloss.Color("#E6C200")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values shared across views.
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorDexRed).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle)

	ValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	SubtleStyle = lipgloss.NewStyle().
			Foreground(ColorSubtle).
			Italic(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorScreen)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)

	CriticalStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	ShinyStyle = lipgloss.NewStyle().
			Foreground(ColorShiny).
			Bold(true)

	FlashStyle = lipgloss.NewStyle().
			Reverse(true).
			Foreground(ColorWarning)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorDexRed).
			Padding(0, 1)

	GlitchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#B967FF")).
			Background(lipgloss.Color("#1B1B1B")).
			Bold(true)
)

// typeColors maps element types to their badge colors.
//
//nolint:gochecknoglobals // Fixed lookup table.
var typeColors = map[string]lipgloss.Color{
	"normal":   "#A8A77A",
	"fire":     "#EE8130",
	"water":    "#6390F0",
	"electric": "#F7D02C",
	"grass":    "#7AC74C",
	"ice":      "#96D9D6",
	"fighting": "#C22E28",
	"poison":   "#A33EA1",
	"ground":   "#E2BF65",
	"flying":   "#A98FF3",
	"psychic":  "#F95587",
	"bug":      "#A6B91A",
	"rock":     "#B6A136",
	"ghost":    "#735797",
	"dragon":   "#6F35FC",
	"dark":     "#705746",
	"steel":    "#B7B7CE",
	"fairy":    "#D685AD",
}

// TypeBadge renders an element type as a colored badge.
func TypeBadge(typeName string) string {
	color, ok := typeColors[typeName]
	if !ok {
		color = ColorSubtle
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(color).
		Padding(0, 1).
		Render(strings.ToUpper(typeName))
}

// Stat bar geometry. Bars are scaled against statBarScale and clamped.
const (
	statBarWidth = 20
	statBarScale = 150
)

// StatBar renders value as a bar of statBarWidth cells.
func StatBar(value int) string {
	filled := value * statBarWidth / statBarScale
	filled = max(0, min(filled, statBarWidth))

	color := ColorDexRed
	switch {
	case value >= 100: //nolint:mnd // Strong stat threshold.
		color = "#7AC74C"
	case value >= 60: //nolint:mnd // Average stat threshold.
		color = ColorWarning
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		LabelStyle.Render(strings.Repeat("░", statBarWidth-filled))
}
