package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how a command presents records.
type OutputMode int

const (
	// OutputModePlain writes unstyled text.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes lipgloss-styled text without taking over the terminal.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen viewer.
	OutputModeInteractive
)

// String implements fmt.Stringer.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks an OutputMode for stdout. plain and noColor (or
// NO_COLOR, or TERM=dumb) force plain output; forceColor yields styled
// output even when stdout is not a terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	return detectOutputMode(term.IsTerminal(int(os.Stdout.Fd())), forceColor, noColor, plain)
}

func detectOutputMode(isTTY, forceColor, noColor, plain bool) OutputMode {
	if plain || noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	if isTTY {
		return OutputModeInteractive
	}
	if forceColor {
		return OutputModeStyled
	}
	return OutputModePlain
}
