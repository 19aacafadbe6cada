package tui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rshade/pokedex/internal/dex"
)

// Output formats accepted by RenderRecord.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// FormatTotal formats a stat total with English digit grouping.
func FormatTotal(total int) string {
	return message.NewPrinter(language.English).Sprintf("%d", total)
}

// RenderRecord writes r to w in format. Table output is styled when mode is
// OutputModeStyled or OutputModeInteractive and plain otherwise.
func RenderRecord(w io.Writer, r *dex.Record, format string, mode OutputMode) error {
	switch format {
	case FormatJSON:
		return RenderJSON(w, r)
	case FormatTable, "":
		if mode == OutputModePlain {
			return RenderPlain(w, r)
		}
		_, err := fmt.Fprintln(w, RenderRecordCard(r, dex.ModeNormal, nil))
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// RenderJSON writes r as indented JSON.
func RenderJSON(w io.Writer, r *dex.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

// RenderPlain writes r as unstyled text.
func RenderPlain(w io.Writer, r *dex.Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", r.Number(), r.DisplayName())
	fmt.Fprintf(&b, "Types:  %s\n", strings.Join(r.Types, ", "))
	if r.Sprites.Normal != "" {
		fmt.Fprintf(&b, "Sprite: %s\n", r.Sprites.Normal)
	}
	fmt.Fprintf(&b, "Cry:    %s\n", r.CryURL)
	for _, s := range r.BaseStats {
		fmt.Fprintf(&b, "  %-16s %3d\n", statLabel(s.Name), s.Value)
	}
	fmt.Fprintf(&b, "  %-16s %3s\n", "Total", FormatTotal(r.BaseStatTotal()))
	fmt.Fprintf(&b, "\n%s\n", r.Description)

	_, err := io.WriteString(w, b.String())
	return err
}
