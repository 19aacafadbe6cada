package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/pokedex/internal/dex"
)

// Glitch screen content.
const (
	anomalyTitle = "#??? MISSINGNO."
	anomalyBody  = "▓▒░ ERR0R ░▒▓  T̴Y̷P̸E̵:  B I R D / N O R M A L"
	anomalyScrap = "▚▞▚▞▚▞ 0x00 0x00 0xFF ▞▚▞▚▞▚"
)

// View renders the current screen (Bubble Tea interface).
func (m DexModel) View() string {
	var body string
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		body = m.renderLoadingView()
	case ViewStateDisplay:
		body = m.renderDisplayView()
	case ViewStateError:
		body = m.renderErrorView()
	case ViewStateAnomaly:
		body = m.renderAnomalyView()
	default:
		body = ""
	}

	sections := []string{body}
	if m.searching {
		sections = append(sections,
			LabelStyle.Render("Search: ")+m.search.View(),
			m.help.View(m.searchKey))
	} else {
		sections = append(sections, m.help.View(m.keys))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m DexModel) renderLoadingView() string {
	return BoxStyle.Render(fmt.Sprintf("%s Loading %s...", m.spinner.View(), m.target))
}

func (m DexModel) renderErrorView() string {
	var content strings.Builder
	content.WriteString(CriticalStyle.Render("ERROR"))
	content.WriteString("\n")
	fmt.Fprintf(&content, "Could not load %s.\n", m.target)
	if m.err != nil {
		content.WriteString(SubtleStyle.Render(m.err.Error()))
		content.WriteString("\n")
	}
	content.WriteString(LabelStyle.Render(fmt.Sprintf("Returning to #%03d...", m.session.CurrentID)))
	return BoxStyle.Render(content.String())
}

func (m DexModel) renderAnomalyView() string {
	lines := []string{
		GlitchStyle.Render(anomalyTitle),
		GlitchStyle.Render(anomalyBody),
		GlitchStyle.Render(anomalyScrap),
	}
	return BoxStyle.BorderForeground(lipgloss.Color("#B967FF")).
		Render(strings.Join(lines, "\n"))
}

func (m DexModel) renderDisplayView() string {
	if m.record == nil {
		return ""
	}
	card := RenderRecordCard(m.record, m.session.Mode, m.effects)

	var overlay []string
	for _, kind := range []dex.EffectKind{
		dex.EffectTransform, dex.EffectSplash, dex.EffectTaunt,
		dex.EffectZzz, dex.EffectCongrats, dex.EffectCry,
	} {
		e, ok := m.effects[kind]
		if !ok {
			continue
		}
		if line := renderEffect(e, m.record); line != "" {
			overlay = append(overlay, line)
		}
	}
	if len(overlay) == 0 {
		return card
	}
	return lipgloss.JoinVertical(lipgloss.Left, card, strings.Join(overlay, "\n"))
}

func renderEffect(e dex.Effect, r *dex.Record) string {
	switch e.Kind {
	case dex.EffectTransform:
		return InfoStyle.Render("✦ transforming... ✦")
	case dex.EffectSplash:
		return InfoStyle.Render("~ splash ~ splash ~")
	case dex.EffectTaunt, dex.EffectZzz:
		return SubtleStyle.Render(e.Message)
	case dex.EffectCongrats:
		return WarningStyle.Render(e.Message)
	case dex.EffectCry:
		return InfoStyle.Render("♪ Playing cry... " + r.CryURL)
	case dex.EffectFlash, dex.EffectSleep:
		return ""
	default:
		return ""
	}
}

// RenderRecordCard renders a record as a bordered card. effects may be nil.
func RenderRecordCard(r *dex.Record, mode dex.DisplayMode, effects map[dex.EffectKind]dex.Effect) string {
	var content strings.Builder

	header := HeaderStyle.Render(r.Number() + " " + r.DisplayName())
	if _, ok := effects[dex.EffectFlash]; ok {
		header = FlashStyle.Render("⚡ " + r.Number() + " " + r.DisplayName() + " ⚡")
	}
	content.WriteString(header)
	if mode == dex.ModeShiny {
		content.WriteString(" ")
		content.WriteString(ShinyStyle.Render("★ SHINY"))
	}
	content.WriteString("\n\n")

	badges := make([]string, 0, len(r.Types))
	for _, t := range r.Types {
		badges = append(badges, TypeBadge(t))
	}
	content.WriteString(strings.Join(badges, " "))
	content.WriteString("\n\n")

	sprite := r.Sprites.For(mode)
	if sprite == "" {
		sprite = "-"
	}
	spriteLine := LabelStyle.Render("Sprite: ") + sprite
	if _, ok := effects[dex.EffectSleep]; ok {
		spriteLine = SubtleStyle.Render("Sprite: " + sprite + " (asleep)")
	}
	content.WriteString(spriteLine)
	content.WriteString("\n\n")

	for _, s := range r.BaseStats {
		fmt.Fprintf(&content, "%s %s %s\n",
			LabelStyle.Render(fmt.Sprintf("%-16s", statLabel(s.Name))),
			ValueStyle.Render(fmt.Sprintf("%3d", s.Value)),
			StatBar(s.Value))
	}
	fmt.Fprintf(&content, "%s %s\n\n",
		LabelStyle.Render(fmt.Sprintf("%-16s", "Total")),
		ValueStyle.Render(FormatTotal(r.BaseStatTotal())))

	content.WriteString(lipgloss.NewStyle().Width(cardTextWidth).Render(r.Description))

	return BoxStyle.Render(content.String())
}

const cardTextWidth = 48

// statLabel turns an API stat name into a display label.
func statLabel(name string) string {
	switch name {
	case "hp":
		return "HP"
	case "special-attack":
		return "Sp. Atk"
	case "special-defense":
		return "Sp. Def"
	default:
		if name == "" {
			return name
		}
		return strings.ToUpper(name[:1]) + name[1:]
	}
}
