package dex

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/rshade/pokedex/internal/pokeapi"
)

// DefaultMaxID is the upper bound of the original 151 creatures.
const DefaultMaxID = 151

// DefaultCryURLTemplate locates a cry recording; %d is the creature id.
const DefaultCryURLTemplate = "https://raw.githubusercontent.com/PokeAPI/cries/main/cries/pokemon/latest/%d.ogg"

// NoDescription is shown when the species has no English flavor text.
const NoDescription = "No data available."

// Stat is a named base stat.
type Stat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// Sprites holds the normal and shiny sprite URLs.
type Sprites struct {
	Normal string `json:"normal"`
	Shiny  string `json:"shiny"`
}

// For returns the sprite for mode. Shiny falls back to the normal sprite.
func (s Sprites) For(mode DisplayMode) string {
	if mode == ModeShiny && s.Shiny != "" {
		return s.Shiny
	}
	return s.Normal
}

// Record is a fully resolved creature. Records are never mutated after
// NewRecord returns.
type Record struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Types       []string `json:"types"`
	BaseStats   []Stat   `json:"base_stats"`
	Sprites     Sprites  `json:"sprites"`
	Description string   `json:"description"`
	CryURL      string   `json:"cry_url"`
}

// NewRecord assembles a Record from the primary and species payloads.
func NewRecord(p *pokeapi.Pokemon, s *pokeapi.Species, cryTemplate string) *Record {
	if cryTemplate == "" {
		cryTemplate = DefaultCryURLTemplate
	}

	r := &Record{
		ID:   p.ID,
		Name: p.Name,
		Sprites: Sprites{
			Normal: p.Sprites.FrontDefault,
			Shiny:  p.Sprites.FrontShiny,
		},
		Description: EnglishFlavorText(s),
		CryURL:      CryURL(cryTemplate, p.ID),
	}
	for _, t := range p.Types {
		r.Types = append(r.Types, t.Type.Name)
	}
	for _, st := range p.Stats {
		r.BaseStats = append(r.BaseStats, Stat{Name: st.Stat.Name, Value: st.BaseStat})
	}
	return r
}

// Number formats the id the way the device shows it, e.g. "#025".
func (r *Record) Number() string {
	return fmt.Sprintf("#%03d", r.ID)
}

// DisplayName is the upper-cased name.
func (r *Record) DisplayName() string {
	return strings.ToUpper(r.Name)
}

// Stat returns the base stat called name.
func (r *Record) Stat(name string) (int, bool) {
	for _, s := range r.BaseStats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// BaseStatTotal sums all base stats.
func (r *Record) BaseStatTotal() int {
	total := 0
	for _, s := range r.BaseStats {
		total += s.Value
	}
	return total
}

// CryURL substitutes id into template.
func CryURL(template string, id int) string {
	return fmt.Sprintf(template, id)
}

//nolint:gochecknoglobals // Derived once from a language constant.
var englishBase, _ = language.English.Base()

// isEnglish reports whether a PokéAPI language name denotes English.
func isEnglish(name string) bool {
	tag, err := language.Parse(name)
	if err != nil {
		return false
	}
	base, confidence := tag.Base()
	return confidence != language.No && base == englishBase
}

// EnglishFlavorText returns the first English flavor text with line and
// page breaks flattened to spaces, or NoDescription.
func EnglishFlavorText(s *pokeapi.Species) string {
	if s == nil {
		return NoDescription
	}
	for _, entry := range s.FlavorTextEntries {
		if isEnglish(entry.Language.Name) {
			return strings.NewReplacer("\n", " ", "\f", " ").Replace(entry.FlavorText)
		}
	}
	return NoDescription
}
