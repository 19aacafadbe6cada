package pokeapi

import (
	"errors"
	"fmt"
)

// NamedResource is PokéAPI's {name, url} reference.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// TypeSlot is one entry of Pokemon.Types.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// StatEntry is one entry of Pokemon.Stats.
type StatEntry struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// Sprites holds the sprite URLs the viewer uses. Either may be empty.
type Sprites struct {
	FrontDefault string `json:"front_default"`
	FrontShiny   string `json:"front_shiny"`
}

// Pokemon is the payload of GET /pokemon/{idOrName}.
type Pokemon struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Types   []TypeSlot    `json:"types"`
	Stats   []StatEntry   `json:"stats"`
	Sprites Sprites       `json:"sprites"`
	Species NamedResource `json:"species"`
}

// FlavorTextEntry is one localized description.
type FlavorTextEntry struct {
	FlavorText string        `json:"flavor_text"`
	Language   NamedResource `json:"language"`
	Version    NamedResource `json:"version"`
}

// Species is the payload of GET /pokemon-species/{id}.
type Species struct {
	ID                int               `json:"id"`
	Name              string            `json:"name"`
	FlavorTextEntries []FlavorTextEntry `json:"flavor_text_entries"`
}

// errInvalidPayload marks a decoded payload missing required fields.
var errInvalidPayload = errors.New("invalid payload")

// Validate checks the fields the viewer relies on.
func (p *Pokemon) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil pokemon", errInvalidPayload)
	}
	if p.ID <= 0 {
		return fmt.Errorf("%w: pokemon id must be positive, got %d", errInvalidPayload, p.ID)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: pokemon %d has no name", errInvalidPayload, p.ID)
	}
	if len(p.Types) == 0 {
		return fmt.Errorf("%w: pokemon %d has no types", errInvalidPayload, p.ID)
	}
	for i, t := range p.Types {
		if t.Type.Name == "" {
			return fmt.Errorf("%w: pokemon %d type slot %d has no name", errInvalidPayload, p.ID, i)
		}
	}
	for i, s := range p.Stats {
		if s.Stat.Name == "" {
			return fmt.Errorf("%w: pokemon %d stat %d has no name", errInvalidPayload, p.ID, i)
		}
	}
	return nil
}

// Validate checks the fields the viewer relies on. Missing flavor text is
// allowed; the viewer falls back to a default description.
func (s *Species) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil species", errInvalidPayload)
	}
	if s.ID <= 0 {
		return fmt.Errorf("%w: species id must be positive, got %d", errInvalidPayload, s.ID)
	}
	return nil
}
