package pokeapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPokemonValidate(t *testing.T) {
	valid := Pokemon{
		ID:    25,
		Name:  "pikachu",
		Types: []TypeSlot{{Slot: 1, Type: NamedResource{Name: "electric"}}},
		Stats: []StatEntry{{BaseStat: 35, Stat: NamedResource{Name: "hp"}}},
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(p *Pokemon)
	}{
		{"zero id", func(p *Pokemon) { p.ID = 0 }},
		{"empty name", func(p *Pokemon) { p.Name = "" }},
		{"no types", func(p *Pokemon) { p.Types = nil }},
		{"unnamed type", func(p *Pokemon) { p.Types[0].Type.Name = "" }},
		{"unnamed stat", func(p *Pokemon) { p.Stats[0].Stat.Name = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			p.Types = append([]TypeSlot(nil), valid.Types...)
			p.Stats = append([]StatEntry(nil), valid.Stats...)
			tt.mutate(&p)
			assert.ErrorIs(t, p.Validate(), errInvalidPayload)
		})
	}

	var nilPokemon *Pokemon
	assert.Error(t, nilPokemon.Validate())
}

func TestSpeciesValidate(t *testing.T) {
	assert.NoError(t, (&Species{ID: 1}).Validate())
	assert.Error(t, (&Species{}).Validate())

	var nilSpecies *Species
	assert.Error(t, nilSpecies.Validate())
}
