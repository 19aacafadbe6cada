package dex

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/rshade/pokedex/internal/pokeapi"
)

func TestNewRecord(t *testing.T) {
	p := fakePokemon(1, "bulbasaur", "grass", "poison")
	s := &pokeapi.Species{
		ID: 1,
		FlavorTextEntries: []pokeapi.FlavorTextEntry{
			{FlavorText: "ふしぎなタネが", Language: pokeapi.NamedResource{Name: "ja"}},
			{FlavorText: "A strange seed was\nplanted on its\fback at birth.", Language: pokeapi.NamedResource{Name: "en"}},
			{FlavorText: "Second English entry.", Language: pokeapi.NamedResource{Name: "en"}},
		},
	}

	got := NewRecord(p, s, "https://cries.test/%d.ogg")

	want := &Record{
		ID:    1,
		Name:  "bulbasaur",
		Types: []string{"grass", "poison"},
		BaseStats: []Stat{
			{Name: "hp", Value: 48},
			{Name: "attack", Value: 48},
			{Name: "defense", Value: 48},
			{Name: "speed", Value: 48},
		},
		Sprites: Sprites{
			Normal: "https://img.test/1.png",
			Shiny:  "https://img.test/shiny/1.png",
		},
		Description: "A strange seed was planted on its back at birth.",
		CryURL:      "https://cries.test/1.ogg",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewRecord mismatch (-want +got):\n%s", diff)
	}
}

func TestRecord_Helpers(t *testing.T) {
	r := NewRecord(fakePokemon(7, "squirtle", "water"), nil, "")

	assert.Equal(t, "#007", r.Number())
	assert.Equal(t, "SQUIRTLE", r.DisplayName())
	assert.Equal(t, 192, r.BaseStatTotal())
	assert.Equal(t, NoDescription, r.Description)
	assert.Equal(t, CryURL(DefaultCryURLTemplate, 7), r.CryURL)

	hp, ok := r.Stat("hp")
	assert.True(t, ok)
	assert.Equal(t, 48, hp)
	_, ok = r.Stat("luck")
	assert.False(t, ok)

	assert.Equal(t, "#151", (&Record{ID: 151}).Number())
}

func TestSprites_For(t *testing.T) {
	both := Sprites{Normal: "n.png", Shiny: "s.png"}
	assert.Equal(t, "n.png", both.For(ModeNormal))
	assert.Equal(t, "s.png", both.For(ModeShiny))

	normalOnly := Sprites{Normal: "n.png"}
	assert.Equal(t, "n.png", normalOnly.For(ModeShiny))
}

func TestEnglishFlavorText(t *testing.T) {
	tests := []struct {
		name    string
		species *pokeapi.Species
		want    string
	}{
		{name: "nil species", want: NoDescription},
		{name: "no entries", species: &pokeapi.Species{ID: 1}, want: NoDescription},
		{
			name: "no english",
			species: &pokeapi.Species{ID: 150, FlavorTextEntries: []pokeapi.FlavorTextEntry{
				{FlavorText: "Il a été créé", Language: pokeapi.NamedResource{Name: "fr"}},
			}},
			want: NoDescription,
		},
		{
			name: "unparseable language ignored",
			species: &pokeapi.Species{ID: 2, FlavorTextEntries: []pokeapi.FlavorTextEntry{
				{FlavorText: "?", Language: pokeapi.NamedResource{Name: "not a tag!"}},
				{FlavorText: "Ivy.", Language: pokeapi.NamedResource{Name: "en"}},
			}},
			want: "Ivy.",
		},
		{
			name: "page break flattened",
			species: &pokeapi.Species{ID: 3, FlavorTextEntries: []pokeapi.FlavorTextEntry{
				{FlavorText: "Big\fflower.", Language: pokeapi.NamedResource{Name: "en"}},
			}},
			want: "Big flower.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnglishFlavorText(tt.species))
		})
	}
}
