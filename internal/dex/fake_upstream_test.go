package dex

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/rshade/pokedex/internal/pokeapi"
)

const fakeSpeciesPrefix = "fake://species/"

// fakeUpstream is an in-memory Upstream that records every call.
type fakeUpstream struct {
	mu           sync.Mutex
	pokemon      map[string]*pokeapi.Pokemon
	species      map[int]*pokeapi.Species
	pokemonCalls []string
	speciesCalls []string
	pokemonErr   map[string]error
	speciesErr   map[int]error

	// When block is non-nil GetPokemon signals entered and waits on block.
	block   chan struct{}
	entered chan struct{}
}

func newFakeUpstream(entries ...*pokeapi.Pokemon) *fakeUpstream {
	f := &fakeUpstream{
		pokemon:    make(map[string]*pokeapi.Pokemon),
		species:    make(map[int]*pokeapi.Species),
		pokemonErr: make(map[string]error),
		speciesErr: make(map[int]error),
	}
	for _, p := range entries {
		f.add(p)
	}
	return f
}

func (f *fakeUpstream) add(p *pokeapi.Pokemon) {
	f.pokemon[strconv.Itoa(p.ID)] = p
	f.pokemon[p.Name] = p
	f.species[p.ID] = &pokeapi.Species{
		ID:   p.ID,
		Name: p.Name,
		FlavorTextEntries: []pokeapi.FlavorTextEntry{
			{FlavorText: "Texte", Language: pokeapi.NamedResource{Name: "fr"}},
			{FlavorText: "About\n" + p.Name + ".", Language: pokeapi.NamedResource{Name: "en"}},
		},
	}
}

func (f *fakeUpstream) GetPokemon(_ context.Context, idOrName string) (*pokeapi.Pokemon, error) {
	if f.block != nil {
		f.entered <- struct{}{}
		<-f.block
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pokemonCalls = append(f.pokemonCalls, idOrName)
	if err, ok := f.pokemonErr[idOrName]; ok {
		return nil, err
	}
	p, ok := f.pokemon[idOrName]
	if !ok {
		return nil, &pokeapi.StatusError{StatusCode: 404, URL: "fake://pokemon/" + idOrName}
	}
	return p, nil
}

func (f *fakeUpstream) GetSpecies(_ context.Context, speciesURL string) (*pokeapi.Species, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.speciesCalls = append(f.speciesCalls, speciesURL)

	id, err := strconv.Atoi(strings.TrimPrefix(speciesURL, fakeSpeciesPrefix))
	if err != nil {
		return nil, fmt.Errorf("%w: bad species url %q", pokeapi.ErrNetwork, speciesURL)
	}
	if err, ok := f.speciesErr[id]; ok {
		return nil, err
	}
	s, ok := f.species[id]
	if !ok {
		return nil, &pokeapi.StatusError{StatusCode: 404, URL: speciesURL}
	}
	return s, nil
}

func (f *fakeUpstream) SpeciesURL(id int) string {
	return fakeSpeciesPrefix + strconv.Itoa(id)
}

func (f *fakeUpstream) pokemonCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pokemonCalls)
}

func (f *fakeUpstream) speciesCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.speciesCalls)
}

func fakePokemon(id int, name string, types ...string) *pokeapi.Pokemon {
	p := &pokeapi.Pokemon{
		ID:   id,
		Name: name,
		Sprites: pokeapi.Sprites{
			FrontDefault: fmt.Sprintf("https://img.test/%d.png", id),
			FrontShiny:   fmt.Sprintf("https://img.test/shiny/%d.png", id),
		},
		Species: pokeapi.NamedResource{Name: name, URL: fakeSpeciesPrefix + strconv.Itoa(id)},
		Stats: []pokeapi.StatEntry{
			{BaseStat: 48, Stat: pokeapi.NamedResource{Name: "hp"}},
			{BaseStat: 48, Stat: pokeapi.NamedResource{Name: "attack"}},
			{BaseStat: 48, Stat: pokeapi.NamedResource{Name: "defense"}},
			{BaseStat: 48, Stat: pokeapi.NamedResource{Name: "speed"}},
		},
	}
	for i, t := range types {
		p.Types = append(p.Types, pokeapi.TypeSlot{Slot: i + 1, Type: pokeapi.NamedResource{Name: t}})
	}
	return p
}

func defaultFakeUpstream() *fakeUpstream {
	return newFakeUpstream(
		fakePokemon(1, "bulbasaur", "grass", "poison"),
		fakePokemon(25, "pikachu", "electric"),
		fakePokemon(132, "ditto", "normal"),
		fakePokemon(151, "mew", "psychic"),
		fakePokemon(152, "chikorita", "grass"),
	)
}
