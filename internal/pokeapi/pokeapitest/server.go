// Package pokeapitest serves a small in-memory PokéAPI for tests.
package pokeapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/rshade/pokedex/internal/pokeapi"
)

// Creature is a fixture entry.
type Creature struct {
	ID    int
	Name  string
	Types []string
	// Flavor maps language name to flavor text.
	Flavor map[string]string
}

// DefaultCreatures covers the ids the viewer treats specially plus an id
// beyond the original 151.
func DefaultCreatures() []Creature {
	return []Creature{
		{ID: 1, Name: "bulbasaur", Types: []string{"grass", "poison"}, Flavor: map[string]string{
			"ja": "うまれたときから", "en": "A strange seed was\nplanted on its\fback at birth.",
		}},
		{ID: 4, Name: "charmander", Types: []string{"fire"}, Flavor: map[string]string{"en": "Obviously prefers hot places."}},
		{ID: 25, Name: "pikachu", Types: []string{"electric"}, Flavor: map[string]string{"en": "When several of these gather, their electricity could build."}},
		{ID: 129, Name: "magikarp", Types: []string{"water"}, Flavor: map[string]string{"en": "In the distant past, it was somewhat stronger."}},
		{ID: 132, Name: "ditto", Types: []string{"normal"}, Flavor: map[string]string{"en": "Capable of copying an enemy's genetic code."}},
		{ID: 143, Name: "snorlax", Types: []string{"normal"}, Flavor: map[string]string{"en": "Very lazy. Just eats and sleeps."}},
		{ID: 150, Name: "mewtwo", Types: []string{"psychic"}, Flavor: map[string]string{"fr": "Créé par un scientifique."}},
		{ID: 151, Name: "mew", Types: []string{"psychic"}, Flavor: map[string]string{"en": "So rare that it is still said to be a mirage."}},
		{ID: 152, Name: "chikorita", Types: []string{"grass"}, Flavor: map[string]string{"en": "A sweet aroma gently wafts from the leaf."}},
	}
}

// Server is a fake PokéAPI backed by httptest.
type Server struct {
	*httptest.Server

	mu            sync.Mutex
	byKey         map[string]Creature
	pokemonHits   map[string]int
	speciesHits   map[int]int
	failPokemon   map[string]int
	failSpecies   map[int]int
	brokenPayload map[string]bool
}

// NewServer starts a fake PokéAPI serving creatures and closes it on test cleanup.
func NewServer(t testing.TB, creatures ...Creature) *Server {
	t.Helper()
	if len(creatures) == 0 {
		creatures = DefaultCreatures()
	}
	s := &Server{
		byKey:         make(map[string]Creature),
		pokemonHits:   make(map[string]int),
		speciesHits:   make(map[int]int),
		failPokemon:   make(map[string]int),
		failSpecies:   make(map[int]int),
		brokenPayload: make(map[string]bool),
	}
	for _, c := range creatures {
		s.byKey[strconv.Itoa(c.ID)] = c
		s.byKey[c.Name] = c
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/pokemon/", s.handlePokemon)
	mux.HandleFunc("/pokemon-species/", s.handleSpecies)
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// FailPokemon makes requests for key answer with status.
func (s *Server) FailPokemon(key string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPokemon[key] = status
}

// FailSpecies makes species requests for id answer with status.
func (s *Server) FailSpecies(id int, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSpecies[id] = status
}

// BreakPokemon makes requests for key return a body of the wrong shape.
func (s *Server) BreakPokemon(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.brokenPayload[key] = true
}

// PokemonHits returns how many /pokemon requests were made for key.
func (s *Server) PokemonHits(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pokemonHits[key]
}

// TotalPokemonHits returns the number of /pokemon requests served.
func (s *Server) TotalPokemonHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.pokemonHits {
		total += n
	}
	return total
}

// SpeciesHits returns how many species requests were made for id.
func (s *Server) SpeciesHits(id int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.speciesHits[id]
}

func (s *Server) handlePokemon(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/pokemon/")

	s.mu.Lock()
	s.pokemonHits[key]++
	status, failing := s.failPokemon[key]
	broken := s.brokenPayload[key]
	c, ok := s.byKey[key]
	s.mu.Unlock()

	switch {
	case failing:
		w.WriteHeader(status)
		return
	case !ok:
		http.NotFound(w, r)
		return
	case broken:
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprint(w, `{"id":"not-a-number"}`)
		return
	}

	payload := pokeapi.Pokemon{
		ID:   c.ID,
		Name: c.Name,
		Sprites: pokeapi.Sprites{
			FrontDefault: fmt.Sprintf("https://sprites.example/%d.png", c.ID),
			FrontShiny:   fmt.Sprintf("https://sprites.example/shiny/%d.png", c.ID),
		},
		Species: pokeapi.NamedResource{Name: c.Name, URL: s.URL + "/pokemon-species/" + strconv.Itoa(c.ID)},
	}
	for i, typ := range c.Types {
		payload.Types = append(payload.Types, pokeapi.TypeSlot{Slot: i + 1, Type: pokeapi.NamedResource{Name: typ}})
	}
	for i, name := range []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"} {
		payload.Stats = append(payload.Stats, pokeapi.StatEntry{
			BaseStat: 40 + c.ID%50 + i*5,
			Stat:     pokeapi.NamedResource{Name: name},
		})
	}
	writeJSON(w, payload)
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/pokemon-species/"))
	if err != nil {
		http.NotFound(w, r)
		return
	}

	s.mu.Lock()
	s.speciesHits[id]++
	status, failing := s.failSpecies[id]
	c, ok := s.byKey[strconv.Itoa(id)]
	s.mu.Unlock()

	if failing {
		w.WriteHeader(status)
		return
	}
	if !ok {
		http.NotFound(w, r)
		return
	}

	payload := pokeapi.Species{ID: c.ID, Name: c.Name}
	// Non-English entries first so callers must search for English.
	for _, lang := range []string{"ja", "fr", "de", "en"} {
		if text, has := c.Flavor[lang]; has {
			payload.FlavorTextEntries = append(payload.FlavorTextEntries, pokeapi.FlavorTextEntry{
				FlavorText: text,
				Language:   pokeapi.NamedResource{Name: lang},
			})
		}
	}
	writeJSON(w, payload)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
