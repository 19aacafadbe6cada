package dex

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/rshade/pokedex/internal/pokeapi"
)

// speciesKeyPrefix namespaces species payloads away from primary payloads.
const speciesKeyPrefix = "species-"

// NormalizeKey turns an identifier into a cache key.
func NormalizeKey(identifier string) string {
	return strings.ToLower(strings.TrimSpace(identifier))
}

// SpeciesKey is the cache key of the species payload for id.
func SpeciesKey(id int) string {
	return speciesKeyPrefix + strconv.Itoa(id)
}

// Cache holds fetched payloads for the lifetime of a session. Entries are
// never evicted. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	pokemon map[string]*pokeapi.Pokemon
	species map[string]*pokeapi.Species
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{
		pokemon: make(map[string]*pokeapi.Pokemon),
		species: make(map[string]*pokeapi.Species),
	}
}

// Pokemon returns the primary payload cached under key.
func (c *Cache) Pokemon(key string) (*pokeapi.Pokemon, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.pokemon[NormalizeKey(key)]
	return p, ok
}

// Species returns the species payload cached for id.
func (c *Cache) Species(id int) (*pokeapi.Species, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.species[SpeciesKey(id)]
	return s, ok
}

// Store records a fully fetched pair in one step: the primary payload under
// the lookup key, its canonical id and its canonical name, and the species
// payload under its own key.
func (c *Cache) Store(lookupKey string, p *pokeapi.Pokemon, s *pokeapi.Species) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, key := range []string{lookupKey, strconv.Itoa(p.ID), p.Name} {
		if k := NormalizeKey(key); k != "" {
			c.pokemon[k] = p
		}
	}
	if s != nil {
		c.species[SpeciesKey(p.ID)] = s
	}
}

// Keys returns every cache key, sorted.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.pokemon)+len(c.species))
	for k := range c.pokemon {
		keys = append(keys, k)
	}
	for k := range c.species {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of cache keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pokemon) + len(c.species)
}
