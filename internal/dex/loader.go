package dex

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/semaphore"

	"github.com/rshade/pokedex/internal/logging"
	"github.com/rshade/pokedex/internal/pokeapi"
)

// Upstream is the subset of the API client the Loader needs.
type Upstream interface {
	GetPokemon(ctx context.Context, idOrName string) (*pokeapi.Pokemon, error)
	GetSpecies(ctx context.Context, speciesURL string) (*pokeapi.Species, error)
	SpeciesURL(id int) string
}

// LoaderOptions configures a Loader.
type LoaderOptions struct {
	// MaxID is the highest id a resolved record may have.
	MaxID int
	// CryURLTemplate formats Record.CryURL; %d is replaced with the id.
	CryURLTemplate string
	// Metrics is optional.
	Metrics *Metrics
}

// Loader resolves identifiers into Records through a session cache.
type Loader struct {
	upstream    Upstream
	cache       *Cache
	gate        *semaphore.Weighted
	maxID       int
	cryTemplate string
	metrics     *Metrics
}

// NewLoader creates a Loader with an empty cache.
func NewLoader(upstream Upstream, opts LoaderOptions) *Loader {
	if opts.MaxID < 1 {
		opts.MaxID = DefaultMaxID
	}
	if opts.CryURLTemplate == "" {
		opts.CryURLTemplate = DefaultCryURLTemplate
	}
	return &Loader{
		upstream:    upstream,
		cache:       NewCache(),
		gate:        semaphore.NewWeighted(1),
		maxID:       opts.MaxID,
		cryTemplate: opts.CryURLTemplate,
		metrics:     opts.Metrics,
	}
}

// Cache exposes the loader's cache for inspection.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// MaxID returns the configured upper id bound.
func (l *Loader) MaxID() int {
	return l.maxID
}

// ResolveID resolves a numeric id.
func (l *Loader) ResolveID(ctx context.Context, id int) (*Record, error) {
	return l.Resolve(ctx, strconv.Itoa(id))
}

// Resolve returns the record for an id or name.
//
// If another resolution is in flight the call returns ErrBusy without
// touching the cache or the network. Cache writes happen only after both the
// primary and species payloads have been fetched and validated, so a failed
// resolution leaves the cache exactly as it was.
func (l *Loader) Resolve(ctx context.Context, identifier string) (*Record, error) {
	if !l.gate.TryAcquire(1) {
		l.metrics.resolveRejected()
		return nil, ErrBusy
	}
	defer l.gate.Release(1)

	log := logging.FromContext(ctx)
	key := NormalizeKey(identifier)
	if key == "" {
		return nil, fmt.Errorf("%w: empty identifier", ErrNotFound)
	}

	pokemon, pokemonHit := l.cache.Pokemon(key)
	l.metrics.cacheLookup(kindPokemon, pokemonHit)
	if !pokemonHit {
		fetched, err := l.upstream.GetPokemon(ctx, key)
		l.metrics.upstreamRequest(kindPokemon, err)
		if err != nil {
			return nil, fmt.Errorf("resolving %q: %w", key, err)
		}
		pokemon = fetched
	}

	if pokemon.ID < 1 || pokemon.ID > l.maxID {
		return nil, fmt.Errorf("%w: %s has id %d outside 1..%d", ErrNotFound, pokemon.Name, pokemon.ID, l.maxID)
	}

	species, speciesHit := l.cache.Species(pokemon.ID)
	l.metrics.cacheLookup(kindSpecies, speciesHit)
	if !speciesHit {
		speciesURL := pokemon.Species.URL
		if speciesURL == "" {
			speciesURL = l.upstream.SpeciesURL(pokemon.ID)
		}
		fetched, err := l.upstream.GetSpecies(ctx, speciesURL)
		l.metrics.upstreamRequest(kindSpecies, err)
		if err != nil {
			return nil, fmt.Errorf("resolving species of %q: %w", key, err)
		}
		species = fetched
	}

	if !pokemonHit || !speciesHit {
		l.cache.Store(key, pokemon, species)
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "dex").
		Str("operation", "resolve").
		Str("key", key).
		Int("id", pokemon.ID).
		Bool("pokemon_cached", pokemonHit).
		Bool("species_cached", speciesHit).
		Msg("record resolved")

	return NewRecord(pokemon, species, l.cryTemplate), nil
}
