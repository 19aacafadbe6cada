package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rshade/pokedex/internal/logging"
)

// DefaultBaseURL is the public PokéAPI v2 root.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// DefaultTimeout bounds a single upstream request.
const DefaultTimeout = 10 * time.Second

// maxBodyBytes caps response bodies; /pokemon payloads carry full move lists.
const maxBodyBytes = 8 << 20

// Upstream failure classes.
var (
	// ErrNotFound means the upstream answered with a non-success status.
	ErrNotFound = errors.New("record not found")
	// ErrNetwork means the request failed in transport or the body could not
	// be decoded into the expected shape.
	ErrNetwork = errors.New("upstream request failed")
)

// StatusError carries the non-success status returned by the upstream.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// Unwrap classifies every non-success status as ErrNotFound.
func (e *StatusError) Unwrap() error {
	return ErrNotFound
}

// Client talks to the PokéAPI.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

// NewClient creates a client for baseURL (DefaultBaseURL when empty).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

// PokemonURL returns the endpoint for a creature id or name.
func (c *Client) PokemonURL(idOrName string) string {
	return c.BaseURL + "/pokemon/" + url.PathEscape(idOrName)
}

// SpeciesURL returns the species endpoint for id.
func (c *Client) SpeciesURL(id int) string {
	return c.BaseURL + "/pokemon-species/" + strconv.Itoa(id)
}

// GetPokemon fetches a creature by id or name.
func (c *Client) GetPokemon(ctx context.Context, idOrName string) (*Pokemon, error) {
	var p Pokemon
	if err := c.getJSON(ctx, c.PokemonURL(idOrName), &p); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return &p, nil
}

// GetSpecies fetches the species resource at speciesURL, as linked from
// Pokemon.Species.URL.
func (c *Client) GetSpecies(ctx context.Context, speciesURL string) (*Species, error) {
	if speciesURL == "" {
		return nil, fmt.Errorf("%w: empty species url", ErrNetwork)
	}
	var s Species
	if err := c.getJSON(ctx, speciesURL, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return &s, nil
}

func (c *Client) getJSON(ctx context.Context, target string, out any) error {
	log := logging.FromContext(ctx)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %w", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: GET %s: %w", ErrNetwork, target, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Ctx(ctx).
		Str("component", "pokeapi").
		Str("url", target).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("upstream response")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{StatusCode: resp.StatusCode, URL: target}
	}

	if decodeErr := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); decodeErr != nil {
		return fmt.Errorf("%w: decoding %s: %w", ErrNetwork, target, decodeErr)
	}
	return nil
}
