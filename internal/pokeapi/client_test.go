package pokeapi_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/pokedex/internal/pokeapi"
	"github.com/rshade/pokedex/internal/pokeapi/pokeapitest"
)

func TestNewClient_Defaults(t *testing.T) {
	c := pokeapi.NewClient("", 0)
	assert.Equal(t, pokeapi.DefaultBaseURL, c.BaseURL)
	assert.Equal(t, pokeapi.DefaultTimeout, c.HTTPClient.Timeout)

	c = pokeapi.NewClient("http://example.test/api/", time.Second)
	assert.Equal(t, "http://example.test/api", c.BaseURL)
	assert.Equal(t, "http://example.test/api/pokemon/mr.%20mime", c.PokemonURL("mr. mime"))
	assert.Equal(t, "http://example.test/api/pokemon-species/25", c.SpeciesURL(25))
}

func TestGetPokemon(t *testing.T) {
	server := pokeapitest.NewServer(t)
	client := pokeapi.NewClient(server.URL, time.Second)
	ctx := context.Background()

	t.Run("by id", func(t *testing.T) {
		p, err := client.GetPokemon(ctx, "25")
		require.NoError(t, err)
		assert.Equal(t, 25, p.ID)
		assert.Equal(t, "pikachu", p.Name)
		require.Len(t, p.Types, 1)
		assert.Equal(t, "electric", p.Types[0].Type.Name)
		assert.Len(t, p.Stats, 6)
		assert.Equal(t, server.URL+"/pokemon-species/25", p.Species.URL)
	})

	t.Run("by name", func(t *testing.T) {
		p, err := client.GetPokemon(ctx, "ditto")
		require.NoError(t, err)
		assert.Equal(t, 132, p.ID)
	})

	t.Run("unknown name is not found", func(t *testing.T) {
		_, err := client.GetPokemon(ctx, "agumon")
		require.Error(t, err)
		assert.ErrorIs(t, err, pokeapi.ErrNotFound)

		var statusErr *pokeapi.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("server error is classified as not found", func(t *testing.T) {
		server.FailPokemon("4", http.StatusInternalServerError)
		_, err := client.GetPokemon(ctx, "4")
		assert.ErrorIs(t, err, pokeapi.ErrNotFound)
	})

	t.Run("wrong shape is a network error", func(t *testing.T) {
		server.BreakPokemon("mew")
		_, err := client.GetPokemon(ctx, "mew")
		assert.ErrorIs(t, err, pokeapi.ErrNetwork)
		assert.NotErrorIs(t, err, pokeapi.ErrNotFound)
	})
}

func TestGetPokemon_ValidationFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "name": "squirtle", "types": []}`))
	}))
	defer server.Close()

	client := pokeapi.NewClient(server.URL, time.Second)
	_, err := client.GetPokemon(context.Background(), "7")
	require.Error(t, err)
	assert.ErrorIs(t, err, pokeapi.ErrNetwork)
	assert.Contains(t, err.Error(), "no types")
}

func TestGetPokemon_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := pokeapi.NewClient(url, time.Second)
	_, err := client.GetPokemon(context.Background(), "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, pokeapi.ErrNetwork)
}

func TestGetPokemon_UserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := pokeapi.NewClient(server.URL, time.Second)
	client.UserAgent = "pokedex/test"
	_, _ = client.GetPokemon(context.Background(), "1")
	assert.Equal(t, "pokedex/test", gotUA)
}

func TestGetSpecies(t *testing.T) {
	server := pokeapitest.NewServer(t)
	client := pokeapi.NewClient(server.URL, time.Second)
	ctx := context.Background()

	s, err := client.GetSpecies(ctx, client.SpeciesURL(1))
	require.NoError(t, err)
	assert.Equal(t, 1, s.ID)
	require.Len(t, s.FlavorTextEntries, 2)
	assert.Equal(t, "ja", s.FlavorTextEntries[0].Language.Name)

	_, err = client.GetSpecies(ctx, "")
	assert.ErrorIs(t, err, pokeapi.ErrNetwork)

	server.FailSpecies(25, http.StatusBadGateway)
	_, err = client.GetSpecies(ctx, client.SpeciesURL(25))
	assert.ErrorIs(t, err, pokeapi.ErrNotFound)
}

func TestGetPokemon_ContextCanceled(t *testing.T) {
	server := pokeapitest.NewServer(t)
	client := pokeapi.NewClient(server.URL, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetPokemon(ctx, "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pokeapi.ErrNetwork))
	assert.True(t, errors.Is(err, context.Canceled))
}
