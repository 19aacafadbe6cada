package dex

import (
	"errors"

	"github.com/rshade/pokedex/internal/pokeapi"
)

// Resolution failures.
var (
	// ErrNotFound means the upstream has no matching record, or the record
	// lies outside the configured id range.
	ErrNotFound = pokeapi.ErrNotFound
	// ErrNetwork means the upstream could not be reached or returned a
	// payload of the wrong shape.
	ErrNetwork = pokeapi.ErrNetwork
	// ErrBusy means another resolution is in flight; the call had no effect.
	ErrBusy = errors.New("a resolution is already in flight")
)
