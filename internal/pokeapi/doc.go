// Package pokeapi is a typed read-only client for the PokéAPI REST service.
//
// Only the two endpoints the viewer needs are covered: a creature by id or
// name, and the species resource linked from it. Responses are decoded into
// explicit structs and validated at the boundary, so callers never see a
// half-populated payload. Failures are classified as ErrNotFound (upstream
// answered with a non-success status) or ErrNetwork (transport, decode, or
// shape problems).
package pokeapi
