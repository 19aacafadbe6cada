// Package dex resolves creature identifiers into Records and holds the
// viewer's navigation rules.
//
// The Loader is the only component that talks to the upstream API. It keeps
// a session-long in-memory Cache keyed by lookup text, canonical id and
// canonical name, so a record fetched by name is served from memory when it
// is later requested by number and vice versa. Only one resolution may be in
// flight at a time; concurrent calls are rejected with ErrBusy rather than
// queued.
//
// The rest of the package is pure: Wrap for circular id arithmetic, Picker
// for random selection, ParseQuery for search text, TriggerEffects for the
// cosmetic effects keyed on specific ids, KonamiMatcher for the hidden input
// sequence, and Session for the ids the controller tracks between loads.
package dex
