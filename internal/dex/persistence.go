package dex

import (
	"context"
	"strconv"
	"strings"

	"github.com/rshade/pokedex/internal/logging"
)

// LastViewedKey is the storage key holding the last displayed id.
const LastViewedKey = "pokedex-last-viewed"

// KeyValueStore is durable string storage. Get returns an error when the key
// is absent or the store cannot be read.
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// RestoreStartID reads the last displayed id from store. Absent, malformed,
// or out-of-range values, and any storage failure, yield 1.
func RestoreStartID(ctx context.Context, store KeyValueStore, maxID int) int {
	if store == nil {
		return 1
	}
	raw, err := store.Get(LastViewedKey)
	if err != nil {
		logging.FromContext(ctx).Debug().
			Ctx(ctx).
			Str("component", "dex").
			Err(err).
			Msg("no last viewed id")
		return 1
	}
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 1
	}
	return ClampID(id, maxID, 1)
}

// PersistCurrentID writes id to store. Failures are logged and dropped.
func PersistCurrentID(ctx context.Context, store KeyValueStore, id int) {
	if store == nil {
		return
	}
	if err := store.Set(LastViewedKey, strconv.Itoa(id)); err != nil {
		logging.FromContext(ctx).Debug().
			Ctx(ctx).
			Str("component", "dex").
			Int("id", id).
			Err(err).
			Msg("could not persist last viewed id")
	}
}
