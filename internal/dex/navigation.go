package dex

// Navigation deltas bound to the directional controls.
const (
	DeltaPrevious  = -1
	DeltaNext      = 1
	DeltaBack10    = -10
	DeltaForward10 = 10
)

// Wrap moves current by delta and wraps the result circularly into [1, maxID]:
// anything below 1 lands on maxID and anything above maxID lands on 1. An
// exact 0 is resolved by direction (1 when moving forward, maxID when moving
// back) so the boundary never depends on modulo sign rules.
func Wrap(current, delta, maxID int) int {
	if maxID < 1 {
		return 1
	}

	next := current + delta
	switch {
	case next == 0:
		if delta > 0 {
			return 1
		}
		return maxID
	case next < 1:
		return maxID
	case next > maxID:
		return 1
	default:
		return next
	}
}

// ClampID returns id when it lies in [1, maxID] and fallback otherwise.
func ClampID(id, maxID, fallback int) int {
	if id >= 1 && id <= maxID {
		return id
	}
	return fallback
}
