package dex

// DisplayMode selects the sprite palette.
type DisplayMode int

const (
	// ModeNormal shows default sprites.
	ModeNormal DisplayMode = iota
	// ModeShiny shows shiny sprites.
	ModeShiny
)

// String implements fmt.Stringer.
func (m DisplayMode) String() string {
	if m == ModeShiny {
		return "shiny"
	}
	return "normal"
}

// Session is the controller's view of what is on screen. It is owned by a
// single controller and is not safe for concurrent use.
type Session struct {
	// CurrentID is the id of the last successfully displayed record.
	CurrentID int
	// LastViewedID is the id of the most recent Commit, 0 if none. During
	// Commit it still holds the previous id, which selects transition effects.
	// Afterwards it equals CurrentID.
	LastViewedID int
	// Mode is the sprite palette.
	Mode DisplayMode
}

// NewSession starts a session at startID.
func NewSession(startID int) *Session {
	if startID < 1 {
		startID = 1
	}
	return &Session{CurrentID: startID}
}

// Commit records that r is now displayed and returns the cosmetic effects
// for the transition.
func (s *Session) Commit(r *Record) []Effect {
	prev := s.LastViewedID
	s.CurrentID = r.ID
	effects := TriggerEffects(r.ID, prev)
	s.LastViewedID = r.ID
	return effects
}

// ToggleMode flips between normal and shiny and returns the new mode.
func (s *Session) ToggleMode() DisplayMode {
	if s.Mode == ModeShiny {
		s.Mode = ModeNormal
	} else {
		s.Mode = ModeShiny
	}
	return s.Mode
}
