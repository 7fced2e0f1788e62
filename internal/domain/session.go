package domain

// SessionID is the identifier of the one session the store keeps.
const SessionID int64 = 1

// Session is the aggregate usage record.
type Session struct {
	ID           int64 `json:"id"`
	TotalSpins   int   `json:"totalSpins"`
	SoundEnabled bool  `json:"soundEnabled"`
}

// SessionPatch carries a partial session update. Nil fields are left as they are.
type SessionPatch struct {
	TotalSpins   *int  `json:"totalSpins,omitempty"`
	SoundEnabled *bool `json:"soundEnabled,omitempty"`
}

func NewSession() Session {
	return Session{
		ID:           SessionID,
		TotalSpins:   0,
		SoundEnabled: true,
	}
}

// Apply merges the non-nil fields of p into s.
func (s Session) Apply(p SessionPatch) Session {
	if p.TotalSpins != nil {
		s.TotalSpins = *p.TotalSpins
	}
	if p.SoundEnabled != nil {
		s.SoundEnabled = *p.SoundEnabled
	}
	return s
}

// Validate checks p against the current session. current may be nil when no
// session exists yet.
func (p SessionPatch) Validate(current *Session) error {
	verr := &ValidationError{}
	if p.TotalSpins != nil {
		switch {
		case *p.TotalSpins < 0:
			verr.Add("totalSpins", "must not be negative")
		case current != nil && *p.TotalSpins < current.TotalSpins:
			verr.Add("totalSpins", "must not decrease")
		}
	}
	return verr.OrNil()
}
