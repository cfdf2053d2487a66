package domain

import "time"

// Session is one training session instantiated from a program block.
// EndedAt is nil while the session is active; the current_session pointer
// table guarantees at most one such row exists.
type Session struct {
	ID        string
	BlockID   string
	Week      int
	StartedAt time.Time
	EndedAt   *time.Time
	Notes     string
}

// Active reports whether the session has not been ended yet.
func (s *Session) Active() bool {
	return s.EndedAt == nil
}

// SessionExercise is the live per-session instance of one exercise.
// Position is the explicit insertion-order index within the session; it is
// independent of the program's order_index and survives swaps.
type SessionExercise struct {
	ID         string
	SessionID  string
	ExerciseID string
	Position   int
	// PlannedSets is advisory display metadata for ad-hoc additions that
	// have no prescription row. 0 means "use the prescription".
	PlannedSets int
	Note        string
}

// Set is one logged set. Slot is its stable 1-based position within the
// parent session exercise; editing a slot updates the row in place and
// never renumbers siblings. Weight 0 plus the Bodyweight flag marks a
// bodyweight set.
type Set struct {
	ID                string
	SessionExerciseID string
	Slot              int
	Weight            float64
	Reps              int
	RPE               *float64
	Percent           *float64
	Notes             string
	LoggedAt          time.Time
	Bodyweight        bool
	IgnoreForOneRM    bool
}
