package contract

import "time"

// SetView is one logged set as shown to the user.
type SetView struct {
	Slot         int
	Weight       float64
	Reps         int
	Bodyweight   bool
	RPE          *float64
	Estimated1RM float64
	Notes        string
	LoggedAt     time.Time
}

// SlotView is one row of the live session table: the target prescribed for
// that slot, the most recent historical set at the same slot, and the set
// logged so far in this session (nil until logged).
type SlotView struct {
	Slot          int
	TargetReps    string
	TargetRPE     float64
	TargetPercent float64
	// TargetWeight is the absolute load resolved from the prescription's
	// reference 1RM and the slot's percentage. 0 means unresolvable.
	TargetWeight float64
	Previous     *SetView
	Current      *SetView
}

// ExerciseView is one exercise of a session, in session order.
type ExerciseView struct {
	Index            int
	ExerciseID       string
	Name             string
	Muscle           string
	Technique        string
	Note             string
	ProgramNotes     string
	Record           *RecordView
	BodyweightRecord *RecordView
	Slots            []SlotView
}

// SessionView is the full rendering model for an active or completed session.
type SessionView struct {
	SessionID string
	Program   string
	Block     string
	Week      int
	StartedAt time.Time
	EndedAt   *time.Time
	Notes     string
	Exercises []ExerciseView
}

// StartResult summarizes a freshly started session.
type StartResult struct {
	SessionID     string
	Program       string
	Block         string
	Week          int
	ExerciseCount int
	StartedAt     time.Time
}

// EditSetRequest carries one set edit. SetIndex 0 means "next free slot";
// an explicit index addresses that slot directly and may exceed the
// prescribed count by one to create an extra set.
type EditSetRequest struct {
	ExerciseIndex int
	Weight        float64
	Bodyweight    bool
	Reps          int
	SetIndex      int
	RPE           *float64
	Notes         string
}

// EditResult reports the outcome of logging or correcting one set.
type EditResult struct {
	Exercise     string
	Slot         int
	Weight       float64
	Reps         int
	Bodyweight   bool
	Estimated1RM float64
	Inserted     bool
	NewRecord    bool
}

// SwapResult reports an in-session exercise replacement.
type SwapResult struct {
	From     string
	To       string
	Position int
	SetsKept int
}

// AddExerciseResult reports an ad-hoc exercise appended to a session.
type AddExerciseResult struct {
	Exercise    string
	Position    int
	PlannedSets int
}

// EndedExercise is the per-exercise slice of an end-of-session summary.
type EndedExercise struct {
	Name      string
	Sets      []SetView
	NewRecord *RecordView
}

// EndSummary is the end-of-session report: what was logged and which
// personal records the session produced.
type EndSummary struct {
	SessionID string
	Program   string
	Block     string
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Exercises []EndedExercise
}
