package contract

import "time"

// RecordView is a personal record as shown to the user. Bodyweight records
// rank by reps; weighted records by estimated 1RM.
type RecordView struct {
	Weight       float64
	Reps         int
	Estimated1RM float64
	Bodyweight   bool
	Date         time.Time
}

// ExerciseSummary is one row of the catalog listing.
type ExerciseSummary struct {
	Seq          int
	Name         string
	Muscle       string
	Best1RM      *float64
	BestDate     *time.Time
	VariantCount int
}

// HistoryEntry groups the sets of one completed session for one exercise.
type HistoryEntry struct {
	SessionDate time.Time
	Program     string
	Block       string
	Sets        []SetView
}

// ExerciseDetail is the full catalog view of one exercise: identity,
// variants, both record tracks and recent training history.
type ExerciseDetail struct {
	Seq              int
	Name             string
	Muscle           string
	Description      string
	CreatedAt        time.Time
	Variants         []string
	Record           *RecordView
	BodyweightRecord *RecordView
	History          []HistoryEntry
}
