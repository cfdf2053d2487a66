package domain

import "time"

// PersonalRecord is one dated best for an exercise. Weighted records rank
// by estimated 1RM; bodyweight records rank by reps. The two tracks never
// cross-compare. At most one row exists per (exercise, day, track).
type PersonalRecord struct {
	ExerciseID   string
	Date         time.Time
	Weight       float64
	Reps         int
	Estimated1RM float64
	Bodyweight   bool
}
