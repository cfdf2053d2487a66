package domain

import "time"

// Exercise is one catalog entry. Seq is the small monotonic display index
// used for index-or-name resolution; ID is the stable identity.
// BestEstimated1RM/BestDate cache the authoritative personal record and are
// refreshed by the session service on every PR-affecting mutation.
type Exercise struct {
	ID               string
	Seq              int
	Name             string
	Muscle           Muscle
	Description      string
	BestEstimated1RM *float64
	BestDate         *time.Time
	CreatedAt        time.Time
	Variants         []Variant
}

// Variant is a named variation of an exercise. Seq is scoped to the parent.
type Variant struct {
	ID         string
	ExerciseID string
	Seq        int
	Name       string
}
