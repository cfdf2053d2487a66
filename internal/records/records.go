// Package records implements estimated-1RM computation and personal-record
// decisions. It is pure: the session service feeds it candidates and current
// bests and persists whatever it decides.
package records

import "github.com/rsoares/grit/internal/domain"

// EstimatedOneRM computes the Epley single-rep-max estimate for a logged
// weight and rep count. Zero reps or zero weight (bodyweight) yield 0;
// bodyweight sets are never compared on the weighted track.
func EstimatedOneRM(weight float64, reps int) float64 {
	if reps == 0 || weight == 0 {
		return 0
	}
	return weight * (1 + float64(reps)/30)
}

// Candidate is one logged set under PR consideration.
type Candidate struct {
	Weight     float64
	Reps       int
	Bodyweight bool
}

// Eligible reports whether the candidate can set a record at all.
// Zero-rep sets never do; weighted sets also need a positive weight.
func (c Candidate) Eligible() bool {
	if c.Reps <= 0 {
		return false
	}
	if !c.Bodyweight && c.Weight <= 0 {
		return false
	}
	return true
}

// EstimatedOneRM returns the candidate's Epley estimate (0 for bodyweight).
func (c Candidate) EstimatedOneRM() float64 {
	if c.Bodyweight {
		return 0
	}
	return EstimatedOneRM(c.Weight, c.Reps)
}

// IsNewRecord decides whether the candidate strictly beats the current best
// on its own track. best must already be restricted to the candidate's
// track (weighted or bodyweight) and may be nil when no record exists yet.
// Equal values are not records.
func IsNewRecord(best *domain.PersonalRecord, c Candidate) bool {
	if !c.Eligible() {
		return false
	}
	if best == nil {
		return true
	}
	if c.Bodyweight {
		return c.Reps > best.Reps
	}
	return c.EstimatedOneRM() > best.Estimated1RM
}

// BestWeighted returns the strongest weighted candidate among the given
// sets, skipping bodyweight rows, zero-rep rows, and rows flagged as
// excluded from 1RM consideration. Reports false when none qualify.
func BestWeighted(sets []domain.Set) (Candidate, bool) {
	var best Candidate
	found := false
	for _, s := range sets {
		if s.Bodyweight || s.IgnoreForOneRM || s.Reps == 0 || s.Weight <= 0 {
			continue
		}
		c := Candidate{Weight: s.Weight, Reps: s.Reps}
		if !found || c.EstimatedOneRM() > best.EstimatedOneRM() {
			best = c
			found = true
		}
	}
	return best, found
}

// BestBodyweight returns the highest-rep bodyweight candidate among the
// given sets, with the same exclusions as BestWeighted.
func BestBodyweight(sets []domain.Set) (Candidate, bool) {
	var best Candidate
	found := false
	for _, s := range sets {
		if !s.Bodyweight || s.IgnoreForOneRM || s.Reps == 0 {
			continue
		}
		c := Candidate{Reps: s.Reps, Bodyweight: true}
		if !found || c.Reps > best.Reps {
			best = c
			found = true
		}
	}
	return best, found
}
