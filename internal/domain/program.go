package domain

import "time"

// Program owns an ordered list of blocks, each an ordered list of
// prescriptions. Seq is the display index for index-or-name resolution.
type Program struct {
	ID          string
	Seq         int
	Name        string
	Description string
	CreatedAt   time.Time
	Blocks      []Block
}

// Block is one named phase of a program (typically a training day),
// optionally tagged with a week number for multi-week periodization.
type Block struct {
	ID          string
	ProgramID   string
	Name        string
	Description string
	Week        int // 0 when untagged
	Position    int
	Exercises   []Prescription
}

// Prescription is the authored target plan for one exercise inside a block:
// set count, per-set rep targets, and optional per-set RPE / %1RM targets
// position-matched against the rep targets.
type Prescription struct {
	ID             string
	BlockID        string
	ExerciseID     string
	Sets           int
	Reps           []string
	TargetRPE      []float64
	TargetPercent  []float64
	Notes          string
	Reference1RM   *float64
	Technique      Technique
	TechniqueGroup int
	OrderIndex     int
}

// RepTargetFor returns the rep target for a 1-based set slot. When the
// prescription lists fewer targets than sets, the last listed target
// carries over to the remaining slots.
func (p *Prescription) RepTargetFor(slot int) string {
	if slot < 1 || len(p.Reps) == 0 || slot > p.Sets {
		return ""
	}
	if slot <= len(p.Reps) {
		return p.Reps[slot-1]
	}
	return p.Reps[len(p.Reps)-1]
}

// RPETargetFor returns the RPE target for a 1-based set slot, or 0 when the
// slot has none.
func (p *Prescription) RPETargetFor(slot int) float64 {
	if slot < 1 || slot > len(p.TargetRPE) {
		return 0
	}
	return p.TargetRPE[slot-1]
}

// PercentTargetFor returns the %1RM target for a 1-based set slot, or 0
// when the slot has none.
func (p *Prescription) PercentTargetFor(slot int) float64 {
	if slot < 1 || slot > len(p.TargetPercent) {
		return 0
	}
	return p.TargetPercent[slot-1]
}

// TargetWeightFor converts the slot's %1RM target into an absolute weight.
// Resolvable only when the prescription carries an explicit reference 1RM.
func (p *Prescription) TargetWeightFor(slot int) (float64, bool) {
	pct := p.PercentTargetFor(slot)
	if pct == 0 || p.Reference1RM == nil || *p.Reference1RM == 0 {
		return 0, false
	}
	return *p.Reference1RM * pct / 100, true
}
