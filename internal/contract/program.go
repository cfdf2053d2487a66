package contract

import "time"

// ProgramSummary is one row of the program listing.
type ProgramSummary struct {
	Seq        int
	Name       string
	BlockCount int
	Weeks      int
	CreatedAt  time.Time
}

// PrescriptionView is one exercise line of a block as displayed.
type PrescriptionView struct {
	Exercise      string
	Sets          int
	Reps          []string
	TargetRPE     []float64
	TargetPercent []float64
	Technique     string
	Notes         string
}

// BlockView is one block of a program as displayed.
type BlockView struct {
	Position  int
	Name      string
	Week      int
	Exercises []PrescriptionView
}

// ProgramDetail is the full view of one program.
type ProgramDetail struct {
	Seq         int
	Name        string
	Description string
	CreatedAt   time.Time
	Blocks      []BlockView
}

// ImportSummary reports the outcome of a TOML import.
type ImportSummary struct {
	Programs  int
	Blocks    int
	Exercises int
}
