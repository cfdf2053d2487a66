package domain

import "strings"

// Muscle is the primary muscle group of an exercise. The set is closed;
// anything else is rejected at the catalog boundary.
type Muscle string

const (
	MuscleBiceps     Muscle = "biceps"
	MuscleTriceps    Muscle = "triceps"
	MuscleForearms   Muscle = "forearms"
	MuscleChest      Muscle = "chest"
	MuscleShoulders  Muscle = "shoulders"
	MuscleBack       Muscle = "back"
	MuscleQuads      Muscle = "quads"
	MuscleHamstrings Muscle = "hamstrings"
	MuscleGlutes     Muscle = "glutes"
	MuscleCalves     Muscle = "calves"
	MuscleAbs        Muscle = "abs"
)

// Muscles lists every valid muscle group in display order.
var Muscles = []Muscle{
	MuscleBiceps, MuscleTriceps, MuscleForearms, MuscleChest,
	MuscleShoulders, MuscleBack, MuscleQuads, MuscleHamstrings,
	MuscleGlutes, MuscleCalves, MuscleAbs,
}

// ParseMuscle returns the canonical lowercase muscle for the given input,
// or false if the input is not a valid muscle group. A few common spellings
// ("quad", "quadriceps") fold into their canonical name.
func ParseMuscle(s string) (Muscle, bool) {
	m := strings.ToLower(strings.TrimSpace(s))
	switch m {
	case "quad", "quads", "quadriceps":
		return MuscleQuads, true
	case "hamstring":
		return MuscleHamstrings, true
	case "glute":
		return MuscleGlutes, true
	case "calf":
		return MuscleCalves, true
	}
	for _, valid := range Muscles {
		if Muscle(m) == valid {
			return valid, true
		}
	}
	return "", false
}

// SuggestMuscle returns the closest valid muscle for a misspelled input,
// or false when nothing is close enough to suggest.
func SuggestMuscle(s string) (Muscle, bool) {
	in := strings.ToLower(strings.TrimSpace(s))
	if in == "" {
		return "", false
	}
	best := Muscle("")
	bestDist := len(in) + 1
	for _, m := range Muscles {
		d := editDistance(in, string(m))
		if d < bestDist {
			bestDist = d
			best = m
		}
	}
	// Suggest only when the typo is small relative to the word.
	if best != "" && bestDist <= len(best)/3+1 {
		return best, true
	}
	return "", false
}

func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(min(cur[j-1]+1, prev[j]+1), prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// Technique tags a prescription with a special set scheme.
type Technique string

const (
	TechniqueNone     Technique = ""
	TechniqueSuperset Technique = "superset"
	TechniqueMyoreps  Technique = "myoreps"
	TechniqueHell     Technique = "hell"
	TechniqueDrop     Technique = "drop"
)

// IgnoredForRecords reports whether sets logged under this technique are
// excluded from 1RM and PR consideration.
func (t Technique) IgnoredForRecords() bool {
	return t == TechniqueMyoreps || t == TechniqueHell
}
