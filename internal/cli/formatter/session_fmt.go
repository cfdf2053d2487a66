package formatter

import (
	"fmt"
	"strings"

	"github.com/rsoares/grit/internal/contract"
)

// FormatStartResult renders the confirmation printed after starting a session.
func FormatStartResult(r *contract.StartResult) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s / %s", r.Program, r.Block)))
	b.WriteString("\n")
	if r.Week > 0 {
		b.WriteString(fmt.Sprintf("Week %d, ", r.Week))
	}
	b.WriteString(fmt.Sprintf("%d exercises, started %s\n", r.ExerciseCount, r.StartedAt.Local().Format("15:04")))
	b.WriteString(Dim("Log sets with: grit session edit <exercise> --weight <w> --reps <n>"))
	return b.String()
}

// FormatSessionView renders the full session table: per exercise one row per
// slot with the prescribed target, the previous result at the same slot, and
// whatever has been logged this session.
func FormatSessionView(v *contract.SessionView) string {
	var b strings.Builder

	title := fmt.Sprintf("%s / %s", v.Program, v.Block)
	if v.Week > 0 {
		title += fmt.Sprintf(" (week %d)", v.Week)
	}
	b.WriteString(Header(title))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("started %s", v.StartedAt.Local().Format("2006-01-02 15:04"))))
	if v.EndedAt != nil {
		b.WriteString(Dim(fmt.Sprintf(", ended %s", v.EndedAt.Local().Format("15:04"))))
	}
	b.WriteString("\n")

	for _, ex := range v.Exercises {
		b.WriteString("\n")
		line := fmt.Sprintf("%d. %s", ex.Index, Bold(ex.Name))
		line += " " + Dim("("+ex.Muscle+")")
		if ex.Technique != "" {
			line += " " + StylePurple.Render("["+ex.Technique+"]")
		}
		b.WriteString(line + "\n")
		if ex.Record != nil || ex.BodyweightRecord != nil {
			if ex.Record != nil {
				b.WriteString(Dim("   best: ") + FormatRecord(ex.Record) + "\n")
			}
			if ex.BodyweightRecord != nil {
				b.WriteString(Dim("   best bw: ") + FormatRecord(ex.BodyweightRecord) + "\n")
			}
		}
		if ex.ProgramNotes != "" {
			b.WriteString(Dim("   plan: "+ex.ProgramNotes) + "\n")
		}
		if ex.Note != "" {
			b.WriteString(StyleBlue.Render("   note: "+ex.Note) + "\n")
		}

		rows := make([][]string, 0, len(ex.Slots))
		for _, slot := range ex.Slots {
			rows = append(rows, []string{
				fmt.Sprintf("%d", slot.Slot),
				targetCell(slot),
				previousCell(slot),
				currentCell(slot),
			})
		}
		table := RenderTable([]string{"SET", "TARGET", "PREV", "DONE"}, rows)
		b.WriteString(indent(table, "   "))
	}
	return b.String()
}

func targetCell(slot contract.SlotView) string {
	parts := []string{}
	if slot.TargetReps != "" {
		parts = append(parts, slot.TargetReps+" reps")
	}
	if slot.TargetRPE > 0 {
		parts = append(parts, "@"+trimFloat(slot.TargetRPE))
	}
	if slot.TargetWeight > 0 {
		parts = append(parts, FormatWeight(slot.TargetWeight, false))
	} else if slot.TargetPercent > 0 {
		parts = append(parts, trimFloat(slot.TargetPercent)+"%")
	}
	if len(parts) == 0 {
		return Dim("-")
	}
	return strings.Join(parts, " ")
}

func previousCell(slot contract.SlotView) string {
	if slot.Previous == nil {
		return Dim("-")
	}
	return Dim(FormatSet(*slot.Previous))
}

func currentCell(slot contract.SlotView) string {
	if slot.Current == nil {
		return Dim("·")
	}
	return StyleGreen.Render(FormatSet(*slot.Current))
}

// FormatEditResult renders the confirmation printed after logging a set.
func FormatEditResult(r *contract.EditResult) string {
	verb := "Updated"
	if r.Inserted {
		verb = "Logged"
	}
	s := fmt.Sprintf("%s %s set %d: %sx%d", verb, Bold(r.Exercise), r.Slot,
		FormatWeight(r.Weight, r.Bodyweight), r.Reps)
	if r.Estimated1RM > 0 {
		s += Dim(fmt.Sprintf("  e1RM %s", trimFloat(r.Estimated1RM)))
	}
	if r.NewRecord {
		s += "  " + RecordBadge()
	}
	return s
}

// FormatSwapResult renders the confirmation printed after a swap.
func FormatSwapResult(r *contract.SwapResult) string {
	s := fmt.Sprintf("Swapped %s for %s at position %d", Bold(r.From), Bold(r.To), r.Position)
	if r.SetsKept > 0 {
		s += Dim(fmt.Sprintf(" (%d logged sets kept)", r.SetsKept))
	}
	return s
}

// FormatEndSummary renders the end-of-session report.
func FormatEndSummary(s *contract.EndSummary) string {
	var b strings.Builder
	b.WriteString(Header("session complete"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s / %s, %s\n", s.Program, s.Block, FormatDuration(s.Duration)))

	for _, ex := range s.Exercises {
		b.WriteString("\n" + Bold(ex.Name))
		if ex.NewRecord != nil {
			b.WriteString("  " + RecordBadge() + " " + FormatRecord(ex.NewRecord))
		}
		b.WriteString("\n")
		if len(ex.Sets) == 0 {
			b.WriteString(Dim("   no sets logged") + "\n")
			continue
		}
		cells := make([]string, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			cells = append(cells, FormatSet(set))
		}
		b.WriteString("   " + strings.Join(cells, Dim(" | ")) + "\n")
	}
	return b.String()
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n") + "\n"
}
