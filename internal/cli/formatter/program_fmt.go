package formatter

import (
	"fmt"
	"strings"

	"github.com/rsoares/grit/internal/contract"
)

// FormatProgramList renders the program listing as a table.
func FormatProgramList(rows []contract.ProgramSummary) string {
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		weeks := Dim("-")
		if r.Weeks > 0 {
			weeks = fmt.Sprintf("%d", r.Weeks)
		}
		tableRows = append(tableRows, []string{
			fmt.Sprintf("%d", r.Seq),
			r.Name,
			fmt.Sprintf("%d", r.BlockCount),
			weeks,
			Dim(FormatDate(r.CreatedAt)),
		})
	}
	return RenderTable([]string{"#", "NAME", "BLOCKS", "WEEKS", "ADDED"}, tableRows)
}

// FormatProgramDetail renders a program with its blocks and prescriptions.
func FormatProgramDetail(d *contract.ProgramDetail) string {
	var b strings.Builder
	b.WriteString(Header(d.Name))
	b.WriteString("\n")
	if d.Description != "" {
		b.WriteString(d.Description + "\n")
	}

	for _, block := range d.Blocks {
		title := fmt.Sprintf("%d. %s", block.Position, Bold(block.Name))
		if block.Week > 0 {
			title += Dim(fmt.Sprintf(" (week %d)", block.Week))
		}
		b.WriteString("\n" + title + "\n")

		rows := make([][]string, 0, len(block.Exercises))
		for _, p := range block.Exercises {
			rows = append(rows, []string{
				p.Exercise,
				fmt.Sprintf("%d", p.Sets),
				repsCell(p.Reps),
				targetsCell(p),
				techniqueCell(p.Technique),
			})
		}
		b.WriteString(indent(RenderTable([]string{"EXERCISE", "SETS", "REPS", "TARGET", "TECHNIQUE"}, rows), "   "))
	}
	return b.String()
}

func repsCell(reps []string) string {
	if len(reps) == 0 {
		return Dim("-")
	}
	return strings.Join(reps, "/")
}

func targetsCell(p contract.PrescriptionView) string {
	parts := []string{}
	if len(p.TargetRPE) > 0 {
		cells := make([]string, len(p.TargetRPE))
		for i, rpe := range p.TargetRPE {
			cells[i] = trimFloat(rpe)
		}
		parts = append(parts, "@"+strings.Join(cells, "/"))
	}
	if len(p.TargetPercent) > 0 {
		cells := make([]string, len(p.TargetPercent))
		for i, pct := range p.TargetPercent {
			cells[i] = trimFloat(pct)
		}
		parts = append(parts, strings.Join(cells, "/")+"%")
	}
	if len(parts) == 0 {
		return Dim("-")
	}
	return strings.Join(parts, " ")
}

func techniqueCell(t string) string {
	if t == "" {
		return Dim("-")
	}
	return StylePurple.Render(t)
}
