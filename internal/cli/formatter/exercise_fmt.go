package formatter

import (
	"fmt"
	"strings"

	"github.com/rsoares/grit/internal/contract"
)

// FormatExerciseList renders the catalog listing as a table.
func FormatExerciseList(rows []contract.ExerciseSummary) string {
	tableRows := make([][]string, 0, len(rows))
	for _, r := range rows {
		best := Dim("-")
		if r.Best1RM != nil {
			best = trimFloat(*r.Best1RM)
			if r.BestDate != nil {
				best += " " + Dim("("+FormatDate(*r.BestDate)+")")
			}
		}
		variants := Dim("-")
		if r.VariantCount > 0 {
			variants = fmt.Sprintf("%d", r.VariantCount)
		}
		tableRows = append(tableRows, []string{
			fmt.Sprintf("%d", r.Seq),
			r.Name,
			Dim(r.Muscle),
			best,
			variants,
		})
	}
	return RenderTable([]string{"#", "NAME", "MUSCLE", "BEST e1RM", "VARIANTS"}, tableRows)
}

// FormatExerciseDetail renders one exercise with records and recent history.
func FormatExerciseDetail(d *contract.ExerciseDetail) string {
	var b strings.Builder
	b.WriteString(Header(d.Name))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("muscle: %s\n", d.Muscle))
	if d.Description != "" {
		b.WriteString(d.Description + "\n")
	}
	if len(d.Variants) > 0 {
		b.WriteString("variants: " + strings.Join(d.Variants, ", ") + "\n")
	}
	b.WriteString("best: " + FormatRecord(d.Record) + "\n")
	if d.BodyweightRecord != nil {
		b.WriteString("best bw: " + FormatRecord(d.BodyweightRecord) + "\n")
	}

	if len(d.History) > 0 {
		b.WriteString("\n" + Header("recent sessions") + "\n")
		for _, entry := range d.History {
			cells := make([]string, 0, len(entry.Sets))
			for _, set := range entry.Sets {
				cells = append(cells, FormatSet(set))
			}
			b.WriteString(fmt.Sprintf("%s %s  %s\n",
				FormatDate(entry.SessionDate),
				Dim(entry.Program+" / "+entry.Block),
				strings.Join(cells, Dim(" | "))))
		}
	}
	return b.String()
}
