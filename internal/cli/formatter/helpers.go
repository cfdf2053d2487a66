package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rsoares/grit/internal/contract"
)

// FormatWeight renders a weight with up to two decimals, trimming trailing
// zeros, or "bw" for bodyweight sets.
func FormatWeight(weight float64, bodyweight bool) string {
	if bodyweight {
		return "bw"
	}
	s := strconv.FormatFloat(weight, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s
}

// FormatSet renders a set as "100x5 @8".
func FormatSet(v contract.SetView) string {
	s := fmt.Sprintf("%sx%d", FormatWeight(v.Weight, v.Bodyweight), v.Reps)
	if v.RPE != nil {
		s += fmt.Sprintf(" @%s", trimFloat(*v.RPE))
	}
	return s
}

// FormatDate renders a calendar day.
func FormatDate(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// FormatDuration renders a duration as "1h23m".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", h, m)
}

// FormatRecord renders a personal record with its date.
func FormatRecord(r *contract.RecordView) string {
	if r == nil {
		return Dim("none")
	}
	if r.Bodyweight {
		return fmt.Sprintf("bw x %d %s", r.Reps, Dim("("+FormatDate(r.Date)+")"))
	}
	return fmt.Sprintf("%s e1RM %s %s",
		trimFloat(r.Estimated1RM),
		Dim(fmt.Sprintf("%sx%d", FormatWeight(r.Weight, false), r.Reps)),
		Dim("("+FormatDate(r.Date)+")"))
}

func trimFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}
