// internal/output/rows.go
package output

import (
	"strconv"
	"strings"

	"episcore-core/seq"
	"episcore/internal/engine"
)

// FormatScore renders a score for text outputs (4 decimals).
func FormatScore(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

// FormatRowTSV returns the base columns (no trailing newline), plus the
// mutation list when mutations is set.
func FormatRowTSV(h engine.Hit, mutations bool) string {
	sub, ins, del := h.Counts()
	cols := []string{
		h.SourceFile, h.QueryID, h.ReferenceID,
		FormatScore(h.Score), FormatScore(h.BaseScore),
		strconv.FormatBool(h.Passed),
		strconv.Itoa(sub), strconv.Itoa(ins), strconv.Itoa(del),
	}
	if mutations {
		cols = append(cols, MutationsCSV(h.Mutations))
	}
	return strings.Join(cols, "\t")
}

// MutationsCSV joins mutations in their compact notation; "-" when empty.
func MutationsCSV(ms []seq.Mutation) string {
	if len(ms) == 0 {
		return "-"
	}
	return seq.FormatMutations(ms)
}
