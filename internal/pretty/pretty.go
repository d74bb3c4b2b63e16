package pretty

import (
	"fmt"
	"strings"

	"episcore-core/matrix"
	"episcore-core/seq"
	"episcore/internal/engine"
)

// Options control the ASCII rendering.
type Options struct {
	// Alignment columns per block. If <=0, use default (60).
	Width int

	// Glyphs
	ExactGlyph   string // identical residues, default "|"
	PartialGlyph string // substitution with a positive matrix score, default "¦"
	GapGlyph     string // default "-"
}

// DefaultOptions keeps the standard look.
var DefaultOptions = Options{
	Width:        60,
	ExactGlyph:   "|",
	PartialGlyph: "¦",
	GapGlyph:     "-",
}

const (
	linePrefix = "# "
	refLabel   = "ref   "
	qryLabel   = "query "
)

// column is one alignment column: reference glyph, bar glyph, query glyph.
type column struct{ ref, bar, qry string }

// columns replays the hit's mutations over the reference. Mutations must be
// in reference order, as produced by the aligner.
func columns(h engine.Hit, lookup matrix.Lookup, opt Options) ([]column, error) {
	ref := seq.FromString(h.ReferenceSeq)
	n := ref.Len()
	gap := opt.GapGlyphOrDefault()
	cols := make([]column, 0, n+len(h.Mutations))
	next := 0
	match := func(i int) {
		r := string(ref.At(i))
		cols = append(cols, column{r, opt.ExactGlyphOrDefault(), r})
	}
	for _, m := range h.Mutations {
		if m.Pos < next || m.Pos > n {
			return nil, fmt.Errorf("mutation %s out of order", m)
		}
		for ; next < m.Pos; next++ {
			match(next)
		}
		switch m.Kind {
		case seq.Insertion:
			cols = append(cols, column{gap, " ", string(m.To)})
		case seq.Deletion:
			if m.Pos == n {
				return nil, fmt.Errorf("mutation %s past reference end", m)
			}
			cols = append(cols, column{string(ref.At(m.Pos)), " ", gap})
			next++
		default:
			if m.Pos == n {
				return nil, fmt.Errorf("mutation %s past reference end", m)
			}
			a := ref.At(m.Pos)
			bar := " "
			if lookup != nil && lookup.Score(a, m.To) > 0 {
				bar = opt.PartialGlyphOrDefault()
			}
			cols = append(cols, column{string(a), bar, string(m.To)})
			next++
		}
	}
	for ; next < n; next++ {
		match(next)
	}
	return cols, nil
}

// RenderHitWithOptions prints the reference/query alignment block of a hit.
// lookup decides which substitutions get the partial glyph; nil disables it.
func RenderHitWithOptions(h engine.Hit, lookup matrix.Lookup, opt Options) string {
	var b strings.Builder
	if h.ReferenceSeq == "" && h.QuerySeq == "" {
		fmt.Fprintf(&b, "%s(pretty not available: sequences missing)\n#\n", linePrefix)
		return b.String()
	}
	cols, err := columns(h, lookup, opt)
	if err != nil {
		fmt.Fprintf(&b, "%s(pretty not available: %v)\n#\n", linePrefix, err)
		return b.String()
	}

	width := opt.Width
	if width <= 0 {
		width = DefaultOptions.Width
	}
	pad := strings.Repeat(" ", len(refLabel))
	for start := 0; start < len(cols); start += width {
		end := start + width
		if end > len(cols) {
			end = len(cols)
		}
		var r, m, q strings.Builder
		for _, c := range cols[start:end] {
			r.WriteString(c.ref)
			m.WriteString(c.bar)
			q.WriteString(c.qry)
		}
		fmt.Fprintf(&b, "%s%s%s\n", linePrefix, refLabel, r.String())
		fmt.Fprintf(&b, "%s%s%s\n", linePrefix, pad, strings.TrimRight(m.String(), " "))
		fmt.Fprintf(&b, "%s%s%s\n", linePrefix, qryLabel, q.String())
	}

	// spacer
	b.WriteString("#\n")
	return b.String()
}

// RenderHit uses DefaultOptions.
func RenderHit(h engine.Hit, lookup matrix.Lookup) string {
	return RenderHitWithOptions(h, lookup, DefaultOptions)
}

// helpers for default glyphs
func (o Options) ExactGlyphOrDefault() string {
	if o.ExactGlyph != "" {
		return o.ExactGlyph
	}
	return DefaultOptions.ExactGlyph
}
func (o Options) PartialGlyphOrDefault() string {
	if o.PartialGlyph != "" {
		return o.PartialGlyph
	}
	return DefaultOptions.PartialGlyph
}
func (o Options) GapGlyphOrDefault() string {
	if o.GapGlyph != "" {
		return o.GapGlyph
	}
	return DefaultOptions.GapGlyph
}
