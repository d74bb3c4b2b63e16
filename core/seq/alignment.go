package seq

import "fmt"

// Alignment pairs a reference with the mutations that turn it into the query.
// Mutations are ordered by reference position.
type Alignment struct {
	Reference Sequence
	Query     Sequence
	Mutations []Mutation
}

// Apply rebuilds the query by replaying Mutations over Reference.
// It fails if a mutation points outside the reference or disagrees with the
// residue found there.
func (a Alignment) Apply() (Seq, error) {
	n := 0
	if a.Reference != nil {
		n = a.Reference.Len()
	}
	out := make(Seq, 0, n+len(a.Mutations))
	next := 0 // next unconsumed reference index
	for _, m := range a.Mutations {
		if m.Pos < next || m.Pos > n {
			return nil, fmt.Errorf("mutation %s out of order or range (ref len %d)", m, n)
		}
		for ; next < m.Pos; next++ {
			out = append(out, a.Reference.At(next))
		}
		switch m.Kind {
		case Insertion:
			out = append(out, m.To)
		case Substitution, Deletion:
			if m.Pos == n {
				return nil, fmt.Errorf("mutation %s past reference end", m)
			}
			if got := a.Reference.At(m.Pos); got != m.From {
				return nil, fmt.Errorf("mutation %s: reference has %c", m, got)
			}
			if m.Kind == Substitution {
				out = append(out, m.To)
			}
			next++
		default:
			return nil, fmt.Errorf("mutation %s: unsupported kind", m)
		}
	}
	for ; next < n; next++ {
		out = append(out, a.Reference.At(next))
	}
	return out, nil
}
