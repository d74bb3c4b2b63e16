// internal/engine/hit.go
package engine

import "episcore-core/seq"

// Hit is one scored (query, reference) comparison.
type Hit struct {
	QueryID       string
	ReferenceID   string
	ReferenceDesc string
	SourceFile    string

	Score      float64 // positionally weighted score
	BaseScore  float64 // weighted self-score of the reference
	AlignScore float64 // raw alignment score; 0 for precomputed mutations
	Passed     bool    // Score >= threshold

	Mutations []seq.Mutation

	// Filled only when the engine is configured with NeedSeq.
	QuerySeq     string
	ReferenceSeq string
}

// Counts tallies the mutations by kind.
func (h Hit) Counts() (sub, ins, del int) {
	for _, m := range h.Mutations {
		switch m.Kind {
		case seq.Substitution:
			sub++
		case seq.Insertion:
			ins++
		case seq.Deletion:
			del++
		}
	}
	return
}
