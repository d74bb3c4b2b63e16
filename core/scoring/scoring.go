// Package scoring implements the positionally weighted alignment score.
//
// Every residue of a reference contributes its self-match score multiplied by
// a Gaussian weight centred on the middle of the sequence; each mutation of an
// alignment then adds its weighted score delta. The package is pure: it never
// aligns, reads files, or validates parameters.
package scoring

import (
	"episcore-core/matrix"
	"episcore-core/seq"
)

// Scorer is what ranking code needs from a scoring configuration.
type Scorer interface {
	BaseScore(ref seq.Sequence) float64
	Score(mutations []seq.Mutation, baseScore float64, refLength int) float64
	ScoreThreshold() float64
}

// Scoring holds the Gaussian parameters, the acceptance threshold and the
// substitution lookup. It is immutable and safe for concurrent use.
type Scoring struct {
	lookup    matrix.Lookup
	sigma     float64
	mu        float64
	threshold float64
	weights   *weightCache
}

var _ Scorer = (*Scoring)(nil)

// New returns a Scoring. sigma must be > 0; this is not checked.
func New(lookup matrix.Lookup, sigma, mu, threshold float64) *Scoring {
	return &Scoring{
		lookup:    lookup,
		sigma:     sigma,
		mu:        mu,
		threshold: threshold,
		weights:   newWeightCache(sigma, mu),
	}
}

// WithScoreThreshold returns a copy that differs only in its threshold.
func (s *Scoring) WithScoreThreshold(threshold float64) *Scoring {
	c := *s
	c.threshold = threshold
	return &c
}

func (s *Scoring) Lookup() matrix.Lookup   { return s.lookup }
func (s *Scoring) Sigma() float64          { return s.sigma }
func (s *Scoring) Mu() float64             { return s.mu }
func (s *Scoring) ScoreThreshold() float64 { return s.threshold }

// Weight returns the positional weight of pos in a sequence of the given
// length. A non-positive length yields 0.
func (s *Scoring) Weight(pos, length int) float64 {
	if length <= 0 {
		return 0
	}
	if pos >= 0 && pos < length {
		return s.weights.table(length)[pos]
	}
	return s.weights.weight(pos, length)
}

// BaseScore is the weighted self-match score of ref.
func (s *Scoring) BaseScore(ref seq.Sequence) float64 {
	if ref == nil {
		return 0
	}
	n := ref.Len()
	if n == 0 {
		return 0
	}
	w := s.weights.table(n)
	score := 0.0
	for i := 0; i < n; i++ {
		r := ref.At(i)
		score += s.lookup.Score(r, r) * w[i]
	}
	return score
}

// Score applies the weighted delta of every mutation to baseScore.
//
// The weight of a mutation is taken at its index in the list, not at
// Mutation.Pos. The accumulator starts at baseScore and the result adds
// baseScore once more, so an alignment without mutations scores
// 2*baseScore. Thresholds downstream are calibrated against this.
func (s *Scoring) Score(mutations []seq.Mutation, baseScore float64, refLength int) float64 {
	if refLength <= 0 {
		return 0
	}
	gap := s.lookup.GapPenalty()
	score := baseScore
	for i, m := range mutations {
		var delta float64
		switch m.Kind {
		case seq.Insertion:
			delta = gap
		case seq.Deletion:
			delta = gap - s.lookup.Score(m.From, m.From)
		default:
			delta = s.lookup.Score(m.From, m.To) - s.lookup.Score(m.From, m.From)
		}
		score += delta * s.Weight(i, refLength)
	}
	return baseScore + score
}

// ScoreAlignment scores a full alignment against its own reference.
func (s *Scoring) ScoreAlignment(a seq.Alignment) float64 {
	n := 0
	if a.Reference != nil {
		n = a.Reference.Len()
	}
	return s.Score(a.Mutations, s.BaseScore(a.Reference), n)
}
