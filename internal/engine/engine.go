// internal/engine/engine.go
package engine

import (
	"fmt"

	"episcore-core/align"
	"episcore-core/scoring"
	"episcore-core/seq"
)

// Reference is a database entry with its base score precomputed.
type Reference struct {
	ID   string
	Desc string
	Seq  seq.Seq
	Base float64
}

// Config holds comparison options.
type Config struct {
	NeedSeq bool // fill Hit.QuerySeq / Hit.ReferenceSeq
}

// Engine compares queries with a fixed reference set. It is safe for
// concurrent use once built.
type Engine struct {
	sc   *scoring.Scoring
	refs []Reference
	byID map[string]int // first reference with each ID
	cfg  Config
}

// New builds an Engine and computes every reference's base score once.
func New(sc *scoring.Scoring, cfg Config, refs ...Reference) *Engine {
	e := &Engine{sc: sc, cfg: cfg, refs: make([]Reference, len(refs)), byID: make(map[string]int, len(refs))}
	for i, r := range refs {
		r.Base = sc.BaseScore(r.Seq)
		e.refs[i] = r
		if _, dup := e.byID[r.ID]; !dup {
			e.byID[r.ID] = i
		}
	}
	return e
}

// NewReference is a convenience for callers holding raw bytes.
func NewReference(id, desc string, residues []byte) Reference {
	return Reference{ID: id, Desc: desc, Seq: seq.FromBytes(residues)}
}

// Scoring returns the engine's scoring configuration.
func (e *Engine) Scoring() *scoring.Scoring { return e.sc }

// References returns the number of loaded references.
func (e *Engine) References() int { return len(e.refs) }

// CompareBatch aligns query against every reference, in reference order.
func (e *Engine) CompareBatch(queryID string, query []byte) []Hit {
	if len(e.refs) == 0 {
		return nil
	}
	q := seq.FromBytes(query)
	out := make([]Hit, 0, len(e.refs))
	for i := range e.refs {
		out = append(out, e.Compare(&e.refs[i], queryID, q))
	}
	return out
}

// Compare aligns one query with one reference and scores the result.
func (e *Engine) Compare(ref *Reference, queryID string, q seq.Seq) Hit {
	res := align.Global(ref.Seq, q, e.sc.Lookup())
	h := e.hit(ref, queryID, res.Mutations)
	h.AlignScore = res.Score
	if e.cfg.NeedSeq {
		h.QuerySeq = q.String()
	}
	return h
}

// ScoreMutations scores a precomputed mutation list against ref.
func (e *Engine) ScoreMutations(ref *Reference, queryID string, muts []seq.Mutation) Hit {
	h := e.hit(ref, queryID, muts)
	if e.cfg.NeedSeq {
		if q, err := (seq.Alignment{Reference: ref.Seq, Mutations: muts}).Apply(); err == nil {
			h.QuerySeq = q.String()
		}
	}
	return h
}

// Reference looks up a loaded reference by ID.
func (e *Engine) Reference(id string) (*Reference, bool) {
	i, ok := e.byID[id]
	if !ok {
		return nil, false
	}
	return &e.refs[i], true
}

// ScoreEntry scores muts against the reference named refID. A non-empty
// refSeq is used as an ad-hoc reference instead of a loaded one. The
// mutations must apply cleanly to the reference.
func (e *Engine) ScoreEntry(queryID, refID string, refSeq []byte, muts []seq.Mutation) (Hit, error) {
	var ref *Reference
	if len(refSeq) > 0 {
		r := NewReference(refID, "", refSeq)
		r.Base = e.sc.BaseScore(r.Seq)
		ref = &r
	} else {
		var ok bool
		if ref, ok = e.Reference(refID); !ok {
			return Hit{}, fmt.Errorf("unknown reference %q", refID)
		}
	}
	if _, err := (seq.Alignment{Reference: ref.Seq, Mutations: muts}).Apply(); err != nil {
		return Hit{}, fmt.Errorf("reference %q: %w", refID, err)
	}
	return e.ScoreMutations(ref, queryID, muts), nil
}

func (e *Engine) hit(ref *Reference, queryID string, muts []seq.Mutation) Hit {
	score := e.sc.Score(muts, ref.Base, ref.Seq.Len())
	h := Hit{
		QueryID:       queryID,
		ReferenceID:   ref.ID,
		ReferenceDesc: ref.Desc,
		Score:         score,
		BaseScore:     ref.Base,
		Passed:        score >= e.sc.ScoreThreshold(),
		Mutations:     muts,
	}
	if e.cfg.NeedSeq {
		h.ReferenceSeq = ref.Seq.String()
	}
	return h
}
