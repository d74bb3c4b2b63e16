// internal/common/sort.go
package common

import (
	"sort"

	"episcore/internal/engine"
)

// LessHit defines a stable order for hits (for --sort): query, then best
// score first, then reference and source file.
func LessHit(a, b engine.Hit) bool {
	if a.QueryID != b.QueryID {
		return a.QueryID < b.QueryID
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.ReferenceID != b.ReferenceID {
		return a.ReferenceID < b.ReferenceID
	}
	return a.SourceFile < b.SourceFile
}

func SortHits(hs []engine.Hit) {
	sort.SliceStable(hs, func(i, j int) bool { return LessHit(hs[i], hs[j]) })
}

// SortHitsByScore orders by score (desc) across queries, falling back to LessHit.
func SortHitsByScore(hs []engine.Hit) {
	sort.SliceStable(hs, func(i, j int) bool {
		if hs[i].Score != hs[j].Score {
			return hs[i].Score > hs[j].Score
		}
		return LessHit(hs[i], hs[j])
	})
}

// TopN returns the n best-scoring hits of one query's batch, best first.
// n <= 0 keeps everything in the original order. hs is not modified.
func TopN(hs []engine.Hit, n int) []engine.Hit {
	if n <= 0 || len(hs) == 0 {
		return hs
	}
	out := append([]engine.Hit(nil), hs...)
	SortHitsByScore(out)
	if len(out) > n {
		out = out[:n]
	}
	return out
}
