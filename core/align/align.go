// core/align/align.go
package align

import (
	"episcore-core/matrix"
	"episcore-core/seq"
)

// Result is an alignment plus its raw (unweighted) alignment score.
type Result struct {
	seq.Alignment
	Score float64
}

const (
	fromDiag uint8 = iota
	fromUp         // consume reference only (deletion)
	fromLeft       // consume query only (insertion)
)

// Global runs Needleman-Wunsch with a linear gap penalty and returns the
// mutations turning ref into query, ordered by reference position.
// Ties prefer a diagonal step, then a deletion, then an insertion.
func Global(ref, query seq.Sequence, lookup matrix.Lookup) Result {
	n, m := lenOf(ref), lenOf(query)
	gap := lookup.GapPenalty()

	score := make([][]float64, n+1)
	dir := make([][]uint8, n+1)
	for i := range score {
		score[i] = make([]float64, m+1)
		dir[i] = make([]uint8, m+1)
		score[i][0] = gap * float64(i)
		dir[i][0] = fromUp
	}
	for j := 1; j <= m; j++ {
		score[0][j] = gap * float64(j)
		dir[0][j] = fromLeft
	}

	for i := 1; i <= n; i++ {
		a := ref.At(i - 1)
		for j := 1; j <= m; j++ {
			best, d := score[i-1][j-1]+lookup.Score(a, query.At(j-1)), fromDiag
			if up := score[i-1][j] + gap; up > best {
				best, d = up, fromUp
			}
			if left := score[i][j-1] + gap; left > best {
				best, d = left, fromLeft
			}
			score[i][j] = best
			dir[i][j] = d
		}
	}

	// Trace back from the bottom-right corner; mutations come out reversed.
	var muts []seq.Mutation
	i, j := n, m
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && dir[i][j] == fromDiag:
			if a, b := ref.At(i-1), query.At(j-1); a != b {
				muts = append(muts, seq.Sub(i-1, a, b))
			}
			i--
			j--
		case i > 0 && (j == 0 || dir[i][j] == fromUp):
			muts = append(muts, seq.Del(i-1, ref.At(i-1)))
			i--
		default:
			muts = append(muts, seq.Ins(i, query.At(j-1)))
			j--
		}
	}
	for l, r := 0, len(muts)-1; l < r; l, r = l+1, r-1 {
		muts[l], muts[r] = muts[r], muts[l]
	}

	return Result{
		Alignment: seq.Alignment{Reference: ref, Query: query, Mutations: muts},
		Score:     score[n][m],
	}
}

func lenOf(s seq.Sequence) int {
	if s == nil {
		return 0
	}
	return s.Len()
}
