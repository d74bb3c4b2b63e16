package cmdutil

import (
	"context"
	"fmt"

	"episcore/internal/common"
	"episcore/internal/engine"
	"episcore/internal/mutfile"
	"episcore/internal/pipeline"
)

// RunStream runs the shared pipeline, trims each query's hits to the topN best
// (0 = all), applies a visitor to the rest and streams results via send.
// It returns the number of kept outputs and the first error encountered.
func RunStream[T any](
	ctx context.Context,
	cfg pipeline.Config,
	queryFiles []string,
	cmp pipeline.Comparer,
	topN int,
	visit func(engine.Hit) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	err := pipeline.ForEachBatch(ctx, cfg, queryFiles, cmp, func(hs []engine.Hit) error {
		for _, h := range common.TopN(hs, topN) {
			keep, out, vErr := visit(h)
			if vErr != nil {
				return vErr
			}
			if !keep {
				continue
			}
			if err := send(out); err != nil {
				return err
			}
			total++
		}
		return nil
	})
	return total, err
}

// RunEntries scores precomputed mutation entries in file order, applies the
// visitor and streams results via send. A bad entry aborts the run with its
// line number.
func RunEntries[T any](
	ctx context.Context,
	eng *engine.Engine,
	entries []mutfile.Entry,
	visit func(engine.Hit) (bool, T, error),
	send func(T) error,
) (int, error) {
	total := 0
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		h, err := eng.ScoreEntry(e.QueryID, e.ReferenceID, e.RefSeq, e.Mutations)
		if err != nil {
			return total, fmt.Errorf("line %d: %w", e.Line, err)
		}
		keep, out, err := visit(h)
		if err != nil {
			return total, err
		}
		if !keep {
			continue
		}
		if err := send(out); err != nil {
			return total, err
		}
		total++
	}
	return total, nil
}
