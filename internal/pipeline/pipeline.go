// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"episcore/internal/engine"
	"episcore/internal/fasta"
	"episcore/internal/runutil"
)

// Config controls the query pipeline.
type Config struct {
	Threads   int  // number of worker goroutines (>=1)
	Unique    bool // skip queries whose sequence was already seen
	DedupeCap int  // capacity of the --unique set (0 = default)
}

// ForEachBatch streams every record in queryFiles through cmp and calls visit
// once per query with that query's hits. visit runs on a single goroutine, so
// it needs no locking. Batches arrive in completion order, not input order.
// It returns the first error encountered (including context cancellation).
func ForEachBatch(
	ctx context.Context,
	cfg Config,
	queryFiles []string,
	cmp Comparer,
	visit func([]engine.Hit) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	type job struct {
		rec        fasta.Record
		sourceFile string
	}
	jobs := make(chan job, cfg.Threads*2)
	results := make(chan []engine.Hit, cfg.Threads*2)

	g, gctx := errgroup.WithContext(ctx)

	// Feed work
	g.Go(func() error {
		defer close(jobs)
		var seen *runutil.LRUSet[string]
		if cfg.Unique {
			seen = runutil.NewLRUSet[string](cfg.DedupeCap)
		}
		for _, fa := range queryFiles {
			err := fasta.StreamPath(gctx, fa, func(rec fasta.Record) error {
				if seen != nil && seen.Add(string(rec.Seq)) {
					return nil
				}
				select {
				case jobs <- job{rec: rec, sourceFile: fa}:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			})
			if err != nil {
				return err
			}
		}
		return nil
	})

	// Workers
	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		g.Go(func() error {
			defer wg.Done()
			for j := range jobs {
				hits := cmp.CompareBatch(j.rec.ID, j.rec.Seq)
				for i := range hits {
					hits[i].SourceFile = j.sourceFile
				}
				select {
				case results <- hits:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	// Collector
	g.Go(func() error {
		for hs := range results {
			if len(hs) == 0 {
				continue
			}
			if err := visit(hs); err != nil {
				return err
			}
		}
		return nil
	})

	err := g.Wait()
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
