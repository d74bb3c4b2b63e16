// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"episcore-core/scoring"
	"episcore/internal/cmdutil"
	"episcore/internal/engine"
	"episcore/internal/mutfile"
	"episcore/internal/pipeline"
	"episcore/internal/runutil"
	"episcore/internal/writers"
)

// Options is everything Run needs once the CLI has been resolved.
type Options struct {
	Scoring    *scoring.Scoring
	References []engine.Reference

	// FromMutations selects Entries over QueryFiles as the input.
	QueryFiles    []string
	Entries       []mutfile.Entry
	FromMutations bool

	TopN      int
	Threads   int
	Unique    bool
	DedupeCap int

	Quiet           bool
	NoMatchExitCode int
}

type VisitorFunc[T any] func(engine.Hit) (keep bool, out T, err error)

type WriterFactory[T any] interface {
	NeedSeq() bool
	Start(out io.Writer, bufSize int) (chan<- T, <-chan error)
}

// Run builds the engine, streams hits through visit into the writer and maps
// the outcome to an exit code: 0 ok, NoMatchExitCode when nothing was
// written, 3 runtime/output error, 130 canceled.
func Run[T any](
	parent context.Context,
	stdout, stderr io.Writer,
	o Options,
	visit VisitorFunc[T],
	wf WriterFactory[T],
) int {
	outw := bufio.NewWriter(stdout)

	thr := runutil.ResolveThreads(o.Threads)
	if o.FromMutations && (o.Unique || o.TopN > 0) {
		cmdutil.Warnf(stderr, o.Quiet, "--unique and --top do not apply to --mutations input; ignoring")
	}

	eng := engine.New(o.Scoring, engine.Config{NeedSeq: wf.NeedSeq()}, o.References...)

	inCh, writeErr := wf.Start(outw, thr*4)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	send := func(x T) error {
		select {
		case inCh <- x:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	var (
		total int
		perr  error
	)
	if o.FromMutations {
		total, perr = cmdutil.RunEntries[T](ctx, eng, o.Entries, visit, send)
	} else {
		total, perr = cmdutil.RunStream[T](
			ctx,
			pipeline.Config{Threads: thr, Unique: o.Unique, DedupeCap: o.DedupeCap},
			o.QueryFiles,
			eng,
			o.TopN,
			visit,
			send,
		)
	}

	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return 0
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return 3
	}

	if perr != nil {
		if errors.Is(perr, context.Canceled) {
			return 130
		}
		fmt.Fprintln(stderr, perr)
		return 3
	}
	if total == 0 {
		return o.NoMatchExitCode
	}
	return 0
}
