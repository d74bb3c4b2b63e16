// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"episcore-core/matrix"
	"episcore-core/scoring"
	"episcore-core/seq"
	"episcore/internal/appcore"
	"episcore/internal/cli"
	"episcore/internal/cmdutil"
	"episcore/internal/engine"
	"episcore/internal/fasta"
	"episcore/internal/mutfile"
	"episcore/internal/version"
	"episcore/internal/visitors"
	"episcore/internal/writers"
)

// flushOr flushes outw and maps the result to an exit code, treating a
// broken pipe as success.
func flushOr(outw *bufio.Writer, stderr io.Writer, code int) int {
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return 0
	} else if e != nil {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}
	return code
}

func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := cli.NewFlagSet("episcore")
	fs.SetOutput(io.Discard)

	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		fs.SetOutput(outw)
		if errors.Is(err, flag.ErrHelp) {
			fs.Usage()
			return flushOr(outw, stderr, 0)
		}
		_, _ = fmt.Fprintln(stderr, err)
		fs.Usage()
		return flushOr(outw, stderr, 2)
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "episcore version %s\n", version.String())
		return flushOr(outw, stderr, 0)
	}

	m, err := matrix.Named(opts.Matrix)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	lookup := matrix.LinearGap{Matrix: m, Gap: opts.Gap}
	sc := scoring.New(lookup, opts.Sigma, opts.Mu, opts.Threshold)

	refs, err := loadReferences(parent, opts.References, m, stderr, opts.Quiet)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	coreOpts := appcore.Options{
		Scoring:         sc,
		References:      refs,
		QueryFiles:      opts.Queries,
		TopN:            opts.TopN,
		Threads:         opts.Threads,
		Unique:          opts.Unique,
		DedupeCap:       opts.DedupeCap,
		Quiet:           opts.Quiet,
		NoMatchExitCode: opts.NoMatchExitCode,
	}
	if opts.MutationsFile != "" {
		entries, err := mutfile.Load(opts.MutationsFile)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		if len(entries) == 0 {
			cmdutil.Warnf(stderr, opts.Quiet, "%s: no mutation entries", opts.MutationsFile)
		}
		if err := mutfile.Check(opts.MutationsFile, entries, referenceLookup(refs)); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		coreOpts.Entries = entries
		coreOpts.FromMutations = true
	}

	if opts.Pretty && opts.Output != "text" {
		cmdutil.Warnf(stderr, opts.Quiet, "--pretty only applies to text output; ignoring")
	}
	writer := appcore.NewHitWriterFactory(opts.Output, opts.Sort, opts.Rank, opts.Header, opts.Alignment, opts.Pretty, lookup)
	return appcore.Run[engine.Hit](parent, stdout, stderr, coreOpts, visitors.Threshold{All: opts.All}.Visit, writer)
}

// loadReferences reads every reference FASTA, warning about records the
// scorer cannot use well: empty sequences, repeated IDs and residues missing
// from the matrix.
func loadReferences(ctx context.Context, paths []string, m *matrix.Matrix, stderr io.Writer, quiet bool) ([]engine.Reference, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	recs, err := fasta.ReadAll(ctx, paths...)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		cmdutil.Warnf(stderr, quiet, "reference files contain no records")
	}
	refs := make([]engine.Reference, 0, len(recs))
	seen := make(map[string]struct{}, len(recs))
	unknown := 0
	for _, r := range recs {
		if len(r.Seq) == 0 {
			cmdutil.Warnf(stderr, quiet, "reference %q is empty; it scores 0 against everything", r.ID)
		}
		if _, dup := seen[r.ID]; dup {
			cmdutil.Warnf(stderr, quiet, "duplicate reference ID %q", r.ID)
		}
		seen[r.ID] = struct{}{}
		ref := engine.NewReference(r.ID, r.Desc, r.Seq)
		for _, c := range ref.Seq {
			if !m.Has(c) {
				unknown++
			}
		}
		refs = append(refs, ref)
	}
	if unknown > 0 {
		cmdutil.Warnf(stderr, quiet, "%d reference residue(s) are not in matrix %s", unknown, m.Name)
	}
	return refs, nil
}

// referenceLookup resolves IDs the way the engine does: the first record
// with an ID wins.
func referenceLookup(refs []engine.Reference) func(string) (seq.Seq, bool) {
	byID := make(map[string]seq.Seq, len(refs))
	for _, r := range refs {
		if _, dup := byID[r.ID]; !dup {
			byID[r.ID] = r.Seq
		}
	}
	return func(id string) (seq.Seq, bool) {
		s, ok := byID[id]
		return s, ok
	}
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
