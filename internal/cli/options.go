// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"strings"

	"episcore/internal/cliutil"
	"episcore/internal/output"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	References    []string
	Queries       []string
	MutationsFile string

	// Scoring
	Matrix    string
	Gap       float64
	Sigma     float64
	Mu        float64
	Threshold float64
	All       bool
	TopN      int

	// Performance
	Threads   int
	Unique    bool
	DedupeCap int

	// Output
	Output          string
	Sort            bool
	Rank            bool
	Header          bool // true unless --no-header
	Alignment       bool
	Pretty          bool
	NoMatchExitCode int

	// Misc
	Quiet   bool
	Version bool
}

// sliceValue appends each value to a *[]string (for --reference/-r, --query/-q)
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}
func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}

// register wires all flags onto fs and returns the no-header and help bools.
func register(fs *flag.FlagSet, o *Options) (noHeader, help *bool) {
	// Input
	refVal := &sliceValue{dst: &o.References}
	fs.Var(refVal, "reference", "reference FASTA file(s) (repeatable)")
	fs.Var(refVal, "r", "alias of --reference")
	qVal := &sliceValue{dst: &o.Queries}
	fs.Var(qVal, "query", "query FASTA file(s) (repeatable) or '-'")
	fs.Var(qVal, "q", "alias of --query")
	fs.StringVar(&o.MutationsFile, "mutations", "", "precomputed mutations TSV")

	// Scoring
	fs.StringVar(&o.Matrix, "matrix", "blosum62", "substitution matrix: blosum62 | nuc44 | path")
	fs.StringVar(&o.Matrix, "m", "blosum62", "alias of --matrix")
	fs.Float64Var(&o.Gap, "gap", -4, "gap penalty")
	fs.Float64Var(&o.Sigma, "sigma", 1, "positional Gaussian width (> 0)")
	fs.Float64Var(&o.Mu, "mu", 0, "positional Gaussian centre offset")
	fs.Float64Var(&o.Threshold, "threshold", 0, "minimum passing score")
	fs.BoolVar(&o.All, "all", false, "report hits below the threshold too")
	fs.IntVar(&o.TopN, "top", 0, "keep the N best references per query (0 = all)")

	// Performance
	fs.IntVar(&o.Threads, "threads", 0, "worker threads (0 = all CPUs)")
	fs.IntVar(&o.Threads, "t", 0, "alias of --threads")
	fs.BoolVar(&o.Unique, "unique", false, "skip repeated query sequences")
	fs.IntVar(&o.DedupeCap, "dedupe-cap", 0, "sequences remembered by --unique (0 = default)")

	// Output
	fs.StringVar(&o.Output, "output", output.FormatText, "output: text | json | jsonl | fasta")
	fs.StringVar(&o.Output, "o", output.FormatText, "alias of --output")
	fs.BoolVar(&o.Sort, "sort", false, "sort by query then score")
	fs.BoolVar(&o.Rank, "rank", false, "sort by score across queries")
	noHeader = new(bool)
	fs.BoolVar(noHeader, "no-header", false, "suppress header line")
	fs.BoolVar(&o.Alignment, "alignment", false, "add the mutation list column")
	fs.BoolVar(&o.Pretty, "pretty", false, "ASCII alignment block (text)")
	fs.IntVar(&o.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no hit passes")

	// Misc
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress non-essential warnings")
	fs.BoolVar(&o.Version, "v", false, "print version and exit")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	help = new(bool)
	fs.BoolVar(help, "h", false, "show help")
	fs.BoolVar(help, "help", false, "show help")
	return noHeader, help
}

// ParseArgs registers and parses all flags. Positional arguments are query
// FASTA files (globs expanded). It returns flag.ErrHelp when help was asked.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	noHeader, help := register(fs, &opt)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if *help {
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !*noHeader

	posArgs = append(posArgs, fs.Args()...)
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return opt, err
		}
		opt.Queries = append(opt.Queries, exp...)
	}
	return opt, Validate(&opt)
}

// Validate applies the CLI invariants.
func Validate(o *Options) error {
	usingMuts := o.MutationsFile != ""
	switch {
	case usingMuts && len(o.Queries) > 0:
		return errors.New("--mutations conflicts with query FASTA input")
	case !usingMuts && len(o.Queries) == 0:
		return errors.New("provide query FASTA file(s) or --mutations")
	case !usingMuts && len(o.References) == 0:
		return errors.New("at least one --reference file is required")
	}
	if cliutil.CountStdin(o.Queries)+cliutil.CountStdin(o.References)+cliutil.CountStdin([]string{o.MutationsFile}) > 1 {
		return errors.New("'-' (stdin) may be given only once")
	}
	if !(o.Sigma > 0) || math.IsInf(o.Sigma, 0) {
		return fmt.Errorf("--sigma must be a positive number, got %v", o.Sigma)
	}
	if math.IsNaN(o.Mu) || math.IsNaN(o.Gap) || math.IsNaN(o.Threshold) {
		return errors.New("--mu, --gap and --threshold must be numbers")
	}
	if o.TopN < 0 {
		return errors.New("--top must be ≥ 0")
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.DedupeCap < 0 {
		return errors.New("--dedupe-cap must be ≥ 0")
	}
	switch o.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL, output.FormatFASTA:
	default:
		return fmt.Errorf("invalid --output %q", o.Output)
	}
	if o.NoMatchExitCode < 0 || o.NoMatchExitCode > 255 {
		return errors.New("--no-match-exit-code must be between 0 and 255")
	}
	return nil
}
