// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"

	"episcore/internal/version"
)

// installUsage sets a grouped Usage() handler on fs. Defaults are read back
// from the registered flags so the text cannot drift.
func installUsage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – positionally weighted epitope/receptor scoring\n\n", name)
		fmt.Fprintf(out, "Version: %s\n\n", version.String())
		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s -r refs.fa [flags] queries.fa [more.fa ...]\n", name)
		fmt.Fprintf(out, "  %s -r refs.fa --mutations muts.tsv [flags]\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -r, --reference file        Reference FASTA (repeatable, gzip ok)")
		fmt.Fprintln(out, "  -q, --query file            Query FASTA (repeatable) or '-' for STDIN; also positional")
		fmt.Fprintln(out, "      --mutations file        Precomputed mutations TSV (ref_id ref_seq mutations [query_id])")

		fmt.Fprintln(out, "\nScoring:")
		fmt.Fprintf(out, "  -m, --matrix string         blosum62 | nuc44 | path to NCBI matrix [%s]\n", def("matrix"))
		fmt.Fprintf(out, "      --gap float             Gap penalty [%s]\n", def("gap"))
		fmt.Fprintf(out, "      --sigma float           Width of the positional Gaussian (> 0) [%s]\n", def("sigma"))
		fmt.Fprintf(out, "      --mu float              Centre offset of the positional Gaussian [%s]\n", def("mu"))
		fmt.Fprintf(out, "      --threshold float       Minimum score for a hit to pass [%s]\n", def("threshold"))
		fmt.Fprintf(out, "      --all                   Report hits below the threshold too [%s]\n", def("all"))
		fmt.Fprintf(out, "      --top int               Keep the N best references per query (0=all) [%s]\n", def("top"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Worker threads (0=all CPUs) [%s]\n", def("threads"))
		fmt.Fprintf(out, "      --unique                Skip queries whose sequence was already seen [%s]\n", def("unique"))
		fmt.Fprintf(out, "      --dedupe-cap int        Sequences remembered by --unique (0=default) [%s]\n", def("dedupe-cap"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --output string         Output: text | json | jsonl | fasta [%s]\n", def("output"))
		fmt.Fprintf(out, "      --sort                  Sort by query, then score [%s]\n", def("sort"))
		fmt.Fprintf(out, "      --rank                  Sort by score across all queries [%s]\n", def("rank"))
		fmt.Fprintf(out, "      --no-header             Suppress header line [%s]\n", def("no-header"))
		fmt.Fprintf(out, "      --alignment             Add the mutation list column (text) [%s]\n", def("alignment"))
		fmt.Fprintf(out, "      --pretty                ASCII alignment block under each row (text) [%s]\n", def("pretty"))
		fmt.Fprintf(out, "      --no-match-exit-code int  Exit code when no hit passes [%s]\n", def("no-match-exit-code"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintf(out, "      --quiet                 Suppress non-essential warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}
