// internal/runutil/runutil.go
package runutil

import "runtime"

// ResolveThreads maps the --threads flag to a worker count: 0 (or less)
// means all CPUs.
func ResolveThreads(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ComputeNeedSeq tells the engine whether to populate Hit.QuerySeq and
// Hit.ReferenceSeq. FASTA needs the query, pretty text needs both sides.
func ComputeNeedSeq(output string, pretty bool) bool {
	if output == "fasta" {
		return true
	}
	if output == "text" && pretty {
		return true
	}
	return false
}
