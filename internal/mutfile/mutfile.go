// internal/mutfile/mutfile.go
package mutfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"episcore-core/seq"
)

// Entry is one precomputed comparison: a reference plus the mutations that
// turn it into the query.
type Entry struct {
	Line        int
	QueryID     string
	ReferenceID string
	RefSeq      []byte // empty: resolve ReferenceID against --reference
	Mutations   []seq.Mutation
}

// Load reads a whitespace-separated mutation file:
//
//	ref_id  ref_seq  mutations  [query_id]
//
// ref_seq "-" takes the sequence from the loaded references; mutations "-"
// means an exact match. query_id defaults to ref_id. Blank lines and lines
// starting with '#' are skipped. A path of "-" reads standard input.
func Load(path string) ([]Entry, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = fh.Close() }()
		r = fh
	}
	list, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", path, err)
	}
	return list, nil
}

// Parse is Load over an already-open reader. Errors carry the line number.
func Parse(r io.Reader) ([]Entry, error) {
	var list []Entry
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if len(f) < 3 || len(f) > 4 {
			return nil, fmt.Errorf("%d: bad field count %d (want ref_id ref_seq mutations [query_id])", ln, len(f))
		}
		muts, err := seq.ParseMutations(f[2])
		if err != nil {
			return nil, fmt.Errorf("%d: %w", ln, err)
		}
		e := Entry{Line: ln, ReferenceID: f[0], QueryID: f[0], Mutations: muts}
		if f[1] != "-" {
			e.RefSeq = []byte(strings.ToUpper(f[1]))
		}
		if len(f) == 4 {
			e.QueryID = f[3]
		}
		list = append(list, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Check resolves every entry's reference and replays its mutations, so bad
// input is reported before any scoring starts. refSeq looks up a loaded
// reference by ID. Errors read "path:line: ...".
func Check(path string, list []Entry, refSeq func(id string) (seq.Seq, bool)) error {
	for _, e := range list {
		ref := seq.FromBytes(e.RefSeq)
		if len(e.RefSeq) == 0 {
			s, ok := refSeq(e.ReferenceID)
			if !ok {
				return fmt.Errorf("%s:%d: unknown reference %q", path, e.Line, e.ReferenceID)
			}
			ref = s
		}
		if _, err := (seq.Alignment{Reference: ref, Mutations: e.Mutations}).Apply(); err != nil {
			return fmt.Errorf("%s:%d: reference %q: %w", path, e.Line, e.ReferenceID, err)
		}
	}
	return nil
}
