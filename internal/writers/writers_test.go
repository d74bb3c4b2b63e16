package writers

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"
	"testing"

	"episcore-core/matrix"
	"episcore-core/seq"
	"episcore/internal/engine"
	"episcore/pkg/api"
)

func hits() []engine.Hit {
	return []engine.Hit{
		{SourceFile: "q.fa", QueryID: "q2", ReferenceID: "r1", Score: 1.5, QuerySeq: "CAS"},
		{SourceFile: "q.fa", QueryID: "q1", ReferenceID: "r1", Score: 3.25, Passed: true, QuerySeq: "CASS",
			ReferenceSeq: "CASS"},
	}
}

func run(t *testing.T, opt HitOptions, list []engine.Hit) string {
	t.Helper()
	var buf bytes.Buffer
	in, done := StartHitWriter(&buf, opt, 2)
	for _, h := range list {
		in <- h
	}
	close(in)
	if err := <-done; err != nil {
		t.Fatalf("writer err: %v", err)
	}
	return buf.String()
}

func TestHitWriter_TextSortAndHeader(t *testing.T) {
	out := run(t, HitOptions{Format: "text", Sort: true, Header: true, Mutations: true}, hits())
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.HasSuffix(lines[0], "\tmutations") {
		t.Fatalf("unexpected TSV: %q", out)
	}
	if !strings.Contains(lines[1], "\tq1\t") || !strings.Contains(lines[1], "\t3.2500\t") {
		t.Fatalf("q1 should sort first: %q", lines[1])
	}
}

func TestHitWriter_RankByScore(t *testing.T) {
	list := append(hits(), engine.Hit{QueryID: "q0", ReferenceID: "r9", Score: 0.5})
	out := run(t, HitOptions{Format: "text", Rank: true}, list)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 || !strings.Contains(lines[0], "\tq1\t") || !strings.Contains(lines[2], "\tq0\t") {
		t.Fatalf("rank order wrong:\n%s", out)
	}
}

func TestHitWriter_TextPretty(t *testing.T) {
	opt := HitOptions{Format: "text", Pretty: true, Lookup: matrix.LinearGap{Matrix: matrix.BLOSUM62(), Gap: -4}}
	h := engine.Hit{QueryID: "q", ReferenceID: "r", ReferenceSeq: "CASS", QuerySeq: "CATS",
		Mutations: []seq.Mutation{seq.Sub(2, 'S', 'T')}}
	out := run(t, opt, []engine.Hit{h})
	if !strings.Contains(out, "# ref   CASS\n") || !strings.Contains(out, "# query CATS\n") {
		t.Fatalf("pretty block missing:\n%s", out)
	}
}

func TestHitWriter_JSON(t *testing.T) {
	out := run(t, HitOptions{Format: "json", Sort: true}, hits())
	var got []api.HitV1
	if err := json.Unmarshal([]byte(out), &got); err != nil || len(got) != 2 {
		t.Fatalf("json decode: %v len=%d", err, len(got))
	}
	if got[0].QueryID != "q1" {
		t.Fatalf("sorted JSON should start with q1: %+v", got[0])
	}
}

func TestHitWriter_JSONLStreamsValidV1(t *testing.T) {
	out := run(t, HitOptions{Format: "jsonl"}, hits())
	sc := bufio.NewScanner(strings.NewReader(out))
	var n int
	for sc.Scan() {
		n++
		var v api.HitV1
		if err := json.Unmarshal(sc.Bytes(), &v); err != nil {
			t.Fatalf("bad json line %d: %v\n%s", n, err, sc.Text())
		}
	}
	if n != 2 {
		t.Fatalf("want 2 lines, got %d", n)
	}
}

func TestHitWriter_FASTA(t *testing.T) {
	out := run(t, HitOptions{Format: "fasta"}, hits())
	if strings.Count(out, ">") != 2 || !strings.Contains(out, "\nCASS\n") {
		t.Fatalf("unexpected FASTA:\n%s", out)
	}
}

func TestUnknownHitFormatError(t *testing.T) {
	var b bytes.Buffer
	in, done := StartHitWriter(&b, HitOptions{Format: "nope-format"}, 1)
	in <- engine.Hit{} // must not block even though the handler failed
	close(in)
	err := <-done
	if err == nil || !strings.Contains(err.Error(), "unknown hit format") {
		t.Fatalf("want 'unknown hit format' error, got: %v", err)
	}
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestHitWriter_WriteErrorDrains(t *testing.T) {
	in, done := StartHitWriter(failWriter{}, HitOptions{Format: "text", Header: true}, 1)
	for i := 0; i < 10; i++ {
		in <- engine.Hit{QueryID: fmt.Sprint(i)}
	}
	close(in)
	if err := <-done; err == nil {
		t.Fatal("expected write error")
	}
}

func TestIsBrokenPipe(t *testing.T) {
	if !IsBrokenPipe(fmt.Errorf("write: %w", syscall.EPIPE)) || !IsBrokenPipe(io.ErrClosedPipe) {
		t.Fatal("EPIPE and ErrClosedPipe are broken pipes")
	}
	if IsBrokenPipe(nil) || IsBrokenPipe(errors.New("other")) {
		t.Fatal("unexpected broken pipe")
	}
}
