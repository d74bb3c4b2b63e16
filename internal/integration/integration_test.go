// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"episcore/internal/app"
	"episcore/pkg/api"
)

const refsFA = `>GILGFVFTL influenza M1
CASSIRSSYEQYF
>NLVPMVATV CMV pp65
CASSLAPGATNEKLFF
>GLCTLVAML EBV BMLF1
CSARDRTGNGYTF
`

const queriesFA = `>clone1
CASSIRSSYEQYF
>clone2
CASSIRSAYEQYF
>clone3
CASSLAPGTNEKLFF
>clone4
CSARDGTGNGYTF
`

func write(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func run(t *testing.T, argv ...string) (string, string, int) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(argv, &out, &errBuf)
	return out.String(), errBuf.String(), code
}

func TestEndToEnd_Text(t *testing.T) {
	refs, qs := write(t, "refs.fa", refsFA), write(t, "q.fa", queriesFA)
	out, errS, code := run(t, "-r", refs, "--top", "1", "--sort", "--alignment", qs)
	if code != 0 {
		t.Fatalf("run exit %d, err=%s", code, errS)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 5 || !strings.HasPrefix(lines[0], "source_file\tquery_id") {
		t.Fatalf("want header + 4 rows:\n%s", out)
	}
	best := map[string]string{}
	for _, l := range lines[1:] {
		f := strings.Split(l, "\t")
		best[f[1]] = f[2]
	}
	want := map[string]string{
		"clone1": "GILGFVFTL", "clone2": "GILGFVFTL",
		"clone3": "NLVPMVATV", "clone4": "GLCTLVAML",
	}
	for q, r := range want {
		if best[q] != r {
			t.Fatalf("%s best reference %q, want %q\n%s", q, best[q], r, out)
		}
	}
	if !strings.HasSuffix(lines[1], "\t-") {
		t.Fatalf("exact match should have an empty mutation list: %q", lines[1])
	}
}

func TestEndToEnd_JSONScores(t *testing.T) {
	refs, qs := write(t, "refs.fa", refsFA), write(t, "q.fa", queriesFA)
	out, errS, code := run(t, "-r", refs, "-o", "json", "--all", "--sort", qs)
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errS)
	}
	var hits []api.HitV1
	if err := json.Unmarshal([]byte(out), &hits); err != nil {
		t.Fatalf("json: %v\n%s", err, out)
	}
	if len(hits) != 12 {
		t.Fatalf("--all should report 4x3 hits, got %d", len(hits))
	}
	for _, h := range hits {
		if h.QueryID == "clone1" && h.ReferenceID == "GILGFVFTL" {
			if h.Score != 2*h.BaseScore || h.Substitutions+h.Insertions+h.Deletions != 0 {
				t.Fatalf("identical sequence should score twice its base: %+v", h)
			}
			return
		}
	}
	t.Fatal("clone1/GILGFVFTL hit missing")
}

func TestParallelMatchesEqualSerial(t *testing.T) {
	refs, qs := write(t, "refs.fa", refsFA), write(t, "q.fa", queriesFA)
	runT := func(threads int) string {
		out, errS, code := run(t, "-r", refs, "--threads", fmt.Sprint(threads), "-o", "json", "--sort", "--all", qs)
		if code != 0 {
			t.Fatalf("exit %d err %s", code, errS)
		}
		return out
	}
	serial := runT(1)
	parallel := runT(4)
	if serial != parallel {
		t.Fatalf("parallel output differs from serial\nserial: %s\nparallel:%s", serial, parallel)
	}
}

func TestNoMatchExitCode(t *testing.T) {
	refs, qs := write(t, "refs.fa", refsFA), write(t, "q.fa", queriesFA)
	_, _, code := run(t, "-r", refs, "--threshold", "1e9", qs)
	if code != 1 {
		t.Fatalf("want default no-match exit 1, got %d", code)
	}
	_, _, code = run(t, "-r", refs, "--threshold", "1e9", "--no-match-exit-code", "0", qs)
	if code != 0 {
		t.Fatalf("want 0 with --no-match-exit-code 0, got %d", code)
	}
}

func TestMutationsFile(t *testing.T) {
	refs := write(t, "refs.fa", refsFA)
	muts := write(t, "m.tsv", "GILGFVFTL\t-\tSS7A\tclone2\nX\tCASS\t-\n")
	out, errS, code := run(t, "-r", refs, "--mutations", muts, "-o", "jsonl")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errS)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("want 2 JSONL lines:\n%s", out)
	}
	var v api.HitV1
	if err := json.Unmarshal([]byte(lines[0]), &v); err != nil || v.QueryID != "clone2" || v.Mutations != "SS7A" {
		t.Fatalf("line 1: %+v %v", v, err)
	}

	// The precomputed list scores like the aligned query.
	qs := write(t, "q.fa", ">clone2\nCASSIRSAYEQYF\n")
	out2, _, _ := run(t, "-r", refs, "-o", "jsonl", "--top", "1", qs)
	var aligned api.HitV1
	if err := json.Unmarshal([]byte(strings.TrimSpace(out2)), &aligned); err != nil {
		t.Fatalf("aligned: %v\n%s", err, out2)
	}
	if aligned.Score != v.Score {
		t.Fatalf("aligned score %v != precomputed %v", aligned.Score, v.Score)
	}
}

func TestMutationsFile_BadEntries(t *testing.T) {
	refs := write(t, "refs.fa", refsFA)
	cases := map[string]string{
		"nosuch\t-\tSA1G\n":        `m.tsv:1: unknown reference "nosuch"`,
		"GILGFVFTL\t-\tSG7A\n":     "m.tsv:1: ",
		"#\nGILGFVFTL\tCASS\tDA0\n": "m.tsv:2: ",
	}
	for body, want := range cases {
		muts := write(t, "m.tsv", body)
		out, errS, code := run(t, "-r", refs, "--mutations", muts)
		if code != 2 {
			t.Fatalf("%q: want exit 2, got %d (%s)", body, code, errS)
		}
		if !strings.Contains(errS, want) {
			t.Fatalf("%q: stderr %q lacks %q", body, errS, want)
		}
		if out != "" {
			t.Fatalf("%q: nothing should be written, got %q", body, out)
		}
	}
}

func TestMutationsFromStdin(t *testing.T) {
	refs := write(t, "refs.fa", refsFA)
	orig := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() {
		_, _ = w.WriteString("GILGFVFTL\t-\tSS7A\tclone2\n")
		_ = w.Close()
	}()

	out, errS, code := run(t, "-r", refs, "--mutations", "-", "-o", "jsonl")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errS)
	}
	var v api.HitV1
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &v); err != nil || v.QueryID != "clone2" {
		t.Fatalf("stdin mutations: %+v %v\n%s", v, err, out)
	}

	_, errS, code = run(t, "--mutations", "-", "-r", "-")
	if code != 2 || !strings.Contains(errS, "stdin") {
		t.Fatalf("double stdin: code %d err %q", code, errS)
	}
}

func TestFASTAOutputAndStdin(t *testing.T) {
	refs := write(t, "refs.fa", refsFA)
	orig := os.Stdin
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdin = r
	defer func() { os.Stdin = orig }()
	go func() {
		_, _ = w.WriteString(">s1\nCASSIRSSYEQYF\n")
		_ = w.Close()
	}()

	out, errS, code := run(t, "-r", refs, "-o", "fasta", "--top", "1", "-")
	if code != 0 {
		t.Fatalf("exit %d: %s", code, errS)
	}
	if !strings.HasPrefix(out, ">s1 reference=GILGFVFTL") || !strings.Contains(out, "\nCASSIRSSYEQYF\n") {
		t.Fatalf("unexpected FASTA:\n%s", out)
	}
}

func TestUsageAndErrors(t *testing.T) {
	out, _, code := run(t)
	if code != 0 || !strings.Contains(out, "--reference") {
		t.Fatalf("no args should print usage and exit 0 (code %d)", code)
	}
	_, errS, code := run(t, "-r", "refs.fa", "--sigma", "0", "q.fa")
	if code != 2 || !strings.Contains(errS, "--sigma") {
		t.Fatalf("bad sigma: code %d err %q", code, errS)
	}
	_, _, code = run(t, "-r", filepath.Join(t.TempDir(), "missing.fa"), "q.fa")
	if code != 2 {
		t.Fatalf("missing reference file: want 2, got %d", code)
	}
	out, _, code = run(t, "--version")
	if code != 0 || !strings.HasPrefix(out, "episcore version v") {
		t.Fatalf("version: %q (%d)", out, code)
	}
}
