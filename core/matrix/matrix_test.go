package matrix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"episcore-core/seq"
)

func TestBLOSUM62_KnownEntries(t *testing.T) {
	m := BLOSUM62()
	cases := []struct {
		a, b seq.Residue
		want float64
	}{
		{'A', 'A', 4},
		{'W', 'W', 11},
		{'C', 'C', 9},
		{'S', 'T', 1},
		{'L', 'D', -4},
		{'a', 'a', 4},  // case-insensitive
		{'J', 'A', 0},  // unknown residue falls back to X row
		{'*', '*', 1},
	}
	for _, c := range cases {
		if got := m.Score(c.a, c.b); got != c.want {
			t.Fatalf("Score(%c,%c)=%v, want %v", c.a, c.b, got, c.want)
		}
	}
	if !m.Symmetric() {
		t.Fatal("BLOSUM62 must be symmetric")
	}
	if len(m.Alphabet()) != 24 {
		t.Fatalf("alphabet size %d, want 24", len(m.Alphabet()))
	}
}

func TestNUC44_UnknownScoresZero(t *testing.T) {
	m := NUC44()
	if got := m.Score('A', 'A'); got != 5 {
		t.Fatalf("A/A=%v", got)
	}
	if got := m.Score('A', 'U'); got != 0 {
		t.Fatalf("no X row: unknown residue should score 0, got %v", got)
	}
	if m.Has('U') || !m.Has('n') {
		t.Fatal("Has() mismatch")
	}
}

func TestParse_Errors(t *testing.T) {
	bad := map[string]string{
		"empty":      "# nothing\n",
		"short row":  "A C\nA 1\nC 0 1\n",
		"bad value":  "A C\nA 1 x\nC 0 1\n",
		"missing":    "A C\nA 1 0\n",
		"duplicate":  "A C\nA 1 0\nA 1 0\nC 0 1\n",
		"bad header": "AB C\nA 1 0\n",
	}
	for name, text := range bad {
		if _, err := Parse(strings.NewReader(text)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadAndNamed(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "tiny.mat")
	if err := os.WriteFile(fn, []byte("# tiny\n  A  C\nA  2 -1\nC -1  3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := Named(fn)
	if err != nil {
		t.Fatalf("Named(file): %v", err)
	}
	if m.Name != fn || m.Score('C', 'C') != 3 || m.Score('A', 'C') != -1 {
		t.Fatalf("unexpected matrix %+v", m)
	}
	if b, _ := Named("BLOSUM62"); b != BLOSUM62() {
		t.Fatal("Named(BLOSUM62) should return the shared built-in")
	}
	if _, err := Named(filepath.Join(t.TempDir(), "missing.mat")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLinearGap(t *testing.T) {
	var l Lookup = LinearGap{Matrix: BLOSUM62(), Gap: -4}
	if l.GapPenalty() != -4 || l.Score('R', 'K') != 2 {
		t.Fatalf("LinearGap lookup mismatch")
	}
}
