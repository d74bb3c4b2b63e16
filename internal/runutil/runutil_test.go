package runutil

import (
	"runtime"
	"testing"
)

func TestResolveThreads(t *testing.T) {
	if got := ResolveThreads(3); got != 3 {
		t.Fatalf("want 3, got %d", got)
	}
	if got := ResolveThreads(0); got != runtime.NumCPU() {
		t.Fatalf("0 → all CPUs, got %d", got)
	}
	if got := ResolveThreads(-2); got != runtime.NumCPU() {
		t.Fatalf("-2 → all CPUs, got %d", got)
	}
}

func TestComputeNeedSeq(t *testing.T) {
	cases := []struct {
		output string
		pretty bool
		want   bool
	}{
		{"fasta", false, true},
		{"text", true, true},
		{"text", false, false},
		{"json", true, false},
		{"jsonl", false, false},
	}
	for _, c := range cases {
		if got := ComputeNeedSeq(c.output, c.pretty); got != c.want {
			t.Fatalf("ComputeNeedSeq(%q,%v)=%v, want %v", c.output, c.pretty, got, c.want)
		}
	}
}

func TestLRUSet(t *testing.T) {
	s := NewLRUSet[string](2)
	if s.Add("a") || s.Add("b") {
		t.Fatal("fresh keys reported as present")
	}
	if !s.Add("a") {
		t.Fatal("a should be present")
	}
	// b is now least recently seen and gets evicted.
	s.Add("c")
	if s.Len() != 2 {
		t.Fatalf("Len=%d, want 2", s.Len())
	}
	if !s.Add("a") || !s.Add("c") {
		t.Fatal("a and c should survive eviction")
	}
	if s.Add("b") {
		t.Fatal("b should have been evicted")
	}
}

func TestLRUSet_DefaultCap(t *testing.T) {
	s := NewLRUSet[int](0)
	if s.cap != DefaultDedupeCap {
		t.Fatalf("cap=%d", s.cap)
	}
}
