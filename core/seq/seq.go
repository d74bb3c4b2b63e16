// core/seq/seq.go
package seq

import "strings"

// Residue is one symbol of a sequence alphabet (an amino acid or base code).
type Residue byte

// Sequence is the read-only view scoring and alignment need.
type Sequence interface {
	Len() int
	At(i int) Residue
}

// Seq is a plain in-memory Sequence.
type Seq []Residue

func (s Seq) Len() int         { return len(s) }
func (s Seq) At(i int) Residue { return s[i] }
func (s Seq) String() string   { return string(s.Bytes()) }

func (s Seq) Bytes() []byte {
	b := make([]byte, len(s))
	for i, r := range s {
		b[i] = byte(r)
	}
	return b
}

// FromString returns an upper-cased Seq with surrounding whitespace removed.
func FromString(s string) Seq {
	return FromBytes([]byte(strings.TrimSpace(s)))
}

// FromBytes copies b into a new upper-cased Seq.
func FromBytes(b []byte) Seq {
	out := make(Seq, len(b))
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out[i] = Residue(c)
	}
	return out
}

// Copy materializes any Sequence into a Seq.
func Copy(s Sequence) Seq {
	if s == nil {
		return nil
	}
	out := make(Seq, s.Len())
	for i := range out {
		out[i] = s.At(i)
	}
	return out
}
