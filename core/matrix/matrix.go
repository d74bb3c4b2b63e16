// core/matrix/matrix.go
package matrix

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"episcore-core/seq"
)

// Lookup is the substitution-score provider used by alignment and scoring.
// Implementations must be safe for concurrent reads.
type Lookup interface {
	Score(a, b seq.Residue) float64
	GapPenalty() float64
}

// Matrix is a square substitution table. Residues are matched
// case-insensitively; residues outside the alphabet use the X row when the
// alphabet has one and score 0 otherwise.
type Matrix struct {
	Name     string
	alphabet []seq.Residue
	index    [256]int16
	values   [][]float64
}

// Alphabet returns the residues in header order.
func (m *Matrix) Alphabet() []seq.Residue {
	return append([]seq.Residue(nil), m.alphabet...)
}

// Has reports whether r is part of the alphabet proper (no fallback).
func (m *Matrix) Has(r seq.Residue) bool {
	for _, a := range m.alphabet {
		if a == upper(r) {
			return true
		}
	}
	return false
}

// Score returns the table entry for (a, b).
func (m *Matrix) Score(a, b seq.Residue) float64 {
	i, j := m.index[a], m.index[b]
	if i < 0 || j < 0 {
		return 0
	}
	return m.values[i][j]
}

// Symmetric reports whether Score(a,b) == Score(b,a) for every pair.
func (m *Matrix) Symmetric() bool {
	for i := range m.values {
		for j := 0; j < i; j++ {
			if m.values[i][j] != m.values[j][i] {
				return false
			}
		}
	}
	return true
}

// Load reads an NCBI-format matrix from path.
func Load(path string) (*Matrix, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = fh.Close() }()
	m, err := Parse(fh)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m.Name = path
	return m, nil
}

// Parse reads an NCBI-format matrix: '#' comments, a header row of residue
// letters, then one row per letter starting with that letter.
func Parse(r io.Reader) (*Matrix, error) {
	sc := bufio.NewScanner(r)
	var (
		m    *Matrix
		rows = map[seq.Residue][]float64{}
		ln   int
	)
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		f := strings.Fields(line)
		if m == nil {
			m = &Matrix{}
			for _, h := range f {
				if len(h) != 1 {
					return nil, fmt.Errorf("line %d: bad header symbol %q", ln, h)
				}
				m.alphabet = append(m.alphabet, upper(seq.Residue(h[0])))
			}
			continue
		}
		if len(f[0]) != 1 {
			return nil, fmt.Errorf("line %d: bad row label %q", ln, f[0])
		}
		if len(f)-1 != len(m.alphabet) {
			return nil, fmt.Errorf("line %d: want %d values, got %d", ln, len(m.alphabet), len(f)-1)
		}
		label := upper(seq.Residue(f[0][0]))
		if _, dup := rows[label]; dup {
			return nil, fmt.Errorf("line %d: duplicate row %q", ln, f[0])
		}
		vals := make([]float64, len(f)-1)
		for i, s := range f[1:] {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value %q", ln, s)
			}
			vals[i] = v
		}
		rows[label] = vals
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("empty matrix")
	}
	m.values = make([][]float64, len(m.alphabet))
	for i, a := range m.alphabet {
		row, ok := rows[a]
		if !ok {
			return nil, fmt.Errorf("missing row for %q", a)
		}
		m.values[i] = row
	}
	m.buildIndex()
	return m, nil
}

func (m *Matrix) buildIndex() {
	fallback := int16(-1)
	for i, a := range m.alphabet {
		if a == 'X' {
			fallback = int16(i)
		}
	}
	for i := range m.index {
		m.index[i] = fallback
	}
	for i, a := range m.alphabet {
		m.index[a] = int16(i)
		if a >= 'A' && a <= 'Z' {
			m.index[a+('a'-'A')] = int16(i)
		}
	}
}

func upper(r seq.Residue) seq.Residue {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}

// LinearGap couples a Matrix with a fixed per-residue gap penalty.
type LinearGap struct {
	Matrix *Matrix
	Gap    float64
}

func (l LinearGap) Score(a, b seq.Residue) float64 { return l.Matrix.Score(a, b) }
func (l LinearGap) GapPenalty() float64            { return l.Gap }
