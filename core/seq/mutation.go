package seq

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags a Mutation.
type Kind uint8

const (
	Substitution Kind = iota
	Insertion
	Deletion
)

func (k Kind) String() string {
	switch k {
	case Substitution:
		return "substitution"
	case Insertion:
		return "insertion"
	case Deletion:
		return "deletion"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Mutation is a single edit of the reference. Pos is a reference coordinate;
// for an insertion it is the reference index the inserted residue precedes.
// From is set for substitutions and deletions, To for substitutions and
// insertions.
type Mutation struct {
	Kind Kind
	Pos  int
	From Residue
	To   Residue
}

func Sub(pos int, from, to Residue) Mutation {
	return Mutation{Kind: Substitution, Pos: pos, From: from, To: to}
}

func Ins(pos int, to Residue) Mutation {
	return Mutation{Kind: Insertion, Pos: pos, To: to}
}

func Del(pos int, from Residue) Mutation {
	return Mutation{Kind: Deletion, Pos: pos, From: from}
}

// String renders S<from><pos><to>, D<from><pos> or I<pos><to>.
func (m Mutation) String() string {
	switch m.Kind {
	case Substitution:
		return fmt.Sprintf("S%c%d%c", m.From, m.Pos, m.To)
	case Insertion:
		return fmt.Sprintf("I%d%c", m.Pos, m.To)
	case Deletion:
		return fmt.Sprintf("D%c%d", m.From, m.Pos)
	}
	return "?"
}

// FormatMutations joins mutations with commas.
func FormatMutations(ms []Mutation) string {
	if len(ms) == 0 {
		return ""
	}
	parts := make([]string, len(ms))
	for i, m := range ms {
		parts[i] = m.String()
	}
	return strings.Join(parts, ",")
}

// ParseMutation decodes the form produced by Mutation.String.
func ParseMutation(s string) (Mutation, error) {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return Mutation{}, fmt.Errorf("mutation %q: too short", s)
	}
	switch upper(s[0]) {
	case 'S':
		if len(s) < 4 {
			return Mutation{}, fmt.Errorf("mutation %q: too short", s)
		}
		pos, err := parsePos(s, s[2:len(s)-1])
		if err != nil {
			return Mutation{}, err
		}
		return Sub(pos, upper(s[1]), upper(s[len(s)-1])), nil
	case 'D':
		pos, err := parsePos(s, s[2:])
		if err != nil {
			return Mutation{}, err
		}
		return Del(pos, upper(s[1])), nil
	case 'I':
		pos, err := parsePos(s, s[1:len(s)-1])
		if err != nil {
			return Mutation{}, err
		}
		return Ins(pos, upper(s[len(s)-1])), nil
	}
	return Mutation{}, fmt.Errorf("mutation %q: unknown kind %q", s, s[0])
}

// ParseMutations decodes a comma-separated list. An empty string or "-"
// yields no mutations.
func ParseMutations(s string) ([]Mutation, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]Mutation, 0, len(fields))
	for _, f := range fields {
		m, err := ParseMutation(f)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// parsePos accepts decimal digits only, so the text form round-trips.
func parsePos(whole, num string) (int, error) {
	if num == "" || num[0] < '0' || num[0] > '9' {
		return 0, fmt.Errorf("mutation %q: bad position %q", whole, num)
	}
	pos, err := strconv.Atoi(num)
	if err != nil || pos < 0 {
		return 0, fmt.Errorf("mutation %q: bad position %q", whole, num)
	}
	return pos, nil
}

func upper(c byte) Residue {
	if c >= 'a' && c <= 'z' {
		c -= 'a' - 'A'
	}
	return Residue(c)
}
