// internal/fasta/reader.go
package fasta

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
)

// Record is one FASTA entry. Seq is upper-cased with whitespace removed and
// may be empty.
type Record struct {
	ID   string
	Desc string
	Seq  []byte
}

// Scan parses FASTA from r and calls emit once per record. It stops at the
// first emit error and honors ctx between lines.
func Scan(ctx context.Context, r io.Reader, emit func(Record) error) error {
	sc := bufio.NewScanner(r)
	const maxLine = 64 * 1024 * 1024
	sc.Buffer(make([]byte, 64*1024), maxLine)

	var (
		cur  Record
		open bool
		ln   int
	)
	flush := func() error {
		if !open {
			return nil
		}
		rec := cur
		rec.Seq = append([]byte(nil), cur.Seq...)
		return emit(rec)
	}

	for sc.Scan() {
		ln++
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 || line[0] == ';' {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return err
			}
			cur = Record{Seq: cur.Seq[:0]}
			cur.ID, cur.Desc = parseHeader(line[1:])
			if cur.ID == "" {
				return fmt.Errorf("line %d: empty FASTA header", ln)
			}
			open = true
			continue
		}
		if !open {
			return fmt.Errorf("line %d: sequence data before first header", ln)
		}
		for _, c := range line {
			switch {
			case c == ' ' || c == '\t':
			case c >= 'a' && c <= 'z':
				cur.Seq = append(cur.Seq, c-('a'-'A'))
			default:
				cur.Seq = append(cur.Seq, c)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("fasta scan: %w", err)
	}
	return flush()
}

// StreamPath opens path and scans it with Scan.
func StreamPath(ctx context.Context, path string, emit func(Record) error) error {
	rc, err := Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()
	if err := Scan(ctx, rc, emit); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// ReadAll loads every record of every path into memory, in order.
func ReadAll(ctx context.Context, paths ...string) ([]Record, error) {
	var out []Record
	for _, p := range paths {
		err := StreamPath(ctx, p, func(r Record) error {
			out = append(out, r)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseHeader(hdr []byte) (id, desc string) {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return string(hdr[:i]), string(bytes.TrimSpace(hdr[i+1:]))
	}
	return string(hdr), ""
}
