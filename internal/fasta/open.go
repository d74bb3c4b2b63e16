// internal/fasta/open.go
package fasta

import (
	"bufio"
	"compress/gzip"
	"io"
	"os"
)

// multiReadCloser closes every closer in order and reports the first error.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Open returns a reader for path ("-" is stdin). Gzip input is detected by
// its magic bytes, so compressed stdin works too.
func Open(path string) (io.ReadCloser, error) {
	var src io.ReadCloser
	if path == "-" {
		src = io.NopCloser(os.Stdin)
	} else {
		fh, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		src = fh
	}
	br := bufio.NewReaderSize(src, 64<<10)
	sig, _ := br.Peek(2)
	if len(sig) == 2 && sig[0] == 0x1f && sig[1] == 0x8b {
		gr, err := gzip.NewReader(br)
		if err != nil {
			_ = src.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, src}}, nil
	}
	return &multiReadCloser{Reader: br, closers: []io.Closer{src}}, nil
}
