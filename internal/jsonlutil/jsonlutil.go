// internal/jsonlutil/jsonlutil.go
package jsonlutil

import (
	"bufio"
	"encoding/json"
	"io"
	"sync"
)

// Reuse a 64 KiB buffered writer across JSONL writers to avoid per-writer mallocs.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// Start spins up a JSONL encoder goroutine for values of type T.
//   - encode: converts one value to its wire type and encodes it
//   - isBroken: recognizer for broken/closed pipe errors, which end the stream
//     without an error
//
// After an encode error the goroutine keeps draining in so senders never block.
func Start[T any](out io.Writer, bufSize int, encode func(*json.Encoder, T) error, isBroken func(error) bool) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		enc := json.NewEncoder(bw)

		var werr error
		for v := range in {
			if werr != nil {
				continue
			}
			werr = encode(enc, v)
		}
		if werr == nil {
			werr = bw.Flush()
		}
		if werr != nil && isBroken(werr) {
			werr = nil
		}
		done <- werr
	}()

	return in, done
}
