// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"
)

// HitWriters maps an output format to its handler. Handlers register in
// init() blocks.
var HitWriters = map[string]func(w io.Writer, args hitArgs) error{}

// RegisterHit installs fn for format (idempotent, last wins).
func RegisterHit(format string, fn func(io.Writer, hitArgs) error) { HitWriters[format] = fn }

// WriteHits dispatches to the handler registered for format.
func WriteHits(format string, w io.Writer, args hitArgs) error {
	fn, ok := HitWriters[format]
	if !ok {
		return fmt.Errorf("unknown hit format %q (no writer registered)", format)
	}
	return fn(w, args)
}
