// internal/writers/hit.go
package writers

import (
	"io"

	"episcore-core/matrix"
	"episcore/internal/common"
	"episcore/internal/engine"
	"episcore/internal/output"
	"episcore/internal/pretty"
)

// HitOptions selects the format and presentation of hit output.
type HitOptions struct {
	Format    string
	Sort      bool // LessHit order (buffers the whole run)
	Rank      bool // best score first across all queries (buffers)
	Header    bool
	Mutations bool // mutations column in text output
	Pretty    bool // alignment block after each text row
	Lookup    matrix.Lookup
	PrettyOpt pretty.Options
}

type hitArgs struct {
	HitOptions
	In <-chan engine.Hit
}

func (a hitArgs) buffered() bool { return a.Sort || a.Rank }

func (a hitArgs) drain() []engine.Hit {
	list := make([]engine.Hit, 0, 128)
	for h := range a.In {
		list = append(list, h)
	}
	if a.Rank {
		common.SortHitsByScore(list)
	} else if a.Sort {
		common.SortHits(list)
	}
	return list
}

func init() {
	// JSON array
	RegisterHit(output.FormatJSON, func(w io.Writer, args hitArgs) error {
		return output.WriteJSON(w, args.drain())
	})

	// JSONL streaming (or buffered+sorted)
	RegisterHit(output.FormatJSONL, func(w io.Writer, args hitArgs) error {
		pipe, done := StartHitJSONLWriter(w, 64)
		if args.buffered() {
			for _, h := range args.drain() {
				pipe <- h
			}
		} else {
			for h := range args.In {
				pipe <- h
			}
		}
		close(pipe)
		return <-done
	})

	// FASTA (stream or buffered+sort)
	RegisterHit(output.FormatFASTA, func(w io.Writer, args hitArgs) error {
		if args.buffered() {
			return output.WriteFASTA(w, args.drain())
		}
		return output.StreamFASTA(w, args.In)
	})

	// TEXT/TSV (+ optional pretty blocks)
	RegisterHit(output.FormatText, func(w io.Writer, args hitArgs) error {
		o := output.TextOptions{Header: args.Header, Mutations: args.Mutations}
		if args.Pretty {
			o.Render = func(h engine.Hit) string {
				return pretty.RenderHitWithOptions(h, args.Lookup, args.PrettyOpt)
			}
		}
		if args.buffered() {
			return output.WriteText(w, args.drain(), o)
		}
		return output.StreamText(w, args.In, o)
	})
}

// StartHitWriter spins up a writer goroutine. Send hits on the returned
// channel, close it, then read the single result from the error channel.
// A handler that fails early keeps draining the channel so senders never block.
func StartHitWriter(out io.Writer, opt HitOptions, bufSize int) (chan<- engine.Hit, <-chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	in := make(chan engine.Hit, bufSize)
	errCh := make(chan error, 1)
	go func() {
		err := WriteHits(opt.Format, out, hitArgs{HitOptions: opt, In: in})
		for range in {
		}
		errCh <- err
	}()
	return in, errCh
}
