// internal/output/text.go
package output

import (
	"fmt"
	"io"

	"episcore/internal/engine"
)

// TextOptions controls the TSV table.
type TextOptions struct {
	Header    bool
	Mutations bool                    // append the mutations column
	Render    func(engine.Hit) string // optional block printed after each row
}

func writeRow(w io.Writer, h engine.Hit, o TextOptions) error {
	if _, err := fmt.Fprintln(w, FormatRowTSV(h, o.Mutations)); err != nil {
		return err
	}
	if o.Render != nil {
		if block := o.Render(h); block != "" {
			if _, err := io.WriteString(w, block); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteText writes hits as a tab-delimited table.
func WriteText(w io.Writer, list []engine.Hit, o TextOptions) error {
	if o.Header {
		if _, err := fmt.Fprintln(w, Header(o.Mutations)); err != nil {
			return err
		}
	}
	for _, h := range list {
		if err := writeRow(w, h, o); err != nil {
			return err
		}
	}
	return nil
}

// StreamText writes rows as they arrive on in. The header is printed even
// when no hits arrive.
func StreamText(w io.Writer, in <-chan engine.Hit, o TextOptions) error {
	if o.Header {
		if _, err := fmt.Fprintln(w, Header(o.Mutations)); err != nil {
			return err
		}
	}
	for h := range in {
		if err := writeRow(w, h, o); err != nil {
			return err
		}
	}
	return nil
}
