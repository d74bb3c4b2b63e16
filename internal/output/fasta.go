package output

import (
	"fmt"
	"io"

	"episcore/internal/engine"
)

func writeFASTARecord(w io.Writer, h engine.Hit) error {
	_, err := fmt.Fprintf(
		w,
		">%s reference=%s score=%s source_file=%s\n%s\n",
		h.QueryID, h.ReferenceID, FormatScore(h.Score), h.SourceFile, h.QuerySeq,
	)
	return err
}

// StreamFASTA streams the query sequence of each hit as a FASTA record.
// Hits without a query sequence are skipped.
func StreamFASTA(w io.Writer, in <-chan engine.Hit) error {
	for h := range in {
		if h.QuerySeq == "" {
			continue
		}
		if err := writeFASTARecord(w, h); err != nil {
			return err
		}
	}
	return nil
}

// WriteFASTA writes a slice of hits as FASTA records to the writer.
func WriteFASTA(w io.Writer, list []engine.Hit) error {
	for _, h := range list {
		if h.QuerySeq == "" {
			continue
		}
		if err := writeFASTARecord(w, h); err != nil {
			return err
		}
	}
	return nil
}
