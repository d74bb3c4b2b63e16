// internal/output/json.go
package output

import (
	"encoding/json"
	"io"

	"episcore/internal/engine"
	"episcore/pkg/api"
)

// ToAPIHit converts a domain Hit to the stable wire schema (v1).
func ToAPIHit(h engine.Hit) api.HitV1 {
	sub, ins, del := h.Counts()
	v := api.HitV1{
		QueryID:       h.QueryID,
		ReferenceID:   h.ReferenceID,
		ReferenceDesc: h.ReferenceDesc,
		Score:         h.Score,
		BaseScore:     h.BaseScore,
		AlignScore:    h.AlignScore,
		Passed:        h.Passed,
		Substitutions: sub,
		Insertions:    ins,
		Deletions:     del,
		QuerySeq:      h.QuerySeq,
		ReferenceSeq:  h.ReferenceSeq,
		SourceFile:    h.SourceFile,
	}
	if len(h.Mutations) > 0 {
		v.Mutations = MutationsCSV(h.Mutations)
	}
	return v
}

func toAPIHits(list []engine.Hit) []api.HitV1 {
	out := make([]api.HitV1, 0, len(list))
	for _, h := range list {
		out = append(out, ToAPIHit(h))
	}
	return out
}

// WriteJSON writes a single JSON array of v1 hits (pretty-indented).
func WriteJSON(w io.Writer, list []engine.Hit) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toAPIHits(list))
}
