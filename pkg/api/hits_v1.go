// pkg/api/hits_v1.go
package api

// HitV1 is the stable JSON/JSONL schema for one query/reference comparison.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type HitV1 struct {
	QueryID       string  `json:"query_id"`
	ReferenceID   string  `json:"reference_id"`
	ReferenceDesc string  `json:"reference_desc,omitempty"`
	Score         float64 `json:"score"`
	BaseScore     float64 `json:"base_score"`
	AlignScore    float64 `json:"align_score,omitempty"`
	Passed        bool    `json:"passed"`
	Substitutions int     `json:"substitutions"`
	Insertions    int     `json:"insertions"`
	Deletions     int     `json:"deletions"`
	Mutations     string  `json:"mutations,omitempty"` // e.g. "SA12G,I3W,DK7"
	QuerySeq      string  `json:"query_seq,omitempty"`
	ReferenceSeq  string  `json:"reference_seq,omitempty"`
	SourceFile    string  `json:"source_file,omitempty"`
}
