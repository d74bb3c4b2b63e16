package output

// Output formats accepted by --output.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatFASTA = "fasta"
)

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "source_file\tquery_id\treference_id\tscore\tbase_score\tpassed\tsubstitutions\tinsertions\tdeletions"

// MutationsColumn is appended to TSVHeader when mutation lists are requested.
const MutationsColumn = "mutations"

// Header returns the TSV header line, with the mutations column if asked.
func Header(mutations bool) string {
	if mutations {
		return TSVHeader + "\t" + MutationsColumn
	}
	return TSVHeader
}
