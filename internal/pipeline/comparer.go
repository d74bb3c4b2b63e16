// internal/pipeline/comparer.go
package pipeline

import "episcore/internal/engine"

// Comparer is the minimal capability the pipeline needs.
// Any engine (including fakes in tests) can satisfy this.
type Comparer interface {
	CompareBatch(queryID string, query []byte) []engine.Hit
}
