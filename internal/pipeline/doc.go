// Package pipeline streams FASTA query records through a Comparer on a pool of
// workers and hands each query's hits to a visit callback.
//
// The only contract to implement is Comparer (CompareBatch).
// This keeps the pipeline swappable and testable.
package pipeline
