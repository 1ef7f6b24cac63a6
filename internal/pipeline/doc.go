// Package pipeline streams FASTQ records through a linker Splitter on a
// pool of workers and hands the results back in input order.
//
// The only contract to implement is Splitter (satisfied by *linker.Spec).
// This keeps the pipeline swappable and testable.
package pipeline
