// Package writers turns split reads into serialized outputs.
//
// Design:
//   • Writers own all presentation knowledge (FASTQ headers, TSV, JSONL, SAM/BAM).
//   • The linker core stays domain-only; the pipeline stays orchestration-only.
//   • JSONL goes through pkg/api (v1) for a stable wire format.
package writers
