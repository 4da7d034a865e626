// Package writers turns assembly results into serialized outputs.
//
// Design:
//   - Writers own all presentation knowledge (TSV text, JSON/JSONL, FASTA).
//   - The assemblers stay domain-only and never import this package.
//   - JSON/JSONL go through pkg/api (v1) for a stable wire format.
package writers
