// Package assemble rebuilds one sequence from fragments whose tails
// majority-overlap exactly one other fragment's head.
//
// Sequential walks the chain greedily; Parallel fills the full overlap matrix
// on a fixed worker pool and then follows it; Merge joins overlapping pairs in
// rounds. All of them hand an ordered Chain to Combine.
//
// The package is domain-only. It never imports app, writers, cli, or config.
package assemble
