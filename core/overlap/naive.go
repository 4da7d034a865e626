// core/overlap/naive.go
package overlap

// Naive slides every candidate length across both strings and compares the
// substrings directly. O(m·n).
type Naive struct{}

func (Naive) OverlapIndex(suffix, prefix string) int {
	shorter := min(len(suffix), len(prefix))
	best := 0
	for l := 1; l <= shorter; l++ {
		if suffix[len(suffix)-l:] == prefix[:l] {
			best = l
		}
	}
	if !qualifies(best, len(suffix), len(prefix)) {
		return None
	}
	return best - 1
}
