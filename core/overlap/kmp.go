// core/overlap/kmp.go
package overlap

// KMP runs Knuth-Morris-Pratt with prefix as the pattern and suffix as the
// text. The match length left at the end of the text is the longest suffix of
// the text that is also a prefix of the pattern. O(m+n).
type KMP struct {
	cache *LPSCache
}

// NewKMP returns a KMP matcher backed by cache. A nil cache recomputes the
// prefix function on every call.
func NewKMP(cache *LPSCache) *KMP { return &KMP{cache: cache} }

func (k *KMP) OverlapIndex(suffix, prefix string) int {
	if len(suffix) == 0 || len(prefix) == 0 {
		return None
	}
	lps := k.table(prefix)

	j := 0 // bytes of prefix matched so far
	for i := 0; i < len(suffix); i++ {
		if j == len(prefix) {
			// full pattern match mid-text: keep the longest border, don't reset
			j = lps[j-1]
		}
		for j > 0 && suffix[i] != prefix[j] {
			j = lps[j-1]
		}
		if suffix[i] == prefix[j] {
			j++
		}
	}
	if !qualifies(j, len(suffix), len(prefix)) {
		return None
	}
	return j - 1
}

func (k *KMP) table(pattern string) []int {
	if k.cache == nil {
		return PrefixFunction(pattern)
	}
	return k.cache.Get(pattern)
}

// PrefixFunction returns the LPS table of pattern: lps[i] is the length of the
// longest proper prefix of pattern[:i+1] that is also its suffix.
func PrefixFunction(pattern string) []int {
	lps := make([]int, len(pattern))
	for i := 1; i < len(pattern); i++ {
		j := lps[i-1]
		for j > 0 && pattern[i] != pattern[j] {
			j = lps[j-1]
		}
		if pattern[i] == pattern[j] {
			j++
		}
		lps[i] = j
	}
	return lps
}
