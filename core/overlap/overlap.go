// Package overlap decides how far the tail of one fragment runs into the head
// of another. An overlap only counts when it covers more than half of both
// strings (integer division), and the largest such overlap is reported.
//
// Strings are compared byte by byte; the alphabet is opaque.
package overlap

import (
	"fmt"
	"strings"
)

// None is returned when no qualifying overlap exists.
const None = -1

// Matcher reports the overlap of suffix's tail into prefix's head as the
// zero-based index, within prefix, of the last overlapping byte (length-1),
// or None.
type Matcher interface {
	OverlapIndex(suffix, prefix string) int
}

// Kind names a matcher implementation.
type Kind string

const (
	KindNaive Kind = "naive"
	KindKMP   Kind = "kmp"
)

// Kinds lists the supported matchers in display order.
var Kinds = []Kind{KindNaive, KindKMP}

// ParseKind normalizes s and checks it against Kinds.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown matcher %q (want naive | kmp)", s)
}

// New returns the matcher for kind. cache is only used by the KMP matcher and
// may be nil.
func New(kind Kind, cache *LPSCache) (Matcher, error) {
	switch kind {
	case KindNaive:
		return Naive{}, nil
	case KindKMP:
		return NewKMP(cache), nil
	default:
		return nil, fmt.Errorf("unknown matcher %q", kind)
	}
}

// qualifies applies the majority rule to an overlap of length l.
func qualifies(l, suffixLen, prefixLen int) bool {
	return l > 0 && l > suffixLen/2 && l > prefixLen/2
}
