// core/assemble/chain.go
package assemble

import (
	"fmt"
	"strings"

	"fragasm-core/overlap"
)

// Link is one chain entry: a fragment and the overlap index of its tail into
// the next fragment's head (overlap.None on the last link).
type Link struct {
	Fragment string
	Overlap  int
}

// Chain is the ordered path through every fragment.
type Chain []Link

func (c Chain) String() string {
	var b strings.Builder
	for i, l := range c {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "%s(%d)", l.Fragment, l.Overlap)
	}
	return b.String()
}

// Len is the length of the superstring the chain combines into.
func (c Chain) Len() int {
	n := 0
	for i, l := range c {
		n += len(l.Fragment)
		if i < len(c)-1 {
			n -= l.Overlap + 1
		}
	}
	return n
}

// Combine stitches the chain into one string: the first fragment in full,
// then each following fragment without the prefix the previous link overlaps.
func Combine(c Chain) (string, error) {
	if len(c) == 0 {
		return "", fmt.Errorf("%w: empty chain", ErrMalformedInput)
	}
	var b strings.Builder
	if n := c.Len(); n > 0 {
		b.Grow(n)
	}
	b.WriteString(c[0].Fragment)
	for i := 1; i < len(c); i++ {
		prev, next := c[i-1], c[i].Fragment
		if prev.Overlap == overlap.None {
			return "", fmt.Errorf("%w: link %d (%s) has no overlap but is not last", ErrCombinerBounds, i-1, abbrev(prev.Fragment))
		}
		skip := prev.Overlap + 1
		if skip < 0 || skip > len(next) {
			return "", fmt.Errorf("%w: overlap %d exceeds fragment %s (len %d)", ErrCombinerBounds, prev.Overlap, abbrev(next), len(next))
		}
		b.WriteString(next[skip:])
	}
	return b.String(), nil
}

// abbrev shortens long fragments for error messages and logs.
func abbrev(s string) string {
	const limit = 24
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}
