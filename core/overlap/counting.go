package overlap

import "sync/atomic"

// Counting wraps a Matcher and counts calls. Safe for concurrent use.
type Counting struct {
	Matcher
	calls atomic.Int64
}

func NewCounting(m Matcher) *Counting { return &Counting{Matcher: m} }

func (c *Counting) OverlapIndex(suffix, prefix string) int {
	c.calls.Add(1)
	return c.Matcher.OverlapIndex(suffix, prefix)
}

// Calls returns the number of OverlapIndex calls so far.
func (c *Counting) Calls() int64 { return c.calls.Load() }
