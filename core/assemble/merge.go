// core/assemble/merge.go
package assemble

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"fragasm-core/overlap"
)

// Merge joins overlapping pairs in rounds until one string is left. Each round
// pairs every unjoined string with the first unjoined partner it overlaps in
// either direction; leftovers carry over to the next round.
//
// Merged strings grow, so the majority rule gets stricter every round. Merge
// can stall on input that Sequential and Parallel assemble.
type Merge struct {
	log *zap.Logger
}

func NewMerge(log *zap.Logger) *Merge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Merge{log: log}
}

func (mg *Merge) Sequence(ctx context.Context, fragments []string, m overlap.Matcher) (string, error) {
	if err := validate(fragments); err != nil {
		return "", err
	}
	work := slices.Clone(fragments)
	for round := 1; len(work) > 1; round++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		joined := make([]bool, len(work))
		next := make([]string, 0, len(work))
		for i := range work {
			if joined[i] {
				continue
			}
			for j := range work {
				if j == i || joined[j] {
					continue
				}
				if s, ok := join(work[i], work[j], m); ok {
					next = append(next, s)
					joined[i], joined[j] = true, true
					break
				}
			}
		}
		if len(next) == 0 {
			return "", fmt.Errorf("%w: round %d joined nothing, %d strings left", ErrStalledAssembly, round, len(work))
		}
		for i, s := range work {
			if !joined[i] {
				next = append(next, s)
			}
		}
		mg.log.Debug("merge round", zap.Int("round", round), zap.Int("in", len(work)), zap.Int("out", len(next)))
		work = next
	}
	return work[0], nil
}

// join overlaps a and b in whichever direction has the larger overlap,
// preferring a's tail into b's head on a tie.
func join(a, b string, m overlap.Matcher) (string, bool) {
	ab := m.OverlapIndex(a, b)
	ba := m.OverlapIndex(b, a)
	switch {
	case ab == overlap.None && ba == overlap.None:
		return "", false
	case ab >= ba:
		return a + b[ab+1:], true
	default:
		return b + a[ba+1:], true
	}
}
