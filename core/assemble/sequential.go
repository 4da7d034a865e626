// core/assemble/sequential.go
package assemble

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"fragasm-core/overlap"
)

// Sequential builds the chain greedily with an exhaustive pairwise search.
// O(n²) matcher calls.
//
// When several remaining fragments would continue the chain, the first one in
// the current list order wins. Unique-overlap input never hits that case.
type Sequential struct {
	log *zap.Logger
}

func NewSequential(log *zap.Logger) *Sequential {
	if log == nil {
		log = zap.NewNop()
	}
	return &Sequential{log: log}
}

func (s *Sequential) Sequence(ctx context.Context, fragments []string, m overlap.Matcher) (string, error) {
	c, err := s.Chain(ctx, fragments, m)
	if err != nil {
		return "", err
	}
	return Combine(c)
}

// Chain returns the ordered chain without combining it.
func (s *Sequential) Chain(ctx context.Context, fragments []string, m overlap.Matcher) (Chain, error) {
	if err := validate(fragments); err != nil {
		return nil, err
	}
	if len(fragments) == 1 {
		return Chain{{Fragment: fragments[0], Overlap: overlap.None}}, nil
	}

	head, err := findHead(ctx, fragments, m)
	if err != nil {
		return nil, err
	}
	s.log.Debug("chain head found", zap.Int("index", head), zap.String("fragment", abbrev(fragments[head])))

	remaining := make([]string, 0, len(fragments)-1)
	remaining = append(remaining, fragments[:head]...)
	remaining = append(remaining, fragments[head+1:]...)

	chain := make(Chain, 0, len(fragments))
	cur := fragments[head]
	for len(remaining) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, ov := -1, overlap.None
		for i, cand := range remaining {
			if o := m.OverlapIndex(cur, cand); o != overlap.None {
				next, ov = i, o
				break
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w: nothing continues %s with %d fragment(s) left", ErrStalledAssembly, abbrev(cur), len(remaining))
		}
		chain = append(chain, Link{Fragment: cur, Overlap: ov})
		cur = remaining[next]
		remaining = slices.Delete(remaining, next, next+1)
	}
	chain = append(chain, Link{Fragment: cur, Overlap: overlap.None})

	s.log.Debug("chain walked", zap.Int("links", len(chain)))
	return chain, nil
}

// findHead returns the only fragment that no other fragment overlaps into.
func findHead(ctx context.Context, fragments []string, m overlap.Matcher) (int, error) {
	var heads []int
	for i, f := range fragments {
		if err := ctx.Err(); err != nil {
			return -1, err
		}
		incoming := false
		for j, other := range fragments {
			if i == j {
				continue
			}
			if m.OverlapIndex(other, f) != overlap.None {
				incoming = true
				break
			}
		}
		if !incoming {
			heads = append(heads, i)
		}
	}
	return oneHead(heads)
}

func oneHead(heads []int) (int, error) {
	switch len(heads) {
	case 1:
		return heads[0], nil
	case 0:
		return -1, fmt.Errorf("%w: every fragment has an incoming overlap (no chain head)", ErrMalformedInput)
	default:
		return -1, fmt.Errorf("%w: %d fragments have no incoming overlap (chain head ambiguous: %v)", ErrMalformedInput, len(heads), heads)
	}
}

// validate checks the preconditions shared by every assembler.
func validate(fragments []string) error {
	if len(fragments) == 0 {
		return fmt.Errorf("%w: no fragments", ErrMalformedInput)
	}
	seen := make(map[string]int, len(fragments))
	for i, f := range fragments {
		if f == "" {
			return fmt.Errorf("%w: fragment %d is empty", ErrMalformedInput, i)
		}
		if j, dup := seen[f]; dup {
			return fmt.Errorf("%w: fragments %d and %d are identical", ErrMalformedInput, j, i)
		}
		seen[f] = i
	}
	return nil
}
