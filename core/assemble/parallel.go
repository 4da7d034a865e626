// core/assemble/parallel.go
package assemble

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fragasm-core/overlap"
)

// Parallel fills the full overlap matrix on a fixed pool of workers, waits for
// all of them, then walks the successor map from the chain head.
//
// Rows are split into contiguous ranges, one per worker, so no two workers
// write the same matrix cell. Only the SuccessorMap is shared.
type Parallel struct {
	workers int
	log     *zap.Logger
}

// NewParallel returns a Parallel assembler; workers < 1 is treated as 1.
func NewParallel(workers int, log *zap.Logger) *Parallel {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Parallel{workers: workers, log: log}
}

func (p *Parallel) Workers() int { return p.workers }

func (p *Parallel) Sequence(ctx context.Context, fragments []string, m overlap.Matcher) (string, error) {
	c, err := p.Chain(ctx, fragments, m)
	if err != nil {
		return "", err
	}
	return Combine(c)
}

// Chain returns the ordered chain without combining it.
func (p *Parallel) Chain(ctx context.Context, fragments []string, m overlap.Matcher) (Chain, error) {
	if err := validate(fragments); err != nil {
		return nil, err
	}
	n := len(fragments)
	if n == 1 {
		return Chain{{Fragment: fragments[0], Overlap: overlap.None}}, nil
	}

	start := time.Now()
	mx, succ, err := p.Fill(ctx, fragments, m)
	if err != nil {
		return nil, err
	}
	p.log.Debug("overlap matrix filled",
		zap.Int("fragments", n),
		zap.Int("workers", p.workers),
		zap.Int("successors", succ.Len()),
		zap.Duration("elapsed", time.Since(start)))

	head, err := oneHead(mx.Heads())
	if err != nil {
		return nil, err
	}

	chain := make(Chain, 0, n)
	seen := make(map[string]struct{}, n)
	cur := fragments[head]
	seen[cur] = struct{}{}
	for len(chain) < n-1 {
		s, ok := succ.Get(cur)
		if !ok {
			return nil, fmt.Errorf("%w: nothing continues %s after %d of %d links", ErrStalledAssembly, abbrev(cur), len(chain), n-1)
		}
		if _, dup := seen[s.Next]; dup {
			return nil, fmt.Errorf("%w: %s leads back to %s (cycle)", ErrStalledAssembly, abbrev(cur), abbrev(s.Next))
		}
		chain = append(chain, Link{Fragment: cur, Overlap: s.Overlap})
		cur = s.Next
		seen[cur] = struct{}{}
	}
	chain = append(chain, Link{Fragment: cur, Overlap: overlap.None})

	p.log.Debug("chain walked", zap.Int("head", head), zap.Int("links", len(chain)))
	return chain, nil
}

// Fill computes the overlap matrix and successor map. It returns only after
// every worker has finished; a worker error or panic, or ctx cancellation,
// discards both.
func (p *Parallel) Fill(ctx context.Context, fragments []string, m overlap.Matcher) (Matrix, *SuccessorMap, error) {
	n := len(fragments)
	mx := newMatrix(n)
	succ := NewSuccessorMap(n)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < p.workers; w++ {
		w := w
		lo, hi := rowRange(n, p.workers, w)
		if lo == hi {
			continue
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("overlap worker %d (rows %d-%d): %v", w, lo, hi, r)
				}
			}()
			for row := lo; row < hi; row++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				fillRow(mx[row], row, fragments, m, succ)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return mx, succ, nil
}

func fillRow(cells []int, row int, fragments []string, m overlap.Matcher, succ *SuccessorMap) {
	suffix := fragments[row]
	for col, prefix := range fragments {
		if col == row {
			cells[col] = overlap.None
			continue
		}
		ov := m.OverlapIndex(suffix, prefix)
		cells[col] = ov
		if ov != overlap.None {
			succ.Put(suffix, Successor{Overlap: ov, Next: prefix})
		}
	}
}

// rowRange returns worker w's half-open row range. Every worker gets n/workers
// rows; the last one also takes the remainder.
func rowRange(n, workers, w int) (lo, hi int) {
	per := n / workers
	lo = per * w
	hi = per * (w + 1)
	if w == workers-1 {
		hi = n
	}
	return lo, hi
}
