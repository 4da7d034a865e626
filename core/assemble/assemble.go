// core/assemble/assemble.go
package assemble

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fragasm-core/overlap"
)

// Sequencer turns unordered fragments into the assembled string.
type Sequencer interface {
	Sequence(ctx context.Context, fragments []string, m overlap.Matcher) (string, error)
}

// Compile-time checks.
var (
	_ Sequencer = (*Sequential)(nil)
	_ Sequencer = (*Parallel)(nil)
	_ Sequencer = (*Merge)(nil)
)

// Mode selects the assembler.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
	ModeMerge      Mode = "merge"
)

var Modes = []Mode{ModeSequential, ModeParallel, ModeMerge}

func ParseMode(s string) (Mode, error) {
	md := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes {
		if md == known {
			return md, nil
		}
	}
	return "", fmt.Errorf("unknown mode %q (want sequential | parallel | merge)", s)
}

// Options configures one assembly. The zero value is a sequential KMP
// assembly without a pattern cache.
type Options struct {
	Matcher overlap.Kind // default kmp
	Mode    Mode         // default sequential
	Workers int          // parallel mode only; < 1 means 1
	Cache   *overlap.LPSCache
	Logger  *zap.Logger

	// Instrument, when set, wraps the matcher before use.
	Instrument func(overlap.Matcher) overlap.Matcher
}

// New resolves o into an assembler and the matcher it should be given.
func New(o Options) (Sequencer, overlap.Matcher, error) {
	kind := o.Matcher
	if kind == "" {
		kind = overlap.KindKMP
	}
	m, err := overlap.New(kind, o.Cache)
	if err != nil {
		return nil, nil, err
	}
	if o.Instrument != nil {
		m = o.Instrument(m)
	}

	switch o.Mode {
	case "", ModeSequential:
		return NewSequential(o.Logger), m, nil
	case ModeParallel:
		return NewParallel(o.Workers, o.Logger), m, nil
	case ModeMerge:
		return NewMerge(o.Logger), m, nil
	default:
		return nil, nil, fmt.Errorf("unknown mode %q", o.Mode)
	}
}

// Assemble reconstructs the sequence the fragments were cut from.
func Assemble(ctx context.Context, fragments []string, o Options) (string, error) {
	seq, m, err := New(o)
	if err != nil {
		return "", err
	}
	return seq.Sequence(ctx, fragments, m)
}
