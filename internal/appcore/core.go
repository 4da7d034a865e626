// internal/appcore/core.go
package appcore

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fragasm-core/assemble"
	"fragasm-core/fasta"
	"fragasm-core/overlap"

	"fragasm/internal/metrics"
	"fragasm/internal/runutil"
	"fragasm/internal/writers"
	"fragasm/pkg/api"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitAssembly = 1
	ExitUsage    = 2
	ExitIO       = 3
	ExitCanceled = 130
)

type Options struct {
	Inputs []string // paths, "-" for stdin

	Matcher   overlap.Kind
	Mode      assemble.Mode
	Workers   int // 0 = all CPUs
	CacheSize int // 0 = overlap.DefaultCacheSize

	Output      string
	Header      bool
	MetricsFile string

	Logger  *zap.Logger
	Metrics *metrics.Metrics // nil = a fresh registry per run
}

// Run assembles every input and writes one result per input. Inputs are
// independent: a failed input is reported and the rest still run. The exit
// code is the most severe outcome seen.
func Run(parent context.Context, stdout, stderr io.Writer, o Options) int {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	mx := o.Metrics
	if mx == nil {
		mx = metrics.New()
	}
	if !writers.Known(o.Output) {
		fmt.Fprintf(stderr, "error: unknown output %q (valid: %v)\n", o.Output, writers.Formats())
		return ExitUsage
	}

	kind, mode := o.Matcher, o.Mode
	if kind == "" {
		kind = overlap.KindKMP
	}
	if mode == "" {
		mode = assemble.ModeSequential
	}

	var cache *overlap.LPSCache
	if kind == overlap.KindKMP {
		cache = overlap.NewLPSCache(o.CacheSize)
		if err := mx.WatchCache(cache); err != nil {
			log.Debug("cache metrics not exported", zap.Error(err))
		}
	}
	workers := runutil.EffectiveWorkers(o.Workers)
	aopts := assemble.Options{
		Matcher:    kind,
		Mode:       mode,
		Workers:    workers,
		Cache:      cache,
		Logger:     log,
		Instrument: mx.Instrument(kind),
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))

	outw := bufio.NewWriter(stdout)
	inCh, writeErr := writers.StartWriter(outw, o.Output, o.Header, 8)

	code := ExitOK
	worse := func(c int) {
		if c > code {
			code = c
		}
	}

	for _, src := range o.Inputs {
		if ctx.Err() != nil {
			break
		}
		res, err := assembleOne(ctx, log, mx, aopts, src)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				break
			}
			fmt.Fprintf(stderr, "error: %s: %v\n", src, err)
			worse(exitCodeFor(err))
			continue
		}
		res.RunID = runID
		if aopts.Mode == assemble.ModeParallel {
			res.Workers = workers
		}
		select {
		case inCh <- res:
		case <-ctx.Done():
		}
	}
	close(inCh)

	if werr := <-writeErr; writers.IsBrokenPipe(werr) {
		return ExitOK
	} else if werr != nil {
		fmt.Fprintln(stderr, werr)
		return ExitIO
	}
	if e := outw.Flush(); writers.IsBrokenPipe(e) {
		return ExitOK
	} else if e != nil {
		fmt.Fprintln(stderr, e)
		return ExitIO
	}

	if o.MetricsFile != "" {
		if err := mx.WriteFile(o.MetricsFile); err != nil {
			fmt.Fprintln(stderr, err)
			worse(ExitIO)
		}
	}
	if ctx.Err() != nil {
		return ExitCanceled
	}
	return code
}

// readError marks failures to obtain the fragments of an input.
type readError struct{ err error }

func (e readError) Error() string { return e.err.Error() }
func (e readError) Unwrap() error { return e.err }

func assembleOne(ctx context.Context, log *zap.Logger, mx *metrics.Metrics, o assemble.Options, src string) (api.AssemblyV1, error) {
	frags, err := fasta.ReadFragments(ctx, src)
	if err != nil {
		return api.AssemblyV1{}, readError{err}
	}
	mx.ObserveFragments(len(frags))
	log.Debug("fragments read", zap.String("source", src), zap.Int("fragments", len(frags)))

	start := time.Now()
	seq, err := assemble.Assemble(ctx, frags, o)
	took := time.Since(start)
	mx.ObserveAssembly(o.Mode, err, took)
	if err != nil {
		log.Debug("assembly failed", zap.String("source", src), zap.Error(err))
		return api.AssemblyV1{}, err
	}
	log.Info("assembled",
		zap.String("source", src),
		zap.String("mode", string(o.Mode)),
		zap.Int("fragments", len(frags)),
		zap.Int("length", len(seq)),
		zap.Duration("took", took),
	)
	return api.AssemblyV1{
		Source:     src,
		Mode:       string(o.Mode),
		Matcher:    string(o.Matcher),
		Fragments:  len(frags),
		Length:     len(seq),
		Sequence:   seq,
		DurationMS: took.Milliseconds(),
	}, nil
}

func exitCodeFor(err error) int {
	var re readError
	if errors.As(err, &re) {
		return ExitIO
	}
	return ExitAssembly
}
