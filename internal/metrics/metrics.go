// internal/metrics/metrics.go
package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"fragasm-core/assemble"
	"fragasm-core/overlap"
)

const namespace = "fragasm"

// Assembly outcomes used as the "result" label.
const (
	ResultOK        = "ok"
	ResultMalformed = "malformed"
	ResultStalled   = "stalled"
	ResultCanceled  = "canceled"
	ResultError     = "error"
)

// Metrics owns a private registry so repeated runs in one process (tests,
// embedding) never collide on the default registerer.
type Metrics struct {
	reg *prometheus.Registry

	matcherCalls *prometheus.CounterVec
	assemblies   *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	fragments    prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		reg: reg,
		matcherCalls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matcher_calls_total",
			Help:      "Overlap matcher invocations",
		}, []string{"matcher"}),
		assemblies: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assemblies_total",
			Help:      "Assemblies attempted, by mode and outcome",
		}, []string{"mode", "result"}),
		duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assembly_duration_seconds",
			Help:      "Wall time of one assembly",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"mode"}),
		fragments: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fragments_total",
			Help:      "Fragments read from all inputs",
		}),
	}
}

func (m *Metrics) Registry() *prometheus.Registry { return m.reg }

// Instrument returns a wrapper for assemble.Options.Instrument that counts
// matcher calls under the given matcher label.
func (m *Metrics) Instrument(kind overlap.Kind) func(overlap.Matcher) overlap.Matcher {
	c := m.matcherCalls.WithLabelValues(string(kind))
	return func(inner overlap.Matcher) overlap.Matcher {
		return countingMatcher{Matcher: inner, calls: c}
	}
}

type countingMatcher struct {
	overlap.Matcher
	calls prometheus.Counter
}

func (c countingMatcher) OverlapIndex(suffix, prefix string) int {
	c.calls.Inc()
	return c.Matcher.OverlapIndex(suffix, prefix)
}

// WatchCache exports the pattern cache statistics. A registry exports one
// cache; watching a second one returns the registration error.
func (m *Metrics) WatchCache(c *overlap.LPSCache) error {
	collectors := []prometheus.Collector{
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lps_cache", Name: "hits_total",
			Help: "Prefix-function cache hits",
		}, func() float64 { return float64(c.Stats().Hits) }),
		prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "lps_cache", Name: "misses_total",
			Help: "Prefix-function cache misses",
		}, func() float64 { return float64(c.Stats().Misses) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "lps_cache", Name: "entries",
			Help: "Prefix-function tables currently cached",
		}, func() float64 { return float64(c.Len()) }),
	}
	for _, col := range collectors {
		if err := m.reg.Register(col); err != nil {
			return err
		}
	}
	return nil
}

// ObserveFragments counts fragments read from one input.
func (m *Metrics) ObserveFragments(n int) { m.fragments.Add(float64(n)) }

// ObserveAssembly records one assembly outcome.
func (m *Metrics) ObserveAssembly(mode assemble.Mode, err error, d time.Duration) {
	m.assemblies.WithLabelValues(string(mode), Result(err)).Inc()
	m.duration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

// Result maps an assembly error onto its label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, assemble.ErrMalformedInput):
		return ResultMalformed
	case errors.Is(err, assemble.ErrStalledAssembly):
		return ResultStalled
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ResultCanceled
	default:
		return ResultError
	}
}

// WriteText dumps the registry in the Prometheus text exposition format.
func (m *Metrics) WriteText(w io.Writer) error {
	mfs, err := m.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// WriteFile is WriteText into a freshly created file.
func (m *Metrics) WriteFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := m.WriteText(fh); err != nil {
		_ = fh.Close()
		return fmt.Errorf("metrics: %w", err)
	}
	return fh.Close()
}
