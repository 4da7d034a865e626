// internal/app/app.go
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"fragasm-core/assemble"
	"fragasm-core/overlap"

	"fragasm/internal/appcore"
	"fragasm/internal/cliutil"
	"fragasm/internal/config"
	"fragasm/internal/logging"
	"fragasm/internal/version"
)

type options struct {
	configPath  string
	matcher     string
	mode        string
	workers     int
	cacheSize   int
	output      string
	noHeader    bool
	metricsFile string
	verbose     bool
	quiet       bool
}

// usageError marks bad flags, arguments or configuration (exit 2).
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var o options
	cmd := &cobra.Command{
		Use:   "fragasm [flags] FILE...",
		Short: "Reassemble a sequence from overlapping fragments",
		Long: `fragasm reads header-delimited fragment files (">" lines start a record,
"-" reads stdin, gzip is detected) and reconstructs the string each file's
fragments were cut from. Two fragments join when the tail of one matches the
head of the other over more than half of both.

Settings come from --config (YAML), then FRAGASM_MATCHER, FRAGASM_MODE and
FRAGASM_WORKERS, then flags.`,
		Version:       version.Version,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := run(cmd, o, args, stdout, stderr)
			*code = c
			return err
		},
	}
	cmd.SetVersionTemplate("fragasm version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := cmd.Flags()
	f.StringVar(&o.configPath, "config", "", "YAML config file")
	f.StringVarP(&o.matcher, "matcher", "m", string(overlap.KindKMP), "overlap matcher: naive | kmp")
	f.StringVar(&o.mode, "mode", string(assemble.ModeSequential), "assembler: sequential | parallel | merge")
	f.IntVarP(&o.workers, "workers", "t", 0, "parallel workers (0 = all CPUs)")
	f.IntVar(&o.cacheSize, "cache-size", 0, "KMP pattern cache entries (0 = default)")
	f.StringVarP(&o.output, "output", "o", "text", "output format: text | json | jsonl | fasta")
	f.BoolVar(&o.noHeader, "no-header", false, "omit the text header row")
	f.StringVar(&o.metricsFile, "metrics", "", "write Prometheus text metrics to FILE")
	f.BoolVar(&o.verbose, "verbose", false, "debug logging")
	f.BoolVarP(&o.quiet, "quiet", "q", false, "log errors only")
	return cmd
}

// resolve layers flags that were set explicitly over file and environment settings.
func resolve(cmd *cobra.Command, o options) (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	if f.Changed("matcher") {
		cfg.Matcher = o.matcher
	}
	if f.Changed("mode") {
		cfg.Mode = o.mode
	}
	if f.Changed("workers") {
		cfg.Workers = o.workers
	}
	if f.Changed("cache-size") {
		cfg.CacheSize = o.cacheSize
	}
	if f.Changed("output") {
		cfg.Output = o.output
	}
	if f.Changed("no-header") {
		cfg.Header = !o.noHeader
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, o options, args []string, stdout, stderr io.Writer) (int, error) {
	cfg, err := resolve(cmd, o)
	if err != nil {
		return appcore.ExitUsage, usageError{err}
	}
	inputs, err := cliutil.ExpandPositionals(args)
	if err != nil {
		return appcore.ExitUsage, usageError{err}
	}
	// validated above
	kind, _ := overlap.ParseKind(cfg.Matcher)
	mode, _ := assemble.ParseMode(cfg.Mode)

	log := logging.New(o.verbose, o.quiet, stderr)
	defer func() { _ = log.Sync() }()

	return appcore.Run(cmd.Context(), stdout, stderr, appcore.Options{
		Inputs:      inputs,
		Matcher:     kind,
		Mode:        mode,
		Workers:     cfg.Workers,
		CacheSize:   cfg.CacheSize,
		Output:      cfg.Output,
		Header:      cfg.Header,
		MetricsFile: o.metricsFile,
		Logger:      log,
	}), nil
}

// RunContext runs the CLI with argv (without the program name) and returns
// the process exit code.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	code := appcore.ExitOK
	cmd := newRootCmd(stdout, stderr, &code)
	cmd.SetArgs(argv)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(parent); err != nil {
		_, _ = fmt.Fprintln(stderr, "error:", err)
		var ue usageError
		if errors.As(err, &ue) || code == appcore.ExitOK {
			_, _ = fmt.Fprintln(stderr, "Run 'fragasm --help' for usage.")
			return appcore.ExitUsage
		}
	}
	return code
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
