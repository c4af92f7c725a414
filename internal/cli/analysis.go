package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/roach88/socperf/internal/analysis"
	"github.com/roach88/socperf/internal/contention"
	"github.com/roach88/socperf/internal/flow"
	"github.com/roach88/socperf/internal/loader"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/report"
)

// Flow id schemes accepted by --ids.
const (
	IDsHash     = "hash"
	IDsUUID     = "uuid"
	IDsSequence = "seq"
)

// AnalysisOptions holds the flags shared by every analysis command.
// Zero values defer to the config file, then to the built-in defaults.
type AnalysisOptions struct {
	*RootOptions
	Config       string
	ClockMHz     float64
	MaxDepth     int
	Distribution string
	IDs          string
	Requests     []string
}

func addAnalysisFlags(cmd *cobra.Command, opts *AnalysisOptions) {
	cmd.Flags().StringVarP(&opts.Config, "config", "c", "", "CUE analysis configuration (clock, depth, distribution, component catalog)")
	cmd.Flags().Float64Var(&opts.ClockMHz, "clock", 0, "global default clock in MHz (overrides config)")
	cmd.Flags().IntVar(&opts.MaxDepth, "max-depth", 0, "maximum hops per discovered flow (overrides config)")
	cmd.Flags().StringVar(&opts.Distribution, "distribution", "", "contention allocation: fair|weighted (overrides config)")
	cmd.Flags().StringVar(&opts.IDs, "ids", IDsHash, "flow id scheme: hash|uuid|seq")
}

func addRequestFlag(cmd *cobra.Command, opts *AnalysisOptions) {
	cmd.Flags().StringArrayVarP(&opts.Requests, "request", "r", nil, "analyze only SOURCE:TARGET (repeatable)")
}

// newIDGenerator maps an --ids value to a generator.
func newIDGenerator(scheme string) (flow.IDGenerator, error) {
	switch scheme {
	case IDsHash, "":
		return flow.PathHashGenerator{}, nil
	case IDsUUID:
		return flow.UUIDv7Generator{}, nil
	case IDsSequence:
		return flow.NewSequenceGenerator("flow"), nil
	default:
		return nil, fmt.Errorf("invalid ids %q: must be one of hash, uuid, seq", scheme)
	}
}

// parseRequest parses "SOURCE:TARGET".
func parseRequest(s string) (model.FlowRequest, error) {
	src, dst, ok := strings.Cut(s, ":")
	src, dst = strings.TrimSpace(src), strings.TrimSpace(dst)
	if !ok || src == "" || dst == "" {
		return model.FlowRequest{}, fmt.Errorf("invalid request %q: expected SOURCE:TARGET", s)
	}
	return model.FlowRequest{SourceID: src, TargetID: dst}, nil
}

// buildContext layers config file, then flags, over the defaults.
func buildContext(opts *AnalysisOptions) (analysis.Context, error) {
	var ctxOpts []analysis.ContextOption

	if opts.Config != "" {
		cfg, err := loader.LoadConfig(opts.Config)
		if err != nil {
			return analysis.Context{}, err
		}
		cfgOpts, err := cfg.Options()
		if err != nil {
			return analysis.Context{}, err
		}
		ctxOpts = append(ctxOpts, cfgOpts...)
	}

	if opts.ClockMHz < 0 {
		return analysis.Context{}, fmt.Errorf("invalid clock %v: must be positive", opts.ClockMHz)
	}
	if opts.MaxDepth < 0 {
		return analysis.Context{}, fmt.Errorf("invalid max-depth %d: must be positive", opts.MaxDepth)
	}

	var mode contention.Mode
	if opts.Distribution != "" {
		m, err := contention.ParseMode(opts.Distribution)
		if err != nil {
			return analysis.Context{}, err
		}
		mode = m
	}

	ids, err := newIDGenerator(opts.IDs)
	if err != nil {
		return analysis.Context{}, err
	}

	ctxOpts = append(ctxOpts,
		analysis.WithClockMHz(opts.ClockMHz),
		analysis.WithMaxDepth(opts.MaxDepth),
		analysis.WithDistribution(mode),
		analysis.WithIDGenerator(ids),
	)
	return analysis.NewContext(ctxOpts...), nil
}

// runAnalysis loads the diagram and runs the engine. Input problems come
// back as ExitCommandError, reported through the formatter in JSON mode.
func runAnalysis(f *OutputFormatter, opts *AnalysisOptions, diagramPath string, requests []model.FlowRequest) (*analysis.Report, error) {
	for _, s := range opts.Requests {
		req, err := parseRequest(s)
		if err != nil {
			return nil, fail(f, loader.ErrCodeInvalid, ExitCommandError, "parsing request", err)
		}
		requests = append(requests, req)
	}

	ctx, err := buildContext(opts)
	if err != nil {
		return nil, fail(f, loader.Code(err), ExitCommandError, "configuring analysis", err)
	}

	d, err := loader.LoadDiagram(diagramPath)
	if err != nil {
		return nil, fail(f, loader.Code(err), ExitCommandError, "loading diagram", err)
	}
	f.VerboseLog("Loaded %s: %d nodes, %d edges", diagramPath, len(d.Nodes), len(d.Edges))

	rep, err := analysis.Run(ctx, d, requests)
	if err != nil {
		return nil, fail(f, loader.ErrCodeGeneric, ExitFailure, "analysis failed", err)
	}
	f.VerboseLog("Analyzed %d flows, %d shared components", len(rep.Flows), len(rep.Contention))
	return rep, nil
}

// fail reports err in JSON mode and wraps it with an exit code.
// Text-mode errors are printed once by main.
func fail(f *OutputFormatter, code string, exit int, message string, err error) error {
	if f.Format == "json" {
		_ = f.Error(code, fmt.Sprintf("%s: %v", message, err), nil)
	}
	return WrapExitError(exit, message, err)
}

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

func newPrinter(opts *RootOptions, w io.Writer) *report.Printer {
	return report.NewPrinter(w, !opts.NoColor && !color.NoColor)
}
