package harness

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/roach88/socperf/internal/analysis"
	"github.com/roach88/socperf/internal/contention"
	"github.com/roach88/socperf/internal/flow"
	"github.com/roach88/socperf/internal/loader"
)

// Harness is the test execution engine.
// It runs scenarios with sequential flow ids so reports are reproducible.
type Harness struct {
	logger *slog.Logger
}

// New creates a harness that logs to logger. A nil logger discards.
func New(logger *slog.Logger) *Harness {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Harness{logger: logger}
}

// Run executes a test scenario with a silent harness.
func Run(scenario *Scenario) (*Result, error) {
	return New(nil).Run(scenario)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
// 1. Load the diagram and optional CUE configuration
// 2. Apply scenario overrides (clock, distribution)
// 3. Analyze with "flow-1", "flow-2", ... ids
// 4. Evaluate assertions against the report
//
// A returned error means the scenario could not be run; assertion
// failures are reported through Result.
func (h *Harness) Run(scenario *Scenario) (*Result, error) {
	ctx, err := scenarioContext(scenario)
	if err != nil {
		return nil, err
	}

	d, err := loader.LoadDiagram(scenario.Diagram)
	if err != nil {
		return nil, fmt.Errorf("loading diagram: %w", err)
	}

	rep, err := analysis.Run(ctx, d, scenario.Requests)
	if err != nil {
		return nil, fmt.Errorf("analyzing %s: %w", scenario.Name, err)
	}

	result := NewResult()
	result.Report = rep
	failures := EvaluateAssertions(result, rep, scenario.Assertions)

	h.logger.Debug("scenario complete",
		"scenario", scenario.Name,
		"flows", len(rep.Flows),
		"assertions", len(scenario.Assertions),
		"failures", len(failures),
	)
	return result, nil
}

func scenarioContext(s *Scenario) (analysis.Context, error) {
	var opts []analysis.ContextOption
	if s.Config != "" {
		cfg, err := loader.LoadConfig(s.Config)
		if err != nil {
			return analysis.Context{}, fmt.Errorf("loading config: %w", err)
		}
		cfgOpts, err := cfg.Options()
		if err != nil {
			return analysis.Context{}, fmt.Errorf("loading config: %w", err)
		}
		opts = append(opts, cfgOpts...)
	}

	// Scenario fields win over the config file; the zero values are ignored.
	var mode contention.Mode
	if s.Distribution != "" {
		m, err := contention.ParseMode(s.Distribution)
		if err != nil {
			return analysis.Context{}, err
		}
		mode = m
	}
	opts = append(opts,
		analysis.WithClockMHz(s.ClockMHz),
		analysis.WithDistribution(mode),
		analysis.WithIDGenerator(flow.NewSequenceGenerator("flow")),
	)
	return analysis.NewContext(opts...), nil
}

// FindScenarios returns the scenario files in dir, sorted by name.
func FindScenarios(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading scenario directory: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch filepath.Ext(e.Name()) {
		case ".yaml", ".yml":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	return paths, nil
}
