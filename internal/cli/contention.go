package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/socperf/internal/loader"
	"github.com/roach88/socperf/internal/model"
)

// ContentionResult is the JSON payload of the contention command.
type ContentionResult struct {
	Contention []model.ContentionAnalysis `json:"contention"`
	Summary    model.ContentionSummary    `json:"summary"`
}

// NewContentionCommand creates the contention command.
func NewContentionCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalysisOptions{RootOptions: rootOpts}
	var failOn string

	cmd := &cobra.Command{
		Use:   "contention <diagram>",
		Short: "Grade contention on shared components",
		Long: `Find components used by more than one flow, compare total demand with
available bandwidth, and grade each one from none to critical with a
recommendation.

With --fail-on, the command exits 1 when any component is graded at or
above the given severity, for use as a CI gate.

Exit codes:
  0 - Analysis complete (and below --fail-on)
  1 - Contention at or above --fail-on
  2 - Command error (invalid diagram, bad flags)

Examples:
  socperf contention soc.yaml
  socperf contention soc.yaml --distribution weighted --fail-on high`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runContention(opts, model.Severity(failOn), args[0], cmd)
		},
	}

	addAnalysisFlags(cmd, opts)
	addRequestFlag(cmd, opts)
	cmd.Flags().StringVar(&failOn, "fail-on", "", "exit 1 at or above this severity: low|medium|high|critical")

	return cmd
}

func runContention(opts *AnalysisOptions, failOn model.Severity, diagramPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if failOn != "" && failOn.Rank() == 0 {
		return fail(formatter, loader.ErrCodeInvalid, ExitCommandError, "invalid --fail-on",
			fmt.Errorf("%q is not one of low, medium, high, critical", failOn))
	}

	rep, err := runAnalysis(formatter, opts, diagramPath, nil)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		err = formatter.Success(ContentionResult{Contention: rep.Contention, Summary: rep.ContentionSummary})
	} else {
		err = newPrinter(opts.RootOptions, cmd.OutOrStdout()).Contention(rep)
	}
	if err != nil {
		return err
	}

	if failOn != "" {
		// Records are sorted most severe first.
		if len(rep.Contention) > 0 && rep.Contention[0].Severity.Rank() >= failOn.Rank() {
			worst := rep.Contention[0]
			return NewExitError(ExitFailure, fmt.Sprintf("%s contention on %s (threshold %s)", worst.Severity, worst.Component.ID, failOn))
		}
	}
	return nil
}
