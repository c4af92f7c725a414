package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/socperf/internal/loader"
	"github.com/roach88/socperf/internal/model"
)

// PathResult is the JSON payload of the path command.
type PathResult struct {
	Flow    model.DataFlow           `json:"flow"`
	Metrics model.PerformanceMetrics `json:"metrics"`
}

// NewPathCommand creates the path command.
func NewPathCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalysisOptions{RootOptions: rootOpts}
	req := model.FlowRequest{}

	cmd := &cobra.Command{
		Use:   "path <diagram> <source> <target>",
		Short: "Analyze one explicit source-to-target flow",
		Long: `Resolve the flow between two nodes and report its performance.

A discovered flow with the same endpoints is reused; otherwise the
shortest path is taken, so flows from fabric nodes such as DMA engines
can be analyzed too. Interface ids pin the flow to specific ports.

Exit codes:
  0 - Flow found and analyzed
  1 - No path between the nodes
  2 - Command error (invalid diagram, bad flags)

Examples:
  socperf path soc.yaml cpu ddr
  socperf path soc.yaml dma sram --source-interface m0 --id dma-copy`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.SourceID, req.TargetID = args[1], args[2]
			return runPath(opts, req, args[0], cmd)
		},
	}

	addAnalysisFlags(cmd, opts)
	cmd.Flags().StringVar(&req.FlowID, "id", "", "flow id to assign")
	cmd.Flags().StringVar(&req.SourceInterface, "source-interface", "", "source interface id")
	cmd.Flags().StringVar(&req.TargetInterface, "target-interface", "", "target interface id")

	return cmd
}

func runPath(opts *AnalysisOptions, req model.FlowRequest, diagramPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	rep, err := runAnalysis(formatter, opts, diagramPath, []model.FlowRequest{req})
	if err != nil {
		return err
	}

	if len(rep.Flows) == 0 {
		return fail(formatter, loader.ErrCodeNotFound, ExitFailure, "flow not found",
			fmt.Errorf("no path from %s to %s", req.SourceID, req.TargetID))
	}

	if opts.Format == "json" {
		f := rep.Flows[0]
		m, _ := rep.Metric(f.ID)
		return formatter.Success(PathResult{Flow: f, Metrics: m})
	}
	return newPrinter(opts.RootOptions, cmd.OutOrStdout()).Flows(rep)
}
