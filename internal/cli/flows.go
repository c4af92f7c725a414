package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/socperf/internal/loader"
	"github.com/roach88/socperf/internal/model"
)

// FlowsResult is the JSON payload of the flows command.
type FlowsResult struct {
	Flows         []model.DataFlow               `json:"flows"`
	TrafficGroups map[model.TrafficType][]string `json:"trafficGroups"`
}

// NewFlowsCommand creates the flows command.
func NewFlowsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalysisOptions{RootOptions: rootOpts}
	var traffic string

	cmd := &cobra.Command{
		Use:   "flows <diagram>",
		Short: "List discovered data flows",
		Long: `List every source-to-sink data flow in a diagram with its path, traffic
type, protocol and per-flow performance.

Examples:
  socperf flows soc.yaml
  socperf flows soc.yaml --traffic memory_access --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFlows(opts, model.TrafficType(traffic), args[0], cmd)
		},
	}

	addAnalysisFlags(cmd, opts)
	cmd.Flags().StringVar(&traffic, "traffic", "", "only list flows of this traffic type")

	return cmd
}

func runFlows(opts *AnalysisOptions, traffic model.TrafficType, diagramPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if traffic != "" && !validTraffic(traffic) {
		return fail(formatter, loader.ErrCodeInvalid, ExitCommandError, "invalid --traffic",
			fmt.Errorf("%q is not one of %v", traffic, model.TrafficTypes))
	}

	rep, err := runAnalysis(formatter, opts, diagramPath, nil)
	if err != nil {
		return err
	}

	if traffic != "" {
		var kept []model.DataFlow
		for _, f := range rep.Flows {
			if f.TrafficType == traffic {
				kept = append(kept, f)
			}
		}
		filtered := *rep
		filtered.Flows = kept
		filtered.TrafficGroups = map[model.TrafficType][]string{}
		if ids, ok := rep.TrafficGroups[traffic]; ok {
			filtered.TrafficGroups[traffic] = ids
		}
		rep = &filtered
	}

	if opts.Format == "json" {
		flows := rep.Flows
		if flows == nil {
			flows = []model.DataFlow{}
		}
		return formatter.Success(FlowsResult{Flows: flows, TrafficGroups: rep.TrafficGroups})
	}
	return newPrinter(opts.RootOptions, cmd.OutOrStdout()).Flows(rep)
}

func validTraffic(t model.TrafficType) bool {
	for _, known := range model.TrafficTypes {
		if t == known {
			return true
		}
	}
	return false
}
