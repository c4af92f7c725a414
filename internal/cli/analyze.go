package cli

import (
	"github.com/spf13/cobra"
)

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AnalysisOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "analyze <diagram>",
		Short: "Run the full analysis on a diagram",
		Long: `Discover every data flow in a diagram, model its throughput, latency and
bottleneck, and grade contention on components shared between flows.

The diagram may be JSON, YAML or CUE. A CUE configuration supplies the
global clock, discovery depth, allocation mode and component catalog;
flags override it.

JSON output carries a fingerprint: a content hash of the canonical report,
stable across runs when flow ids are (the default "hash" scheme).

Examples:
  socperf analyze soc.yaml
  socperf analyze soc.json --config soc.cue --clock 800
  socperf analyze soc.cue -r cpu:ddr -r dma:sram --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(opts, args[0], cmd)
		},
	}

	addAnalysisFlags(cmd, opts)
	addRequestFlag(cmd, opts)

	return cmd
}

func runAnalyze(opts *AnalysisOptions, diagramPath string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	rep, err := runAnalysis(formatter, opts, diagramPath, nil)
	if err != nil {
		return err
	}

	if opts.Format == "json" {
		return formatter.SuccessWithFingerprint(rep)
	}
	return newPrinter(opts.RootOptions, cmd.OutOrStdout()).Report(rep)
}
