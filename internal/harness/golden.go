package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/socperf/internal/analysis"
	"github.com/roach88/socperf/internal/report"
)

// Snapshot captures the complete report for a scenario execution.
// It is serialized with canonical JSON for deterministic comparison.
type Snapshot struct {
	Scenario string           `json:"scenario"`
	Report   *analysis.Report `json:"report"`
}

// RunWithGolden executes a scenario and compares the report against a golden file.
// The golden file is stored in testdata/golden/{scenario.Name}.golden
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the report doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already-computed result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := report.MarshalIndent(Snapshot{Scenario: scenarioName, Report: result.Report})
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}
