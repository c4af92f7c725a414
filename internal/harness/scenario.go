package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/socperf/internal/contention"
	"github.com/roach88/socperf/internal/model"
)

// Scenario defines a conformance test scenario.
// A scenario analyzes one diagram under one context and asserts on the
// resulting report.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Diagram is the path to the diagram file (JSON, YAML or CUE).
	// Relative paths are resolved against the scenario file's directory.
	Diagram string `yaml:"diagram"`

	// Config is an optional CUE analysis configuration, resolved like Diagram.
	Config string `yaml:"config,omitempty"`

	// ClockMHz overrides the configured global clock when positive.
	ClockMHz float64 `yaml:"clock_mhz,omitempty"`

	// Distribution overrides the configured allocation mode ("fair" or "weighted").
	Distribution string `yaml:"distribution,omitempty"`

	// Requests restricts the analysis to explicit source→target flows.
	Requests []model.FlowRequest `yaml:"requests,omitempty"`

	// Assertions validate the report.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a report.
type Assertion struct {
	// Type specifies the assertion type:
	// - "flow_count": number of flows, optionally of one traffic type
	// - "flow_exists": a flow from Source to Target exists
	// - "bottleneck": the Source→Target flow's bottleneck is Component
	// - "metric": a figure of the Source→Target flow equals Value
	// - "contention_severity": Component is graded Severity
	// - "score_at_most": the overall contention score is at most Score
	// - "unresolved_count": number of flows with an unresolved data width
	Type string `yaml:"type"`

	// Source and Target identify a flow by endpoint node ids.
	Source string `yaml:"source,omitempty"`
	Target string `yaml:"target,omitempty"`

	// Traffic filters flow_count or constrains flow_exists.
	Traffic model.TrafficType `yaml:"traffic,omitempty"`

	// Protocol constrains flow_exists.
	Protocol string `yaml:"protocol,omitempty"`

	// Component is a node id (bottleneck, contention_severity).
	// An empty bottleneck component asserts that no bottleneck was flagged.
	Component string `yaml:"component,omitempty"`

	// Severity is the expected grade (contention_severity).
	Severity model.Severity `yaml:"severity,omitempty"`

	// Metric names the figure (metric): throughput, latency or efficiency.
	Metric string `yaml:"metric,omitempty"`

	// Value is the expected figure (metric).
	Value float64 `yaml:"value,omitempty"`

	// Tolerance is the allowed absolute difference (metric).
	Tolerance float64 `yaml:"tolerance,omitempty"`

	// Count is the expected number (flow_count, unresolved_count).
	Count *int `yaml:"count,omitempty"`

	// Score is the upper bound (score_at_most).
	Score *int `yaml:"score,omitempty"`
}

// Assertion type constants.
const (
	AssertFlowCount       = "flow_count"
	AssertFlowExists      = "flow_exists"
	AssertBottleneck      = "bottleneck"
	AssertMetric          = "metric"
	AssertSeverity        = "contention_severity"
	AssertScoreAtMost     = "score_at_most"
	AssertUnresolvedCount = "unresolved_count"
)

// Metric names accepted by metric assertions.
const (
	MetricThroughput = "throughput"
	MetricLatency    = "latency"
	MetricEfficiency = "efficiency"
)

// LoadScenario reads and parses a scenario YAML file.
// Diagram and config paths are resolved relative to the scenario file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Dir(path)
	scenario.Diagram = resolvePath(base, scenario.Diagram)
	scenario.Config = resolvePath(base, scenario.Config)

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Diagram == "" {
		return fmt.Errorf("diagram is required")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	if _, err := os.Stat(s.Diagram); os.IsNotExist(err) {
		return fmt.Errorf("diagram file not found: %s", s.Diagram)
	}

	if s.Config != "" {
		if _, err := os.Stat(s.Config); os.IsNotExist(err) {
			return fmt.Errorf("config file not found: %s", s.Config)
		}
	}

	if s.ClockMHz < 0 {
		return fmt.Errorf("clock_mhz must be positive, got %v", s.ClockMHz)
	}

	if _, err := contention.ParseMode(s.Distribution); err != nil {
		return err
	}

	for i, req := range s.Requests {
		if req.SourceID == "" || req.TargetID == "" {
			return fmt.Errorf("requests[%d]: source and target are required", i)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertFlowCount, AssertUnresolvedCount:
		if a.Count == nil {
			return fmt.Errorf("assertions[%d]: count is required for %s", index, a.Type)
		}
		if *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}

	case AssertFlowExists, AssertBottleneck:
		if a.Source == "" || a.Target == "" {
			return fmt.Errorf("assertions[%d]: source and target are required for %s", index, a.Type)
		}

	case AssertMetric:
		if a.Source == "" || a.Target == "" {
			return fmt.Errorf("assertions[%d]: source and target are required for metric", index)
		}
		switch a.Metric {
		case MetricThroughput, MetricLatency, MetricEfficiency:
		case "":
			return fmt.Errorf("assertions[%d]: metric is required for metric", index)
		default:
			return fmt.Errorf("assertions[%d]: unknown metric %q", index, a.Metric)
		}
		if a.Tolerance < 0 {
			return fmt.Errorf("assertions[%d]: tolerance must be non-negative", index)
		}

	case AssertSeverity:
		if a.Component == "" {
			return fmt.Errorf("assertions[%d]: component is required for contention_severity", index)
		}
		switch a.Severity {
		case model.SeverityNone, model.SeverityLow, model.SeverityMedium, model.SeverityHigh, model.SeverityCritical:
		case "":
			return fmt.Errorf("assertions[%d]: severity is required for contention_severity", index)
		default:
			return fmt.Errorf("assertions[%d]: unknown severity %q", index, a.Severity)
		}

	case AssertScoreAtMost:
		if a.Score == nil {
			return fmt.Errorf("assertions[%d]: score is required for score_at_most", index)
		}

	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type: %s", index, a.Type)
	}

	return nil
}
