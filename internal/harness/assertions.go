package harness

import (
	"fmt"
	"math"
	"strings"

	"github.com/roach88/socperf/internal/analysis"
	"github.com/roach88/socperf/internal/model"
)

// AssertionError is returned when an assertion fails.
// It includes the discovered flows to help debug the failure.
type AssertionError struct {
	Type     string           // Assertion type for categorization
	Expected string           // Human-readable expected outcome
	Actual   string           // Human-readable actual outcome
	Flows    []model.DataFlow // Flows in the report for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Flows) > 0 {
		fmt.Fprintf(&buf, "\nFlows:\n")
		for i, f := range e.Flows {
			fmt.Fprintf(&buf, "  [%d] %s %s → %s (%s)\n", i+1, f.ID, f.Source.ID, f.Sink.ID, f.TrafficType)
		}
	}

	return buf.String()
}

// findFlow returns the first flow between the given endpoints.
func findFlow(r *analysis.Report, source, target string) (model.DataFlow, bool) {
	for _, f := range r.Flows {
		if f.Source.ID == source && f.Sink.ID == target {
			return f, true
		}
	}
	return model.DataFlow{}, false
}

func missingFlow(r *analysis.Report, typ string, a Assertion) error {
	return &AssertionError{
		Type:     typ,
		Expected: fmt.Sprintf("flow %s → %s", a.Source, a.Target),
		Actual:   "not found in report",
		Flows:    r.Flows,
	}
}

// assertFlowCount checks the number of flows, optionally of one traffic type.
func assertFlowCount(r *analysis.Report, a Assertion) error {
	count := 0
	for _, f := range r.Flows {
		if a.Traffic == "" || f.TrafficType == a.Traffic {
			count++
		}
	}

	if count != *a.Count {
		what := "flows"
		if a.Traffic != "" {
			what = string(a.Traffic) + " flows"
		}
		return &AssertionError{
			Type:     AssertFlowCount,
			Expected: fmt.Sprintf("%d %s", *a.Count, what),
			Actual:   fmt.Sprintf("%d %s", count, what),
			Flows:    r.Flows,
		}
	}
	return nil
}

// assertFlowExists checks that a flow joins the endpoints, with the
// traffic type and protocol when given.
func assertFlowExists(r *analysis.Report, a Assertion) error {
	f, ok := findFlow(r, a.Source, a.Target)
	if !ok {
		return missingFlow(r, AssertFlowExists, a)
	}

	if a.Traffic != "" && f.TrafficType != a.Traffic {
		return &AssertionError{
			Type:     AssertFlowExists,
			Expected: fmt.Sprintf("traffic type %s", a.Traffic),
			Actual:   fmt.Sprintf("traffic type %s", f.TrafficType),
			Flows:    r.Flows,
		}
	}

	if a.Protocol != "" && f.Protocol != a.Protocol {
		return &AssertionError{
			Type:     AssertFlowExists,
			Expected: fmt.Sprintf("protocol %s", a.Protocol),
			Actual:   fmt.Sprintf("protocol %s", f.Protocol),
			Flows:    r.Flows,
		}
	}

	return nil
}

// assertBottleneck checks which component limits a flow.
func assertBottleneck(r *analysis.Report, a Assertion) error {
	f, ok := findFlow(r, a.Source, a.Target)
	if !ok {
		return missingFlow(r, AssertBottleneck, a)
	}
	m, _ := r.Metric(f.ID)

	actual := ""
	if m.Bottleneck != nil {
		actual = m.Bottleneck.ID
	}
	if actual != a.Component {
		return &AssertionError{
			Type:     AssertBottleneck,
			Expected: describeBottleneck(a.Component),
			Actual:   describeBottleneck(actual),
			Flows:    r.Flows,
		}
	}
	return nil
}

func describeBottleneck(id string) string {
	if id == "" {
		return "no bottleneck"
	}
	return "bottleneck " + id
}

// assertMetric compares one figure of a flow within a tolerance.
func assertMetric(r *analysis.Report, a Assertion) error {
	f, ok := findFlow(r, a.Source, a.Target)
	if !ok {
		return missingFlow(r, AssertMetric, a)
	}
	m, _ := r.Metric(f.ID)

	var actual float64
	switch a.Metric {
	case MetricThroughput:
		actual = m.MaxThroughputMbps
	case MetricLatency:
		actual = m.LatencyNs
	case MetricEfficiency:
		actual = m.Efficiency
	}

	if math.Abs(actual-a.Value) > a.Tolerance {
		return &AssertionError{
			Type:     AssertMetric,
			Expected: fmt.Sprintf("%s %v (±%v)", a.Metric, a.Value, a.Tolerance),
			Actual:   fmt.Sprintf("%s %v", a.Metric, actual),
			Flows:    r.Flows,
		}
	}
	return nil
}

// assertSeverity checks the contention grade of a shared component.
// A component that is not shared counts as severity none.
func assertSeverity(r *analysis.Report, a Assertion) error {
	actual := model.SeverityNone
	if c, ok := r.ContentionFor(a.Component); ok {
		actual = c.Severity
	}

	if actual != a.Severity {
		return &AssertionError{
			Type:     AssertSeverity,
			Expected: fmt.Sprintf("%s severity %s", a.Component, a.Severity),
			Actual:   fmt.Sprintf("%s severity %s", a.Component, actual),
			Flows:    r.Flows,
		}
	}
	return nil
}

// assertScoreAtMost bounds the overall contention score.
func assertScoreAtMost(r *analysis.Report, a Assertion) error {
	score := r.ContentionSummary.OverallScore
	if score > *a.Score {
		return &AssertionError{
			Type:     AssertScoreAtMost,
			Expected: fmt.Sprintf("score at most %d", *a.Score),
			Actual:   fmt.Sprintf("score %d", score),
			Flows:    r.Flows,
		}
	}
	return nil
}

// assertUnresolvedCount checks how many flows could not be modeled.
func assertUnresolvedCount(r *analysis.Report, a Assertion) error {
	count := r.Performance.UnresolvedFlows
	if count != *a.Count {
		return &AssertionError{
			Type:     AssertUnresolvedCount,
			Expected: fmt.Sprintf("%d unresolved flows", *a.Count),
			Actual:   fmt.Sprintf("%d unresolved flows", count),
			Flows:    r.Flows,
		}
	}
	return nil
}

// EvaluateAssertions runs every assertion against the report and records
// failures on result. Returns the failure messages in assertion order.
func EvaluateAssertions(result *Result, r *analysis.Report, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(r, a); err != nil {
			msg := fmt.Sprintf("assertions[%d]: %v", i, err)
			result.AddError(msg)
			failures = append(failures, msg)
		}
	}
	return failures
}

func evaluate(r *analysis.Report, a Assertion) error {
	switch a.Type {
	case AssertFlowCount:
		return assertFlowCount(r, a)
	case AssertFlowExists:
		return assertFlowExists(r, a)
	case AssertBottleneck:
		return assertBottleneck(r, a)
	case AssertMetric:
		return assertMetric(r, a)
	case AssertSeverity:
		return assertSeverity(r, a)
	case AssertScoreAtMost:
		return assertScoreAtMost(r, a)
	case AssertUnresolvedCount:
		return assertUnresolvedCount(r, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}
