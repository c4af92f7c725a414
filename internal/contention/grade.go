package contention

import (
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/units"
)

// Ratio is demand over capacity, or 0 when capacity is unknown.
func Ratio(demand, available float64) float64 {
	if available <= 0 {
		return 0
	}
	return demand / available
}

// SeverityFor maps a contention ratio to a severity.
func SeverityFor(ratio float64) model.Severity {
	switch {
	case ratio <= 0.5:
		return model.SeverityNone
	case ratio <= 0.8:
		return model.SeverityLow
	case ratio <= 1.0:
		return model.SeverityMedium
	case ratio <= 1.5:
		return model.SeverityHigh
	default:
		return model.SeverityCritical
	}
}

// Grade returns the reported ratio, rounded to three places, and the
// severity of that rounded value.
func Grade(demand, available float64) (float64, model.Severity) {
	ratio := units.Round(Ratio(demand, available), 3)
	return ratio, SeverityFor(ratio)
}

// WorstCaseLatencyNs estimates the latency of the last flow served.
func WorstCaseLatencyNs(baseCycles float64, flows int, demand, available float64) float64 {
	ns := baseCycles * referenceNsPerCycle
	if flows > 1 {
		ns += arbitrationNs * float64(flows-1)
	}
	if available > 0 && demand > available {
		ns *= demand / available
	}
	return ns
}

// Allocate splits available bandwidth between competing flows. Weighted
// mode falls back to fair shares when nothing is requested.
func Allocate(mode Mode, available float64, flows []model.CompetingFlow) []model.FlowAllocation {
	if len(flows) == 0 {
		return nil
	}

	var total float64
	for _, f := range flows {
		total += f.RequestedBandwidth
	}

	out := make([]model.FlowAllocation, len(flows))
	for i, f := range flows {
		share := available / float64(len(flows))
		if mode == ModeWeighted && total > 0 {
			share = available * f.RequestedBandwidth / total
		}
		out[i] = model.FlowAllocation{FlowID: f.FlowID, Bandwidth: roundMbps(share)}
	}
	return out
}

// Summarize counts records by severity and scores the design.
//
// Score is min(100, 20·critical + 10·high + 5·medium).
func Summarize(records []model.ContentionAnalysis) model.ContentionSummary {
	s := model.ContentionSummary{TotalPoints: len(records)}
	affected := map[string]bool{}

	for _, r := range records {
		switch r.Severity {
		case model.SeverityCritical:
			s.Critical++
		case model.SeverityHigh:
			s.High++
		case model.SeverityMedium:
			s.Medium++
		case model.SeverityLow:
			s.Low++
		default:
			s.None++
		}
		for _, f := range r.CompetingFlows {
			affected[f.FlowID] = true
		}
	}

	s.AffectedFlows = len(affected)
	s.OverallScore = min(100, 20*s.Critical+10*s.High+5*s.Medium)
	return s
}
