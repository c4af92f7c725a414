package report

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/roach88/socperf/internal/analysis"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/units"
)

// Printer writes human-readable report sections. The first write error is
// kept and returned by every section method.
type Printer struct {
	w        io.Writer
	err      error
	severity map[model.Severity]*color.Color
	heading  *color.Color
}

// NewPrinter creates a Printer. When useColor is false no escape
// sequences are written, regardless of the terminal.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w: w,
		severity: map[model.Severity]*color.Color{
			model.SeverityCritical: color.New(color.FgRed, color.Bold),
			model.SeverityHigh:     color.New(color.FgRed),
			model.SeverityMedium:   color.New(color.FgYellow),
			model.SeverityLow:      color.New(color.FgCyan),
			model.SeverityNone:     color.New(color.FgGreen),
		},
		heading: color.New(color.Bold),
	}
	for _, c := range append(mapValues(p.severity), p.heading) {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func mapValues(m map[model.Severity]*color.Color) []*color.Color {
	out := make([]*color.Color, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	return out
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// Report writes every section.
func (p *Printer) Report(r *analysis.Report) error {
	p.Flows(r)
	p.printf("\n")
	p.Performance(r)
	p.printf("\n")
	return p.Contention(r)
}

// Flows writes one block per flow with its metrics.
func (p *Printer) Flows(r *analysis.Report) error {
	p.printf("%s\n", p.heading.Sprintf("Flows (%d)", len(r.Flows)))
	if len(r.Flows) == 0 {
		p.printf("  none found\n")
	}

	for _, f := range r.Flows {
		p.printf("  %s  %s  [%s, %s]\n", f.ID, f.Name, f.TrafficType, f.Protocol)
		p.printf("    path: %s\n", pathLabels(f.Path))

		m, ok := r.Metric(f.ID)
		switch {
		case !ok:
		case m.Unresolved:
			p.printf("    performance: unresolved (data width %s)\n", m.DataWidth)
		default:
			p.printf("    throughput: %s Mbit/s (%s)  latency: %s ns  efficiency: %s%%\n",
				num(m.MaxThroughputMbps), units.HumanByteRate(m.MaxThroughputMbps), num(m.LatencyNs), num(m.Efficiency))
			if m.Bottleneck != nil {
				p.printf("    bottleneck: %s (%s)\n", m.Bottleneck.Label, m.BottleneckReason)
			} else {
				p.printf("    bottleneck: none (balanced path)\n")
			}
		}
	}

	if len(r.UnresolvedRequests) > 0 {
		p.printf("  unresolved requests:\n")
		for _, req := range r.UnresolvedRequests {
			p.printf("    %s → %s", req.SourceID, req.TargetID)
			if req.FlowID != "" {
				p.printf(" (%s)", req.FlowID)
			}
			p.printf(": no path\n")
		}
	}
	return p.err
}

// Performance writes the cross-flow summary.
func (p *Printer) Performance(r *analysis.Report) error {
	s := r.Performance
	p.printf("%s\n", p.heading.Sprint("Performance"))
	p.printf("  flows: %d analyzed, %d unresolved\n", s.AnalyzedFlows, s.UnresolvedFlows)
	if s.AnalyzedFlows == 0 {
		return p.err
	}
	p.printf("  throughput: avg %s / min %s / max %s Mbit/s\n",
		num(s.AvgThroughputMbps), num(s.MinThroughputMbps), num(s.MaxThroughputMbps))
	p.printf("  latency: avg %s ns  efficiency: avg %s%%\n", num(s.AvgLatencyNs), num(s.AvgEfficiency))

	if len(s.BottleneckDistribution) > 0 {
		cats := make([]string, 0, len(s.BottleneckDistribution))
		for c := range s.BottleneckDistribution {
			cats = append(cats, c)
		}
		slices.Sort(cats)
		parts := make([]string, len(cats))
		for i, c := range cats {
			parts[i] = fmt.Sprintf("%s %d", c, s.BottleneckDistribution[c])
		}
		p.printf("  bottlenecks: %s\n", strings.Join(parts, ", "))
	}
	return p.err
}

// Contention writes shared components, most severe first.
func (p *Printer) Contention(r *analysis.Report) error {
	s := r.ContentionSummary
	p.printf("%s\n", p.heading.Sprintf("Contention (score %d/100)", s.OverallScore))
	if len(r.Contention) == 0 {
		p.printf("  no shared components\n")
		return p.err
	}
	p.printf("  %d points: %d critical, %d high, %d medium, %d low; %d flows affected\n",
		s.TotalPoints, s.Critical, s.High, s.Medium, s.Low, s.AffectedFlows)

	for _, c := range r.Contention {
		label := p.severity[c.Severity].Sprintf("[%s]", c.Severity)
		p.printf("  %s %s  %d flows  demand %s / %s Mbit/s (ratio %s)\n",
			label, c.Component.Label, len(c.CompetingFlows), num(c.TotalDemand), num(c.AvailableBandwidth), num(c.ContentionRatio))
		p.printf("    worst-case latency: %s ns  fair share: %s Mbit/s\n", num(c.WorstCaseLatencyNs), num(c.FairShareBandwidth))
		if c.DirectSharing {
			p.printf("    shared directly by initiators without arbitration\n")
		}
		p.printf("    %s\n", c.Recommendation)
	}
	return p.err
}

func pathLabels(path []model.NodeRef) string {
	labels := make([]string, len(path))
	for i, ref := range path {
		labels[i] = ref.Label
	}
	return strings.Join(labels, " → ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
