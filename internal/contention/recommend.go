package contention

import (
	"fmt"
	"strings"

	"github.com/roach88/socperf/internal/classify"
	"github.com/roach88/socperf/internal/model"
	"github.com/roach88/socperf/internal/units"
)

// Recommend produces remediation advice for a shared component.
func Recommend(cat classify.Category, sev model.Severity, flows int, demand, available float64) string {
	switch sev {
	case model.SeverityNone:
		return "No action needed: demand is well within capacity."
	case model.SeverityLow:
		return "Utilization is elevated but within capacity; monitor as traffic grows."
	}

	var parts []string
	switch cat.Class {
	case classify.ClassInterconnect:
		if flows > 4 {
			parts = append(parts, fmt.Sprintf("Split the %d competing flows with a hierarchical interconnect topology", flows))
		}
		parts = append(parts, "Widen the fabric data path or raise its clock")
		if sev.Rank() >= model.SeverityHigh.Rank() {
			parts = append(parts, "Apply QoS policies to prioritize latency-critical flows")
		}
	case classify.ClassMemory:
		parts = append(parts, "Use a multi-channel memory configuration")
		parts = append(parts, "Add caching to absorb repeated accesses")
	case classify.ClassBridge:
		parts = append(parts, "Bypass the bridge with a direct fabric connection or widen it")
	case classify.ClassDMA:
		parts = append(parts, "Add DMA channels or stagger transfers")
	case classify.ClassAccelerator:
		parts = append(parts, "Add local buffering to the accelerator or batch its requests")
	case classify.ClassPeripheral, classify.ClassConnectivity, classify.ClassStorage:
		parts = append(parts, "Move high-rate traffic to a faster bus or a dedicated controller")
	default:
		parts = append(parts, "Add another instance or upgrade its bandwidth")
	}

	if available > 0 && demand > available {
		reduce := units.Round((demand-available)/demand*100, 1)
		parts = append(parts, fmt.Sprintf("Reduce demand by %s%%", formatPercent(reduce)))
	}
	return strings.Join(parts, "; ") + "."
}

func formatPercent(v float64) string {
	return strings.TrimSuffix(fmt.Sprintf("%.1f", v), ".0")
}

func roundMbps(v float64) float64 {
	return units.Round(v, 2)
}
