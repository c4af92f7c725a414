package model

// TrafficType classifies a flow by what its endpoints are.
type TrafficType string

const (
	TrafficMemoryAccess     TrafficType = "memory_access"
	TrafficPeripheralAccess TrafficType = "peripheral_access"
	TrafficDMA              TrafficType = "dma"
	TrafficAccelerator      TrafficType = "accelerator"
	TrafficP2P              TrafficType = "p2p"
	TrafficUnknown          TrafficType = "unknown"
)

// TrafficTypes lists every traffic type in report order.
var TrafficTypes = []TrafficType{
	TrafficMemoryAccess,
	TrafficPeripheralAccess,
	TrafficDMA,
	TrafficAccelerator,
	TrafficP2P,
	TrafficUnknown,
}

// UnknownProtocol is reported when no traversed edge carries a label.
const UnknownProtocol = "Unknown"

// NodeRef summarizes a node inside results.
type NodeRef struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
}

// DataFlow is one source→sink transfer path through the diagram.
//
// INVARIANTS:
//   - len(Path) >= 2
//   - Path[0] == Source and Path[len(Path)-1] == Sink
//   - Edges[i] joins Path[i] to Path[i+1]
type DataFlow struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	TrafficType     TrafficType `json:"trafficType"`
	Source          NodeRef     `json:"source"`
	Sink            NodeRef     `json:"sink"`
	Path            []NodeRef   `json:"path"`
	Edges           []string    `json:"edges"`
	Protocol        string      `json:"protocol"`
	SourceInterface string      `json:"sourceInterface,omitempty"`
	TargetInterface string      `json:"targetInterface,omitempty"`
}

// Touches reports whether the flow's path contains the node.
func (f DataFlow) Touches(nodeID string) bool {
	for _, ref := range f.Path {
		if ref.ID == nodeID {
			return true
		}
	}
	return false
}

// FlowRequest asks for a specific source→target flow.
type FlowRequest struct {
	SourceID        string `json:"source" yaml:"source"`
	TargetID        string `json:"target" yaml:"target"`
	FlowID          string `json:"flowId,omitempty" yaml:"flow_id,omitempty"`
	SourceInterface string `json:"sourceInterface,omitempty" yaml:"source_interface,omitempty"`
	TargetInterface string `json:"targetInterface,omitempty" yaml:"target_interface,omitempty"`
}

// ComponentPerformance is one component's resolved figures for one flow.
type ComponentPerformance struct {
	ComponentID   string  `json:"componentId"`
	Label         string  `json:"label"`
	Category      string  `json:"category,omitempty"`
	DataWidth     float64 `json:"dataWidth"`
	FrequencyMHz  float64 `json:"frequencyMHz"`
	BandwidthMbps float64 `json:"bandwidthMbps"`
	LatencyCycles float64 `json:"latencyCycles"`
	IsBottleneck  bool    `json:"isBottleneck"`
}

// PerformanceMetrics aggregates one flow's performance.
//
// Unresolved flows carry no components and zero figures; DataWidth is
// then unresolved.
type PerformanceMetrics struct {
	FlowID            string                 `json:"flowId"`
	FlowName          string                 `json:"flowName"`
	MaxThroughputMbps float64                `json:"maxThroughputMbps"`
	Bottleneck        *NodeRef               `json:"bottleneck,omitempty"`
	BottleneckReason  string                 `json:"bottleneckReason,omitempty"`
	LatencyNs         float64                `json:"latencyNs"`
	DataWidth         Number                 `json:"dataWidth"`
	FrequencyMHz      float64                `json:"frequencyMHz"`
	Efficiency        float64                `json:"efficiency"`
	Unresolved        bool                   `json:"unresolved,omitempty"`
	Components        []ComponentPerformance `json:"components"`
}

// Component returns the record for a component on this flow.
func (m PerformanceMetrics) Component(id string) (ComponentPerformance, bool) {
	for _, c := range m.Components {
		if c.ComponentID == id {
			return c, true
		}
	}
	return ComponentPerformance{}, false
}

// PerformanceSummary aggregates metrics across flows.
type PerformanceSummary struct {
	TotalFlows             int            `json:"totalFlows"`
	AnalyzedFlows          int            `json:"analyzedFlows"`
	UnresolvedFlows        int            `json:"unresolvedFlows"`
	AvgThroughputMbps      float64        `json:"avgThroughputMbps"`
	MinThroughputMbps      float64        `json:"minThroughputMbps"`
	MaxThroughputMbps      float64        `json:"maxThroughputMbps"`
	AvgLatencyNs           float64        `json:"avgLatencyNs"`
	AvgEfficiency          float64        `json:"avgEfficiency"`
	BottleneckDistribution map[string]int `json:"bottleneckDistribution"`
}

// Severity grades contention on a shared component.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities from none (0) to critical (4).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// CompetingFlow is a flow's claim on a shared component.
type CompetingFlow struct {
	FlowID             string  `json:"flowId"`
	FlowName           string  `json:"flowName"`
	RequestedBandwidth float64 `json:"requestedBandwidth"`
}

// FlowAllocation is the capacity granted to one flow.
type FlowAllocation struct {
	FlowID    string  `json:"flowId"`
	Bandwidth float64 `json:"bandwidth"`
}

// ContentionAnalysis describes one shared component.
type ContentionAnalysis struct {
	Component          NodeRef          `json:"component"`
	CompetingFlows     []CompetingFlow  `json:"competingFlows"`
	TotalDemand        float64          `json:"totalDemand"`
	AvailableBandwidth float64          `json:"availableBandwidth"`
	ContentionRatio    float64          `json:"contentionRatio"`
	Severity           Severity         `json:"severity"`
	WorstCaseLatencyNs float64          `json:"worstCaseLatencyNs"`
	FairShareBandwidth float64          `json:"fairShareBandwidth"`
	Allocations        []FlowAllocation `json:"allocations,omitempty"`
	DirectSharing      bool             `json:"directSharing,omitempty"`
	Recommendation     string           `json:"recommendation"`
}

// ContentionSummary counts contention points by severity.
type ContentionSummary struct {
	TotalPoints   int `json:"totalPoints"`
	Critical      int `json:"critical"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
	Low           int `json:"low"`
	None          int `json:"none"`
	AffectedFlows int `json:"affectedFlows"`
	OverallScore  int `json:"overallScore"`
}
