package model

// Direction is the declared direction of an interface.
type Direction string

const (
	DirectionMaster        Direction = "master"
	DirectionSlave         Direction = "slave"
	DirectionInput         Direction = "input"
	DirectionOutput        Direction = "output"
	DirectionBidirectional Direction = "bidirectional"
)

// Initiates reports whether the direction originates transactions.
func (d Direction) Initiates() bool {
	return d == DirectionMaster || d == DirectionOutput
}

// Responds reports whether the direction terminates transactions.
func (d Direction) Responds() bool {
	return d == DirectionSlave || d == DirectionInput
}

// Interface describes one port of a component.
type Interface struct {
	ID        string    `json:"id"`
	Name      string    `json:"name,omitempty"`
	Direction Direction `json:"direction,omitempty"`
	BusType   string    `json:"busType,omitempty"`
	DataWidth Number    `json:"dataWidth"`
	Speed     Measure   `json:"speed,omitempty"`
	AddrWidth Number    `json:"addrWidth"`
	Latency   Measure   `json:"latency,omitempty"`
}

// InternalPath is a declared ingress→egress route through a component.
type InternalPath struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Bandwidth Measure `json:"bandwidth,omitempty"`
	Latency   Measure `json:"latency,omitempty"`
}

// ComponentData is the data bag attached to a diagram node.
//
// Both Category and Type carry the category tag; editors emit one or the
// other. Kind resolves the effective tag.
type ComponentData struct {
	Label          string         `json:"label,omitempty"`
	Category       string         `json:"category,omitempty"`
	Type           string         `json:"type,omitempty"`
	ComponentID    string         `json:"componentId,omitempty"`
	Interfaces     []Interface    `json:"interfaces,omitempty"`
	DataWidth      Number         `json:"dataWidth"`
	Frequency      Measure        `json:"frequency,omitempty"`
	Speed          Measure        `json:"speed,omitempty"`
	ClockFrequency Measure        `json:"clockFrequency,omitempty"`
	Latency        Measure        `json:"latency,omitempty"`
	Bandwidth      Measure        `json:"bandwidth,omitempty"`
	PathLatencies  []InternalPath `json:"pathLatencies,omitempty"`
	Paths          []InternalPath `json:"paths,omitempty"`
}

// Kind returns the category tag, preferring Category over Type.
func (d ComponentData) Kind() string {
	if d.Category != "" {
		return d.Category
	}
	return d.Type
}

// ClockMeasure returns the first node-level clock field that is set,
// checking frequency, speed and clockFrequency in that order.
func (d ComponentData) ClockMeasure() Measure {
	for _, m := range []Measure{d.Frequency, d.Speed, d.ClockFrequency} {
		if !m.IsZero() {
			return m
		}
	}
	return ""
}

// Interface returns the interface with the given id.
func (d ComponentData) Interface(id string) (Interface, bool) {
	if id == "" {
		return Interface{}, false
	}
	for _, iface := range d.Interfaces {
		if iface.ID == id {
			return iface, true
		}
	}
	return Interface{}, false
}

// Node is a component placed in a diagram.
type Node struct {
	ID   string        `json:"id"`
	Data ComponentData `json:"data"`
}

// Label returns the display label, falling back to the node id.
func (n Node) Label() string {
	if n.Data.Label != "" {
		return n.Data.Label
	}
	return n.ID
}

// Connection is a directed edge between two nodes.
type Connection struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
	Label        string `json:"label,omitempty"`
}

// Diagram is the block diagram handed in for one analysis call.
type Diagram struct {
	Nodes []Node       `json:"nodes"`
	Edges []Connection `json:"edges"`
}
