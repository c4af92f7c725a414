package classify

import (
	"github.com/roach88/socperf/internal/model"
)

// Role is how a component participates in traffic.
type Role int

const (
	// RoleSink terminates traffic.
	RoleSink Role = iota
	// RoleSource originates traffic.
	RoleSource
	// RoleRelay passes traffic through (interconnects, bridges, DMA).
	RoleRelay
)

func (r Role) String() string {
	switch r {
	case RoleSource:
		return "source"
	case RoleRelay:
		return "relay"
	default:
		return "sink"
	}
}

// Component is the classified view of one node.
type Component struct {
	Category Category
	Role     Role
}

// Classify resolves a node's category and role from its effective data.
//
// A node is a Relay when its category is a fabric kind, when its label
// contains a fabric keyword, or when its master-type and slave-type
// interface counts are balanced (within one, at least one of each). Any
// one signal is enough, whatever the category tag says.
//
// A non-relay node is a Source when its class is a known initiator or it
// exposes a master/output interface; otherwise it is a Sink.
func Classify(label string, data model.ComponentData) Component {
	cat := Parse(data.Kind())
	c := Component{Category: cat, Role: RoleSink}

	if isRelay(cat, label, data.Interfaces) {
		c.Role = RoleRelay
		return c
	}
	if cat.Class.Initiator() || hasInitiatorInterface(data.Interfaces) {
		c.Role = RoleSource
	}
	return c
}

func isRelay(cat Category, label string, ifaces []model.Interface) bool {
	if cat.Class.Fabric() {
		return true
	}
	if Parse(label).Class.Fabric() {
		return true
	}
	return balancedInterfaces(ifaces)
}

func balancedInterfaces(ifaces []model.Interface) bool {
	masters, slaves := 0, 0
	for _, iface := range ifaces {
		switch {
		case iface.Direction.Initiates():
			masters++
		case iface.Direction.Responds():
			slaves++
		}
	}
	if masters == 0 || slaves == 0 {
		return false
	}
	diff := masters - slaves
	return diff >= -1 && diff <= 1
}

func hasInitiatorInterface(ifaces []model.Interface) bool {
	for _, iface := range ifaces {
		if iface.Direction.Initiates() {
			return true
		}
	}
	return false
}
