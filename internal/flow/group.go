package flow

import "github.com/roach88/socperf/internal/model"

// GroupByTraffic buckets flows by traffic type, preserving input order
// inside each bucket.
func GroupByTraffic(flows []model.DataFlow) map[model.TrafficType][]model.DataFlow {
	groups := make(map[model.TrafficType][]model.DataFlow)
	for _, f := range flows {
		groups[f.TrafficType] = append(groups[f.TrafficType], f)
	}
	return groups
}

// SharedComponent is a node traversed by more than one flow.
type SharedComponent struct {
	Node    model.NodeRef
	FlowIDs []string
}

// SharedComponents returns every node touched by more than one flow, in the
// order nodes first appear across the flows.
func SharedComponents(flows []model.DataFlow) []SharedComponent {
	var order []string
	refs := make(map[string]model.NodeRef)
	users := make(map[string][]string)

	for _, f := range flows {
		seen := make(map[string]bool, len(f.Path))
		for _, ref := range f.Path {
			if seen[ref.ID] {
				continue
			}
			seen[ref.ID] = true
			if _, ok := refs[ref.ID]; !ok {
				refs[ref.ID] = ref
				order = append(order, ref.ID)
			}
			users[ref.ID] = append(users[ref.ID], f.ID)
		}
	}

	var shared []SharedComponent
	for _, id := range order {
		if len(users[id]) > 1 {
			shared = append(shared, SharedComponent{Node: refs[id], FlowIDs: users[id]})
		}
	}
	return shared
}
