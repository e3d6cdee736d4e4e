package graph

import (
	"github.com/syssam/strand"
)

// Order returns the part's slots in canonical left-to-right order, as
// determined by its meets relations. A part with a single slot needs
// no relations. Otherwise n slots require exactly n-1 meets edges
// forming one simple path; anything else fails with a
// *strand.OrderError.
func Order(p *strand.Part) ([]*strand.Slot, error) {
	return OrderSlots(p.Identity, p.Slots, p.Meets())
}

// OrderSlots is Order over an explicit slot and edge set. partID is
// used only for diagnostics.
func OrderSlots(partID string, slots []*strand.Slot, meets []*strand.Relation) ([]*strand.Slot, error) {
	if len(slots) == 1 {
		return []*strand.Slot{slots[0]}, nil
	}

	byID := make(map[string]*strand.Slot, len(slots))
	for _, s := range slots {
		byID[s.Identity] = s
	}
	// outgoing[s] holds the remaining meets edges with subject s;
	// inbound counts the remaining edges with object s.
	outgoing := make(map[string][]*strand.Relation, len(meets))
	inbound := make(map[string]int, len(meets))
	for _, m := range meets {
		outgoing[m.Subject] = append(outgoing[m.Subject], m)
		inbound[m.Object]++
	}

	order := make([]*strand.Slot, 0, len(slots))
	unordered := make(map[string]bool, len(slots))
	for _, s := range slots {
		unordered[s.Identity] = true
	}

	remaining := len(meets)
	for remaining > 0 {
		// The slot that can go next is a subject of some remaining edge
		// and the object of none.
		var unblocked []string
		for id, out := range outgoing {
			if len(out) > 0 && inbound[id] == 0 {
				unblocked = append(unblocked, id)
			}
		}
		switch {
		case len(unblocked) == 0:
			return nil, strand.NewOrderError(partID, strand.OrderCycleOrDisconnected, remainingIDs(unordered))
		case len(unblocked) > 1:
			return nil, strand.NewOrderError(partID, strand.OrderBranching, remainingIDs(unordered))
		}
		subject := unblocked[0]
		edges := outgoing[subject]
		if len(edges) != 1 {
			// A subject with several outgoing meets edges is a branch
			// even when it is the only unblocked slot.
			return nil, strand.NewOrderError(partID, strand.OrderBranching, remainingIDs(unordered))
		}
		edge := edges[0]
		slot, ok := byID[subject]
		if !ok {
			return nil, strand.NewNotFoundError(subject, partID)
		}
		order = append(order, slot)
		delete(unordered, subject)
		delete(outgoing, subject)
		inbound[edge.Object]--
		remaining--

		if remaining == 0 {
			// The final edge also places its object, the path's end.
			object, ok := byID[edge.Object]
			if !ok {
				return nil, strand.NewNotFoundError(edge.Object, partID)
			}
			order = append(order, object)
			delete(unordered, edge.Object)
		}
	}

	if len(unordered) > 0 {
		// Fewer than n-1 edges: slots left over with no path through them.
		return nil, strand.NewOrderError(partID, strand.OrderIncomplete, remainingIDs(unordered))
	}
	return order, nil
}

func remainingIDs(unordered map[string]bool) []string {
	ids := make([]string, 0, len(unordered))
	for id := range unordered {
		ids = append(ids, id)
	}
	return strand.SortByIdentity(ids)
}
