package reactive

import (
	"fmt"

	"github.com/reactivewmc/rwmc/ac"
	"github.com/reactivewmc/rwmc/vector"
)

// acEdge names an RC edge from the perspective of one of its endpoints:
// the other endpoint's AC id and the edge id itself.
type acEdge struct {
	acID   int
	edgeID int
}

func (rc *RC) addRCEdgeLocked(from, to int) int {
	id := rc.newEdgeIDLocked()
	rc.edges[id] = &edge{id: id, from: from, to: to, memo: vector.Ones(rc.valueSize)}
	rc.outgoing[from] = append(rc.outgoing[from], id)
	rc.incoming[to] = append(rc.incoming[to], id)

	return id
}

// Nodes implements topo.Graph: every AC id currently in the RC.
func (rc *RC) Nodes() []int {
	out := make([]int, 0, len(rc.acs))
	for id := range rc.acs {
		out = append(out, id)
	}

	return out
}

// Children implements topo.Graph: the AC ids referenced by id's outgoing
// RC edges (the ACs id depends on through a Memory node).
func (rc *RC) Children(id int) []int {
	edges := rc.outgoing[id]
	out := make([]int, 0, len(edges))
	for _, eid := range edges {
		out = append(out, rc.edges[eid].to)
	}

	return out
}

// EdgeMemo implements ac.ValueSource: a copy of edgeID's current memo.
func (rc *RC) EdgeMemo(edgeID int) vector.Vector {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	return rc.edges[edgeID].memo.Clone()
}

// ensureParentsLocked guarantees acID has at least one incoming RC edge,
// creating one fresh parent AC if it has none, and returns the (parent AC
// id, edge id) pairs for every incoming edge.
func (rc *RC) ensureParentsLocked(acID int) []acEdge {
	if len(rc.incoming[acID]) > 0 {
		out := make([]acEdge, 0, len(rc.incoming[acID]))
		for _, eid := range rc.incoming[acID] {
			out = append(out, acEdge{acID: rc.edges[eid].from, edgeID: eid})
		}

		return out
	}

	parentID := rc.newACIDLocked()
	rc.acs[parentID] = ac.New(rc.valueSize)
	edgeID := rc.addRCEdgeLocked(parentID, acID)
	rc.queue[parentID] = struct{}{}

	parent := rc.acs[parentID]
	memoryNode := parent.CreateMemory(edgeID)
	parent.AddToNodes([]ac.NodeID{parent.Root()}, []ac.NodeID{memoryNode})

	for token, id := range rc.targets {
		if id == acID {
			rc.targets[token] = parentID
		}
	}

	return []acEdge{{acID: parentID, edgeID: edgeID}}
}

// ensureChildLocked guarantees acID has at least one outgoing RC edge,
// creating one fresh child AC if it has none, and returns the (child AC
// id, edge id) pairs for every outgoing edge.
func (rc *RC) ensureChildLocked(acID int) []acEdge {
	if len(rc.outgoing[acID]) > 0 {
		out := make([]acEdge, 0, len(rc.outgoing[acID]))
		for _, eid := range rc.outgoing[acID] {
			out = append(out, acEdge{acID: rc.edges[eid].to, edgeID: eid})
		}

		return out
	}

	childID := rc.newACIDLocked()
	rc.acs[childID] = ac.New(rc.valueSize)
	edgeID := rc.addRCEdgeLocked(acID, childID)
	rc.queue[childID] = struct{}{}

	parent := rc.acs[acID]
	memoryNode := parent.CreateMemory(edgeID)
	parent.AddToNodes([]ac.NodeID{parent.Root()}, []ac.NodeID{memoryNode})

	return []acEdge{{acID: childID, edgeID: edgeID}}
}

// enqueueWithAncestorsLocked enqueues every id in seed and every AC
// reachable from them by walking RC edges backwards (incoming), so a
// value change anywhere below a target propagates all the way up to it
// even when only its immediate dependency AC was touched.
func (rc *RC) enqueueWithAncestorsLocked(seed []int) {
	seen := make(map[int]struct{}, len(seed))
	queue := append([]int(nil), seed...)
	for _, id := range queue {
		seen[id] = struct{}{}
	}

	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		rc.queue[cur] = struct{}{}

		for _, eid := range rc.incoming[cur] {
			parent := rc.edges[eid].from
			if _, ok := seen[parent]; ok {
				continue
			}
			seen[parent] = struct{}{}
			queue = append(queue, parent)
		}
	}
}

func (rc *RC) mustACLocked(id int) *ac.AC {
	circuit, ok := rc.acs[id]
	if !ok {
		panic(fmt.Sprintf("reactive: unknown ac id %d", id))
	}

	return circuit
}

// newACLocked registers an already-built AC (e.g. one side of a Split)
// under a fresh id and returns that id.
func (rc *RC) newACLocked(circuit *ac.AC) int {
	id := rc.newACIDLocked()
	rc.acs[id] = circuit

	return id
}
