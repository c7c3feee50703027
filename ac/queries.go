package ac

import "sort"

// Children returns the direct children of id in AC-assigned order. Panics
// on an unknown node.
func (a *AC) Children(id NodeID) []NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	a.mustNodeLocked(id)

	return append([]NodeID(nil), a.children[id]...)
}

// Parents returns the direct parents of id. A node may have more than one
// parent: the same Leaf/Memory node can be referenced by several
// Products. Panics on an unknown node.
func (a *AC) Parents(id NodeID) []NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	a.mustNodeLocked(id)

	return append([]NodeID(nil), a.parents[id]...)
}

// Siblings returns the other children of id's parents, excluding id itself.
// If id has no parents (e.g. it is the root) Siblings returns nil.
func (a *AC) Siblings(id NodeID) []NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	a.mustNodeLocked(id)

	seen := make(map[NodeID]struct{})
	var out []NodeID
	for _, p := range a.parents[id] {
		for _, c := range a.children[p] {
			if c == id {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Grandparents returns the parents of id's parents, deduplicated.
func (a *AC) Grandparents(id NodeID) []NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	a.mustNodeLocked(id)

	seen := make(map[NodeID]struct{})
	var out []NodeID
	for _, p := range a.parents[id] {
		for _, gp := range a.parents[p] {
			if _, ok := seen[gp]; ok {
				continue
			}
			seen[gp] = struct{}{}
			out = append(out, gp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Scope returns every node reachable from id by following child edges,
// including id itself. This is the "sub-expression rooted at id" used by
// Split (through IsInScope) to decide what moves and what stays.
func (a *AC) Scope(id NodeID) []NodeID {
	a.mu.RLock()
	defer a.mu.RUnlock()

	a.mustNodeLocked(id)

	seen := map[NodeID]struct{}{id: {}}
	stack := []NodeID{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, c := range a.children[n] {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			stack = append(stack, c)
		}
	}

	out := make([]NodeID, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// IsInScope reports whether target is reachable from root by following
// child edges (target is in root's subexpression, or is root itself).
func (a *AC) IsInScope(root, target NodeID) bool {
	for _, n := range a.Scope(root) {
		if n == target {
			return true
		}
	}

	return false
}

// GetLeaf returns the Leaf node for leafID and whether it exists in this AC.
func (a *AC) GetLeaf(leafID int) (NodeID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	id, ok := a.leaves[leafID]

	return id, ok
}

// GetMemory returns the Memory node for edgeID and whether it exists in
// this AC.
func (a *AC) GetMemory(edgeID int) (NodeID, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	id, ok := a.memories[edgeID]

	return id, ok
}

// IsInCircuit reports whether id names a live node of this AC.
func (a *AC) IsInCircuit(id NodeID) bool {
	a.mu.RLock()
	defer a.mu.RUnlock()

	_, ok := a.nodes[id]

	return ok
}

// LeafIDs returns every leaf identifier referenced by a Leaf node in this
// AC, sorted.
func (a *AC) LeafIDs() []int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]int, 0, len(a.leaves))
	for id := range a.leaves {
		out = append(out, id)
	}
	sort.Ints(out)

	return out
}

// MemoryEdgeIDs returns every RC edge identifier referenced by a Memory
// node in this AC, sorted.
func (a *AC) MemoryEdgeIDs() []int {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]int, 0, len(a.memories))
	for id := range a.memories {
		out = append(out, id)
	}
	sort.Ints(out)

	return out
}
