package ac

// EnsureLeaf returns the existing Leaf(leafID) node, or creates one as a
// child of nothing. Leaf identifier uniqueness within one AC is maintained
// here: a second call with the same leafID returns the first call's node.
func (a *AC) EnsureLeaf(leafID int) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	if id, ok := a.leaves[leafID]; ok {
		return id
	}

	return a.newLeafNodeLocked(leafID)
}

// CreateMemory allocates a Memory(edgeID) node. Panics if edgeID already
// has a Memory node in this AC: an RC edge maps to at most one Memory
// node per AC.
func (a *AC) CreateMemory(edgeID int) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.memories[edgeID]; ok {
		panic("ac: edge already has a Memory node in this circuit")
	}

	return a.newMemoryNodeLocked(edgeID)
}

// Add creates one fresh Product node under root whose factors are the
// given leaf identifiers (ensuring a Leaf node for each), and returns the
// new Product's NodeID.
func (a *AC) Add(product []int) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.addProductLocked(product)
}

// AddSumProduct creates one Product node per entry in formula, each
// attached to root, deduplicating Leaf node creation across products.
// Returns the new Products' NodeIDs in formula order.
func (a *AC) AddSumProduct(formula [][]int) []NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]NodeID, 0, len(formula))
	for _, product := range formula {
		out = append(out, a.addProductLocked(product))
	}

	return out
}

func (a *AC) addProductLocked(product []int) NodeID {
	p := a.newNodeLocked(KindProduct)
	a.addEdgeLocked(a.root, p)
	for _, leafID := range product {
		leafNode, ok := a.leaves[leafID]
		if !ok {
			leafNode = a.newLeafNodeLocked(leafID)
		}
		a.addEdgeLocked(p, leafNode)
	}

	return p
}

// Multiply factors leafID into every Product reachable from root,
// recursing through Sum children. If root has no Product children yet, an
// empty Product is created first so the factor has somewhere to land.
func (a *AC) Multiply(leafID int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	leafNode, ok := a.leaves[leafID]
	if !ok {
		leafNode = a.newLeafNodeLocked(leafID)
	}

	if len(a.children[a.root]) == 0 {
		p := a.newNodeLocked(KindProduct)
		a.addEdgeLocked(a.root, p)
	}

	a.multiplyFromLocked(a.root, []NodeID{leafNode})
}

// multiplyFromLocked walks every descendant of n reachable through Sum
// nodes and attaches factors as new children of every Product it finds.
func (a *AC) multiplyFromLocked(n NodeID, factors []NodeID) {
	if a.nodes[n].kind == KindProduct {
		for _, f := range factors {
			a.addEdgeLocked(n, f)
		}

		return
	}

	for _, c := range a.children[n] {
		a.multiplyFromLocked(c, factors)
	}
}

// MultiplyWithNodes attaches factors into the Product parent(s) of each
// node in nodes, the general form of Multiply used by reactive's LiftLeaf:
// rather than scanning from root, it targets the
// specific existing nodes' own parent products.
func (a *AC) MultiplyWithNodes(nodes []NodeID, factors []NodeID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, n := range nodes {
		a.mustNodeLocked(n)
		for _, p := range a.parents[n] {
			for _, f := range factors {
				a.addEdgeLocked(p, f)
			}
		}
	}
}

// AddToNode locates the nearest ancestral Sum reachable from n by walking
// parent edges (including n itself, if n is already a Sum), and attaches a
// fresh Product beneath it whose factors are the given, already-existing
// nodes — not fresh leaves; the caller ensures/creates those nodes first.
// Panics if n has no ancestral Sum (every well-formed AC does, at worst
// its root).
func (a *AC) AddToNode(n NodeID, factors []NodeID) NodeID {
	a.mu.Lock()
	defer a.mu.Unlock()

	sum := a.nearestAncestralSumLocked(n)
	p := a.newNodeLocked(KindProduct)
	a.addEdgeLocked(sum, p)
	for _, f := range factors {
		a.mustNodeLocked(f)
		a.addEdgeLocked(p, f)
	}

	return p
}

// AddToNodes is AddToNode applied independently to every node in ns,
// returning the new Products in ns order.
func (a *AC) AddToNodes(ns []NodeID, factors []NodeID) []NodeID {
	out := make([]NodeID, 0, len(ns))
	for _, n := range ns {
		out = append(out, a.AddToNode(n, factors))
	}

	return out
}

func (a *AC) nearestAncestralSumLocked(n NodeID) NodeID {
	a.mustNodeLocked(n)
	if a.nodes[n].kind == KindSum {
		return n
	}

	seen := map[NodeID]struct{}{n: {}}
	queue := []NodeID{n}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, p := range a.parents[cur] {
			if a.nodes[p].kind == KindSum {
				return p
			}
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			queue = append(queue, p)
		}
	}

	panic("ac: no ancestral Sum reachable from node")
}

// Attach adds a single edge from parent to child without enforcing shape
// invariants; it exists for callers that are themselves responsible for
// maintaining them, such as reactive.RC attaching a freshly created Memory
// node as an existing Product's child while dropping a leaf. Panics on an
// unknown parent or child.
func (a *AC) Attach(parent, child NodeID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.mustNodeLocked(parent)
	a.mustNodeLocked(child)
	a.addEdgeLocked(parent, child)
}

// Remove drops node and all its incident edges, also removing it from the
// leaf/memory registries if present. Children are disconnected but not
// themselves removed. Panics on an unknown node.
func (a *AC) Remove(node NodeID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.mustNodeLocked(node)
	a.removeLocked(node)
}

// RemoveWithDescendants removes node, then cascades: any child left with
// no remaining parents is itself removed, recursively. Shared Leaf/Memory
// nodes still referenced elsewhere survive.
func (a *AC) RemoveWithDescendants(node NodeID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.mustNodeLocked(node)
	a.removeWithDescendantsLocked(node)
}

func (a *AC) removeWithDescendantsLocked(id NodeID) {
	if _, ok := a.nodes[id]; !ok {
		return
	}

	children := append([]NodeID(nil), a.children[id]...)
	a.removeLocked(id)
	for _, c := range children {
		if len(a.parents[c]) == 0 {
			a.removeWithDescendantsLocked(c)
		}
	}
}

func (a *AC) removeLocked(id NodeID) {
	n := a.nodes[id]
	for _, p := range a.parents[id] {
		a.children[p] = removeOne(a.children[p], id)
	}
	for _, c := range a.children[id] {
		a.parents[c] = removeOne(a.parents[c], id)
	}

	delete(a.nodes, id)
	delete(a.children, id)
	delete(a.parents, id)

	if n.kind == KindLeaf {
		delete(a.leaves, n.leafID)
	}
	if n.kind == KindMemory {
		delete(a.memories, n.edgeID)
	}
}

func (a *AC) removeEdgeLocked(parent, child NodeID) {
	a.children[parent] = removeOne(a.children[parent], child)
	a.parents[child] = removeOne(a.parents[child], parent)
}

func removeOne(s []NodeID, target NodeID) []NodeID {
	out := s[:0]
	for _, v := range s {
		if v != target {
			out = append(out, v)
		}
	}

	return out
}

// MergeSums merges every Sum child of product into a single survivor Sum,
// reparenting each merged Sum's own Product children onto the survivor
// before removing the now-empty duplicate Sum nodes. A Product with at
// most one Sum child is left untouched.
func (a *AC) MergeSums(product NodeID) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.mustNodeLocked(product)
	a.mergeSumsLocked(product)
}

func (a *AC) mergeSumsLocked(product NodeID) {
	var sums []NodeID
	for _, c := range a.children[product] {
		if a.nodes[c].kind == KindSum {
			sums = append(sums, c)
		}
	}
	if len(sums) <= 1 {
		return
	}

	survivor := sums[0]
	for _, s := range sums[1:] {
		// Capture s's children before removing s: removeLocked deletes
		// s's adjacency entries out from under us.
		kids := append([]NodeID(nil), a.children[s]...)
		for _, k := range kids {
			a.addEdgeLocked(survivor, k)
		}
		a.removeLocked(s)
	}
}

// Prune iteratively removes Sum/Product nodes with no outgoing edges (the
// root excepted) and Leaf/Memory nodes with no incoming edges, merging any
// Product's multiple Sum children along the way, until a fixed point.
func (a *AC) Prune() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pruneLocked()
}

func (a *AC) pruneLocked() {
	for {
		changed := false

		for id, n := range a.nodes {
			if n.kind != KindProduct {
				continue
			}
			sumCount := 0
			for _, c := range a.children[id] {
				if a.nodes[c].kind == KindSum {
					sumCount++
				}
			}
			if sumCount > 1 {
				a.mergeSumsLocked(id)
				changed = true
			}
		}

		for id, n := range a.nodes {
			if id == a.root {
				continue
			}
			if (n.kind == KindSum || n.kind == KindProduct) && len(a.children[id]) == 0 {
				a.removeLocked(id)
				changed = true
			}
		}

		for id, n := range a.nodes {
			if (n.kind == KindLeaf || n.kind == KindMemory) && len(a.parents[id]) == 0 {
				a.removeLocked(id)
				changed = true
			}
		}

		if !changed {
			return
		}
	}
}
