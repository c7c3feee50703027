package reactive

import "github.com/reactivewmc/rwmc/ac"

// LiftLeaf moves leafID out of every AC that contains it as an internal
// Leaf node and into that AC's parents, so a later value change on
// leafID invalidates a smaller sub-DAG instead of recomputing the whole
// dependency from scratch.
//
// Dependencies where leafID is not an internal Leaf node (ancestor-only
// dependencies) are silently skipped.
func (rc *RC) LiftLeaf(leafID int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	l := rc.mustLeafLocked(leafID)

	for _, depID := range l.Dependencies() {
		circuit := rc.mustACLocked(depID)
		if _, ok := circuit.GetLeaf(leafID); !ok {
			continue
		}

		parents := rc.ensureParentsLocked(depID)

		inScope, outScope := circuit.Split(leafID)

		if outScope != nil {
			outID := rc.newACLocked(outScope)
			rc.queue[outID] = struct{}{}
			for _, p := range parents {
				parentCircuit := rc.mustACLocked(p.acID)
				outEdgeID := rc.addRCEdgeLocked(p.acID, outID)

				inScopeMemory, ok := parentCircuit.GetMemory(p.edgeID)
				if !ok {
					panic("reactive: parent ac missing expected Memory node")
				}
				outScopeMemory := parentCircuit.CreateMemory(outEdgeID)

				// inScopeMemory may sit under several Products at once (the
				// same Memory node referenced from more than one Product is
				// a valid shared-structure shape), so each Product needs
				// its own factors built from its own children, not a set
				// unioned across every Product that references it.
				for _, product := range parentCircuit.Parents(inScopeMemory) {
					var factors []ac.NodeID
					for _, c := range parentCircuit.Children(product) {
						if c != inScopeMemory {
							factors = append(factors, c)
						}
					}
					factors = append(factors, outScopeMemory)
					parentCircuit.AddToNode(product, factors)
				}
			}
		}

		if inScope != nil {
			rc.acs[depID] = inScope
			if liftedNode, ok := inScope.GetLeaf(leafID); ok {
				inScope.Remove(liftedNode)
			}

			l.RemoveDependency(depID)
			rc.queue[depID] = struct{}{}

			for _, p := range parents {
				parentCircuit := rc.mustACLocked(p.acID)
				parentLeaf := parentCircuit.EnsureLeaf(leafID)

				memory, ok := parentCircuit.GetMemory(p.edgeID)
				if !ok {
					panic("reactive: parent ac missing expected Memory node")
				}
				parentCircuit.MultiplyWithNodes([]ac.NodeID{memory}, []ac.NodeID{parentLeaf})
				l.AddDependency(p.acID)
			}
		}
	}

	rc.forceInvalidateDependenciesLocked(leafID)
	rc.log.Debug().Int("leaf_id", leafID).Msg("leaf lifted")
}

// DropLeaf moves leafID out of every AC that contains it as an internal
// Leaf node and into freshly created (or already existing) child ACs,
// reducing structural complexity of hot ACs.
func (rc *RC) DropLeaf(leafID int) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	l := rc.mustLeafLocked(leafID)

	for _, depID := range l.Dependencies() {
		circuit := rc.mustACLocked(depID)
		leafNode, ok := circuit.GetLeaf(leafID)
		if !ok {
			continue
		}

		for _, product := range circuit.Parents(leafNode) {
			memorySibling, found := ac.NodeID(0), false
			for _, c := range circuit.Children(product) {
				if circuit.KindOf(c) == ac.KindMemory {
					memorySibling, found = c, true

					break
				}
			}

			if !found {
				newCircuit := ac.FromSumProduct(rc.valueSize, [][]int{{leafID}})
				newID := rc.newACLocked(newCircuit)
				edgeID := rc.addRCEdgeLocked(depID, newID)

				newMemory := circuit.CreateMemory(edgeID)
				circuit.Attach(product, newMemory)

				rc.queue[newID] = struct{}{}
				l.AddDependency(newID)

				continue
			}

			edgeID := circuit.EdgeIDOf(memorySibling)
			childID := rc.edges[edgeID].to
			rc.mustACLocked(childID).Multiply(leafID)
			l.AddDependency(childID)
		}

		circuit.Remove(leafNode)
	}

	rc.forceInvalidateDependenciesLocked(leafID)
	rc.log.Debug().Int("leaf_id", leafID).Msg("leaf dropped")
}

// forceInvalidateDependenciesLocked enqueues every direct AC dependency of
// leafID and all of their transitive ancestors in the RC's outer DAG, so a
// structural rewrite below leafID propagates all the way up to every
// target that reads it.
func (rc *RC) forceInvalidateDependenciesLocked(leafID int) {
	rc.enqueueWithAncestorsLocked(rc.mustLeafLocked(leafID).Dependencies())
}
