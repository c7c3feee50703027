package ac

import (
	"fmt"

	"github.com/reactivewmc/rwmc/vector"
)

// ValueSource supplies the state an AC's valuation reads but does not own:
// current Leaf values and memoized RC edge vectors. Defined in this
// package rather than implemented by importing package reactive, so that
// ac carries no dependency on its own caller — reactive.RC implements
// this interface.
type ValueSource interface {
	LeafValue(leafID int) vector.Vector
	EdgeMemo(edgeID int) vector.Vector
}

// Value recursively reduces the AC from its root: Sum nodes add their
// children starting from zeros, Product nodes multiply theirs starting
// from ones, Leaf/Memory nodes read through src. An empty Sum is zeros; an
// empty Product is ones. Read-only with respect to src. Panics if the AC
// is malformed (a cycle, or a node of unrecognized kind).
func (a *AC) Value(src ValueSource) vector.Vector {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.nodeValueLocked(a.root, src, make(map[NodeID]struct{}))
}

func (a *AC) nodeValueLocked(id NodeID, src ValueSource, visiting map[NodeID]struct{}) vector.Vector {
	if _, ok := visiting[id]; ok {
		panic(fmt.Sprintf("ac: cycle detected at node %d during valuation", id))
	}
	visiting[id] = struct{}{}
	defer delete(visiting, id)

	n := a.mustNodeLocked(id)
	switch n.kind {
	case KindLeaf:
		return src.LeafValue(n.leafID)
	case KindMemory:
		return src.EdgeMemo(n.edgeID)
	case KindProduct:
		out := vector.Ones(a.valueSize)
		for _, c := range a.children[id] {
			out.MulInto(a.nodeValueLocked(c, src, visiting))
		}

		return out
	case KindSum:
		out := vector.Zeros(a.valueSize)
		for _, c := range a.children[id] {
			out.AddInto(a.nodeValueLocked(c, src, visiting))
		}

		return out
	default:
		panic(fmt.Sprintf("ac: malformed node kind %v at node %d", n.kind, id))
	}
}
