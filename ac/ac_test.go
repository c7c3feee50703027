package ac_test

import (
	"testing"

	"github.com/reactivewmc/rwmc/ac"
	"github.com/reactivewmc/rwmc/vector"
	"github.com/stretchr/testify/require"
)

// fakeSource is a ValueSource backed by plain maps, for tests that do not
// need a reactive.RC.
type fakeSource struct {
	leaves map[int]vector.Vector
	edges  map[int]vector.Vector
}

func (s fakeSource) LeafValue(id int) vector.Vector { return s.leaves[id] }
func (s fakeSource) EdgeMemo(id int) vector.Vector  { return s.edges[id] }

func TestFromSumProductValue(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1, 2}, {1, 3}})
	src := fakeSource{leaves: map[int]vector.Vector{
		1: {0.5}, 2: {0.2}, 3: {0.8},
	}}

	got := circuit.Value(src)
	require.InDelta(t, 0.5, got[0], 1e-9)
}

func TestFromSumProductDeduplicatesLeaves(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1, 2}, {1, 3}})
	require.ElementsMatch(t, []int{1, 2, 3}, circuit.LeafIDs())
}

func TestAddToNodeUsesExistingNodes(t *testing.T) {
	circuit := ac.New(1)
	memory := circuit.CreateMemory(0)
	leaf := circuit.EnsureLeaf(7)

	p := circuit.AddToNode(circuit.Root(), []ac.NodeID{memory, leaf})
	require.ElementsMatch(t, []ac.NodeID{memory, leaf}, circuit.Children(p))
}

func TestMultiplyAttachesToEveryProduct(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1}, {2}})
	circuit.Multiply(3)

	src := fakeSource{leaves: map[int]vector.Vector{
		1: {0.5}, 2: {0.5}, 3: {2.0},
	}}
	got := circuit.Value(src)
	require.InDelta(t, 2.0, got[0], 1e-9)
}

func TestScopeIncludesSelf(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1, 2}})
	root := circuit.Root()

	scope := circuit.Scope(root)
	require.Contains(t, scope, root)
	require.True(t, circuit.IsInScope(root, root))
}

func TestSiblingsExcludesSelf(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1, 2, 3}})
	leafNode, ok := circuit.GetLeaf(2)
	require.True(t, ok)

	siblings := circuit.Siblings(leafNode)
	require.NotContains(t, siblings, leafNode)
}

func TestSplitPartitionsByLeafScope(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1, 2}, {3, 4}})

	inScope, outScope := circuit.Split(1)
	require.NotNil(t, inScope)
	require.NotNil(t, outScope)

	src := fakeSource{leaves: map[int]vector.Vector{
		1: {0.5}, 2: {0.2}, 3: {0.3}, 4: {0.4},
	}}
	inVal := inScope.Value(src)
	outVal := outScope.Value(src)
	require.InDelta(t, 0.5*0.2, inVal[0], 1e-9)
	require.InDelta(t, 0.3*0.4, outVal[0], 1e-9)
}

func TestSplitAllInScopeYieldsNilOutScope(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1, 2}})

	inScope, outScope := circuit.Split(1)
	require.NotNil(t, inScope)
	require.Nil(t, outScope)
}

func TestRemoveWithDescendantsKeepsSharedNodes(t *testing.T) {
	circuit := ac.New(1)
	shared := circuit.EnsureLeaf(9)

	p1 := circuit.Add(nil)
	circuit.Attach(p1, shared)
	p2 := circuit.Add(nil)
	circuit.Attach(p2, shared)

	circuit.RemoveWithDescendants(p1)
	require.True(t, circuit.IsInCircuit(shared), "leaf shared with a surviving product must survive")
	require.False(t, circuit.IsInCircuit(p1))
}

func TestPruneRemovesChildlessNodes(t *testing.T) {
	circuit := ac.New(1)
	p := circuit.Add(nil) // childless product, not root

	circuit.Prune()
	require.False(t, circuit.IsInCircuit(p))
}

func TestValuePanicsOnCycle(t *testing.T) {
	circuit := ac.New(1)
	root := circuit.Root()
	p := circuit.Add(nil)
	circuit.Attach(p, root) // manufactures a cycle: root -> p -> root

	require.Panics(t, func() {
		circuit.Value(fakeSource{})
	})
}

func TestFactorInPreservesValue(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1, 2}, {1, 3}})
	leafNode, ok := circuit.GetLeaf(1)
	require.True(t, ok)

	src := fakeSource{leaves: map[int]vector.Vector{
		1: {0.5}, 2: {0.2}, 3: {0.8},
	}}
	before := circuit.Value(src)

	circuit.FactorIn(leafNode)
	after := circuit.Value(src)
	require.InDelta(t, before[0], after[0], 1e-9)
}

func TestFactorOutPreservesValue(t *testing.T) {
	// leaf 1 is a common factor of every product under the sum, the shape
	// factor_out's distributive law is valid for.
	circuit := ac.FromSumProduct(1, [][]int{{1, 2}, {1, 3}})
	leafNode, ok := circuit.GetLeaf(1)
	require.True(t, ok)

	src := fakeSource{leaves: map[int]vector.Vector{
		1: {0.5}, 2: {0.2}, 3: {0.8},
	}}
	before := circuit.Value(src)

	circuit.FactorOut(leafNode)
	after := circuit.Value(src)
	require.InDelta(t, before[0], after[0], 1e-9)
}

func TestCloneIsIndependent(t *testing.T) {
	circuit := ac.FromSumProduct(1, [][]int{{1}})
	clone := circuit.Clone()

	clone.Add([]int{2})
	require.NotEqual(t, circuit.NodeCount(), clone.NodeCount())
}
