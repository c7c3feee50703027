package reactive_test

import (
	"testing"

	"github.com/reactivewmc/rwmc/reactive"
	"github.com/reactivewmc/rwmc/vector"
	"github.com/stretchr/testify/require"
)

func newRC(t *testing.T, values ...float64) (*reactive.RC, []int) {
	t.Helper()

	rc := reactive.New(1)
	ids := make([]int, len(values))
	for i, v := range values {
		ids[i] = rc.AddLeaf("", vector.Vector{v}, 0)
	}

	return rc, ids
}

func TestConjunctionOfTwoLeaves(t *testing.T) {
	rc, ids := newRC(t, 0.5, 0.2)
	a, b := ids[0], ids[1]

	require.NoError(t, rc.AddSumProduct([][]int{{a, b}}, "t"))
	result := rc.Update()
	require.InDelta(t, 0.10, result["t"][0], 1e-9)

	rc.UpdateLeaf(a, vector.Vector{1.0}, 1)
	result = rc.Update()
	require.InDelta(t, 0.20, result["t"][0], 1e-9)
}

func TestInclusionExclusionShape(t *testing.T) {
	rc, ids := newRC(t, 0.5, 0.2, 0.8)
	a, b, c := ids[0], ids[1], ids[2]

	require.NoError(t, rc.AddSumProduct([][]int{{a, b}, {a, c}}, "t"))
	result := rc.Update()
	require.InDelta(t, 0.5, result["t"][0], 1e-9)
}

func TestLiftPreservesValue(t *testing.T) {
	rc, ids := newRC(t, 0.5, 0.2, 0.8)
	a, b, c := ids[0], ids[1], ids[2]

	require.NoError(t, rc.AddSumProduct([][]int{{a, b}, {a, c}}, "t"))
	rc.Update()

	rc.LiftLeaf(a)
	result := rc.FullUpdate()
	require.InDelta(t, 0.5, result["t"][0], 1e-9)

	rc.UpdateLeaf(a, vector.Vector{0.0}, 1)
	result = rc.Update()
	require.InDelta(t, 0.0, result["t"][0], 1e-9)
}

func TestDropPreservesValue(t *testing.T) {
	rc, ids := newRC(t, 0.5, 0.2, 0.8)
	a, b, c := ids[0], ids[1], ids[2]

	require.NoError(t, rc.AddSumProduct([][]int{{a, b}, {a, c}}, "t"))
	rc.Update()

	rc.LiftLeaf(a)
	rc.FullUpdate()

	rc.DropLeaf(a)
	result := rc.FullUpdate()
	require.InDelta(t, 0.5, result["t"][0], 1e-9)
}

func TestMultiTargetIndependence(t *testing.T) {
	rc, ids := newRC(t, 0.3, 0.7)
	a, b := ids[0], ids[1]

	require.NoError(t, rc.AddSumProduct([][]int{{a}}, "t1"))
	require.NoError(t, rc.AddSumProduct([][]int{{b}}, "t2"))

	result := rc.Update()
	require.InDelta(t, 0.3, result["t1"][0], 1e-9)
	require.InDelta(t, 0.7, result["t2"][0], 1e-9)

	rc.UpdateLeaf(a, vector.Vector{0.9}, 1)
	result = rc.Update()
	require.InDelta(t, 0.9, result["t1"][0], 1e-9)
	require.Empty(t, result["t2"])
}

func TestClauseWeightAtLeastOne(t *testing.T) {
	rc, ids := newRC(t, 0.5, 0.5, 0.8, 0.2)
	x, y, w, notW := ids[0], ids[1], ids[2], ids[3]

	require.NoError(t, rc.AddSumProduct([][]int{
		{x, y, w},
		{x, notW},
		{notW, y},
		{notW},
	}, "t"))
	result := rc.Update()

	want := 0.5*0.5*0.8 + 0.5*0.2 + 0.2*0.5 + 0.2
	require.InDelta(t, want, result["t"][0], 1e-9)
}

func TestAddSumProductRejectsUnknownLeaf(t *testing.T) {
	rc := reactive.New(1)
	err := rc.AddSumProduct([][]int{{0}}, "t")
	require.ErrorIs(t, err, reactive.ErrUnknownLeaf)
}

func TestUpdateDrainsQueue(t *testing.T) {
	rc, ids := newRC(t, 0.5)
	a := ids[0]
	require.NoError(t, rc.AddSumProduct([][]int{{a}}, "t"))

	first := rc.Update()
	require.InDelta(t, 0.5, first["t"][0], 1e-9)

	second := rc.Update()
	require.Empty(t, second)
}
