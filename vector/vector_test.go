package vector_test

import (
	"testing"

	"github.com/reactivewmc/rwmc/vector"
	"github.com/stretchr/testify/require"
)

func TestZerosAndOnes(t *testing.T) {
	require.Equal(t, vector.Vector{0, 0, 0}, vector.Zeros(3))
	require.Equal(t, vector.Vector{1, 1, 1}, vector.Ones(3))
}

func TestAddIntoAndMulInto(t *testing.T) {
	sum := vector.Zeros(2)
	sum.AddInto(vector.Vector{0.5, 0.2})
	sum.AddInto(vector.Vector{0.1, 0.3})
	require.True(t, sum.Equal(vector.Vector{0.6, 0.5}, 1e-12))

	prod := vector.Ones(2)
	prod.MulInto(vector.Vector{0.5, 0.2})
	prod.MulInto(vector.Vector{2.0, 5.0})
	require.True(t, prod.Equal(vector.Vector{1.0, 1.0}, 1e-12))
}

func TestCloneIsIndependent(t *testing.T) {
	a := vector.Vector{1, 2, 3}
	b := a.Clone()
	b[0] = 99
	require.Equal(t, float64(1), a[0])
}

func TestAddIntoLengthMismatchPanics(t *testing.T) {
	require.Panics(t, func() {
		vector.Zeros(2).AddInto(vector.Vector{1})
	})
}

func TestEqualDifferentLength(t *testing.T) {
	require.False(t, vector.Vector{1}.Equal(vector.Vector{1, 2}, 1e-9))
}
