package leaf_test

import (
	"sync"
	"testing"

	"github.com/reactivewmc/rwmc/leaf"
	"github.com/reactivewmc/rwmc/vector"
	"github.com/stretchr/testify/require"
)

func TestNewAndAccessors(t *testing.T) {
	l := leaf.New(3, "x", vector.Vector{0.5}, 1.0)
	require.Equal(t, leaf.ID(3), l.ID())
	require.Equal(t, "x", l.Name())
	require.Equal(t, 1, l.Size())
	require.Equal(t, vector.Vector{0.5}, l.Value())
	require.Equal(t, 1.0, l.Timestamp())
	require.Equal(t, 0.0, l.Frequency())
}

func TestUpdateReplacesValueAndTimestamp(t *testing.T) {
	l := leaf.New(0, "a", vector.Vector{0.1, 0.2}, 0.0)
	l.Update(vector.Vector{0.9, 0.8}, 5.0)
	require.Equal(t, vector.Vector{0.9, 0.8}, l.Value())
	require.Equal(t, 5.0, l.Timestamp())
}

func TestUpdateDimensionMismatchPanics(t *testing.T) {
	l := leaf.New(0, "a", vector.Vector{0.1, 0.2}, 0.0)
	require.Panics(t, func() {
		l.Update(vector.Vector{0.1}, 0.0)
	})
}

func TestDependencySetSemantics(t *testing.T) {
	l := leaf.New(0, "a", vector.Vector{0.1}, 0.0)
	require.Empty(t, l.Dependencies())

	l.AddDependency(2)
	l.AddDependency(1)
	l.AddDependency(2) // idempotent
	require.Equal(t, []int{1, 2}, l.Dependencies())
	require.True(t, l.HasDependency(1))

	l.RemoveDependency(1)
	require.Equal(t, []int{2}, l.Dependencies())
	require.False(t, l.HasDependency(1))
}

func TestConcurrentUpdateAndRead(t *testing.T) {
	l := leaf.New(0, "a", vector.Vector{0}, 0)
	var wg sync.WaitGroup
	const n = 200
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			l.Update(vector.Vector{float64(i)}, float64(i))
			_ = l.Value()
		}(i)
	}
	wg.Wait()
}
