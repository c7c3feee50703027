package reactive

import (
	"fmt"
	"sort"

	"github.com/reactivewmc/rwmc/leaf"
	"github.com/reactivewmc/rwmc/vector"
)

// AddLeaf registers a new Leaf with the given name, initial value and
// timestamp, and returns its stable identifier. Panics if len(initial)
// does not match the RC's fixed value size.
func (rc *RC) AddLeaf(name string, initial vector.Vector, timestamp float64) int {
	if len(initial) != rc.valueSize {
		panic(fmt.Sprintf("reactive: leaf %q value length %d, want %d", name, len(initial), rc.valueSize))
	}

	rc.mu.Lock()
	defer rc.mu.Unlock()

	id := rc.newLeafIDLocked()
	rc.leaves[id] = leaf.New(leaf.ID(id), name, initial, timestamp)

	return id
}

// UpdateLeaf writes a new value and timestamp onto leafID and enqueues
// every AC that currently depends on it, direct or transitive. Panics if
// leafID is unknown.
func (rc *RC) UpdateLeaf(leafID int, newValue vector.Vector, timestamp float64) {
	rc.mu.Lock()
	defer rc.mu.Unlock()

	l := rc.mustLeafLocked(leafID)
	l.Update(newValue, timestamp)

	rc.enqueueWithAncestorsLocked(l.Dependencies())

	rc.log.Debug().Int("leaf_id", leafID).Msg("leaf updated")
}

func (rc *RC) mustLeafLocked(leafID int) *leaf.Leaf {
	l, ok := rc.leaves[leafID]
	if !ok {
		panic(fmt.Sprintf("reactive: unknown leaf id %d", leafID))
	}

	return l
}

// LeafValue implements ac.ValueSource: it returns a copy of the current
// value of leafID. Panics if leafID is unknown.
func (rc *RC) LeafValue(leafID int) vector.Vector {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	return rc.mustLeafLocked(leafID).Value()
}

// GetValues returns every Leaf's current value, ordered by leaf id.
func (rc *RC) GetValues() []vector.Vector {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	ids := rc.sortedLeafIDsLocked()
	out := make([]vector.Vector, 0, len(ids))
	for _, id := range ids {
		out = append(out, rc.leaves[id].Value())
	}

	return out
}

// GetNames returns every Leaf's name, ordered by leaf id.
func (rc *RC) GetNames() []string {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	ids := rc.sortedLeafIDsLocked()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, rc.leaves[id].Name())
	}

	return out
}

// GetFrequencies returns every Leaf's externally-tracked frequency,
// ordered by leaf id. The core never computes these values; it only
// stores and reports them.
func (rc *RC) GetFrequencies() []float64 {
	rc.mu.RLock()
	defer rc.mu.RUnlock()

	ids := rc.sortedLeafIDsLocked()
	out := make([]float64, 0, len(ids))
	for _, id := range ids {
		out = append(out, rc.leaves[id].Frequency())
	}

	return out
}

// SetLeafFrequency overwrites leafID's stored frequency estimate. The
// external frequency estimator (collaborator scope) calls this; the core
// performs no smoothing or computation of its own.
func (rc *RC) SetLeafFrequency(leafID int, f float64) {
	rc.mu.RLock()
	l := rc.mustLeafLocked(leafID)
	rc.mu.RUnlock()

	l.SetFrequency(f)
}

func (rc *RC) sortedLeafIDsLocked() []int {
	ids := make([]int, 0, len(rc.leaves))
	for id := range rc.leaves {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}
