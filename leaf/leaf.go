package leaf

import (
	"fmt"
	"sort"
	"sync"

	"github.com/reactivewmc/rwmc/vector"
)

// ID identifies a Leaf within its enclosing Reactive Circuit. IDs are dense
// and assigned sequentially by the RC; a Leaf's ID is stable for its
// lifetime.
type ID int

// Leaf holds a current vector value, a timestamp, an externally-tracked
// frequency, and the set of AC identifiers that depend on it.
type Leaf struct {
	id   ID
	name string
	size int

	muValue   sync.RWMutex
	value     vector.Vector
	timestamp float64
	frequency float64

	muDeps       sync.Mutex
	dependencies map[int]struct{}
}

// New creates a Leaf with the given id, name, initial value and timestamp.
// Panics if len(initial) == 0: a zero-length Vector can never satisfy the
// value_size invariant established at RC construction.
func New(id ID, name string, initial vector.Vector, timestamp float64) *Leaf {
	if len(initial) == 0 {
		panic("leaf: initial value must be non-empty")
	}

	return &Leaf{
		id:           id,
		name:         name,
		size:         len(initial),
		value:        initial.Clone(),
		timestamp:    timestamp,
		dependencies: make(map[int]struct{}),
	}
}

// ID returns the Leaf's stable identifier.
func (l *Leaf) ID() ID { return l.id }

// Name returns the Leaf's human-readable name.
func (l *Leaf) Name() string { return l.name }

// Size returns the fixed Vector length this Leaf was created with.
func (l *Leaf) Size() int { return l.size }

// Value returns a copy of the Leaf's current value.
func (l *Leaf) Value() vector.Vector {
	l.muValue.RLock()
	defer l.muValue.RUnlock()

	return l.value.Clone()
}

// Timestamp returns the timestamp of the most recent Update.
func (l *Leaf) Timestamp() float64 {
	l.muValue.RLock()
	defer l.muValue.RUnlock()

	return l.timestamp
}

// Frequency returns the externally-tracked frequency estimate. The core
// never computes this value itself; it is only storage for an external
// frequency estimator.
func (l *Leaf) Frequency() float64 {
	l.muValue.RLock()
	defer l.muValue.RUnlock()

	return l.frequency
}

// SetFrequency overwrites the frequency estimate.
func (l *Leaf) SetFrequency(f float64) {
	l.muValue.Lock()
	defer l.muValue.Unlock()

	l.frequency = f
}

// Update writes newValue and timestamp onto the Leaf. Panics if newValue's
// length differs from the Leaf's established size (a fatal dimension
// mismatch per the design's error taxonomy). Callers are responsible for
// enqueueing the Leaf's dependencies; Update performs no structural change.
func (l *Leaf) Update(newValue vector.Vector, timestamp float64) {
	if len(newValue) != l.size {
		panic(fmt.Sprintf("leaf: value length mismatch for %q: got %d, want %d", l.name, len(newValue), l.size))
	}

	l.muValue.Lock()
	defer l.muValue.Unlock()

	l.value.Assign(newValue)
	l.timestamp = timestamp
}

// Dependencies returns a sorted snapshot of the AC identifiers that
// currently depend on this Leaf.
func (l *Leaf) Dependencies() []int {
	l.muDeps.Lock()
	defer l.muDeps.Unlock()

	out := make([]int, 0, len(l.dependencies))
	for acID := range l.dependencies {
		out = append(out, acID)
	}
	sort.Ints(out)

	return out
}

// AddDependency records acID as depending on this Leaf. Idempotent.
func (l *Leaf) AddDependency(acID int) {
	l.muDeps.Lock()
	defer l.muDeps.Unlock()

	l.dependencies[acID] = struct{}{}
}

// RemoveDependency drops acID from this Leaf's dependency set. Idempotent.
func (l *Leaf) RemoveDependency(acID int) {
	l.muDeps.Lock()
	defer l.muDeps.Unlock()

	delete(l.dependencies, acID)
}

// HasDependency reports whether acID currently depends on this Leaf.
func (l *Leaf) HasDependency(acID int) bool {
	l.muDeps.Lock()
	defer l.muDeps.Unlock()

	_, ok := l.dependencies[acID]

	return ok
}
