// Package leaf implements the Leaf entity of the reactive circuit: an
// input variable carrying a current Vector value, a timestamp, an
// externally-tracked frequency, and the set of Algebraic Circuit
// identifiers that currently depend on it.
//
// A Leaf never knows about the Reactive Circuit or the invalidation queue;
// Update only mutates the leaf's own state. The caller (reactive.RC) is
// responsible for enqueueing the leaf's dependencies after a value update,
// and for mutating the dependency set during structural rewrites.
//
// Concurrency: Value/Timestamp/Frequency are guarded by one RWMutex so a
// writer updating the value and a reader observing it never race; the
// dependency set is guarded by a second mutex since it is mutated only
// during structural rewrites (under the Reactive Circuit's single write
// lock), never during a leaf value update — independent concerns get
// independent locks to minimize contention.
package leaf
