// Package reactive implements the Reactive Circuit: an outer DAG whose
// nodes are Algebraic Circuits (package ac) and whose edges carry
// memoized vectors, plus the Leaf table, invalidation queue, and
// bottom-up update scheduler that recomputes target values as leaf
// inputs change.
//
// What: RC owns every Leaf and every AC; AC edges exist only as opaque
// Memory-node/edge-id pairs, so the outer DAG and the inner sum-product
// graphs never reference each other's Go pointers directly — RC
// implements ac.ValueSource to let an AC read leaf values and edge memos
// without importing this package.
//
// Why: lift/drop move leaves between ACs at runtime without breaking the
// numeric value of any target; the scheduler's job is to recompute only
// the ACs actually invalidated, in an order where every child AC's
// memoized value is current before its parent reads it.
//
// Complexity: Invalidate is O(V) (it enqueues every AC); Update performs
// one O(V+E) topological sort and levelling, with intra-level AC revaluation
// parallelized by a bounded worker pool.
//
// Errors: unknown leaf/AC identifiers and malformed structure are fatal
// (panic); a formula referencing an unregistered leaf id is reportable
// (returns ErrUnknownLeaf, no partial state change); lift/drop on a leaf
// absent from a given AC as an internal Leaf node is a silent no-op for
// that AC.
package reactive
