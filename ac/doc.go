// Package ac implements the Algebraic Circuit: a directed acyclic graph
// of Sum, Product, Leaf and Memory nodes representing a sum-product
// polynomial over Leaf values and Memory (RC edge) memos.
//
// Shape invariants, maintained by the editing methods in this package
// (except Attach, which adds a raw edge and leaves them to its caller):
//
//   - Sum children are always Product nodes.
//   - Product children are Leaf, Memory, or Sum nodes (an un-distributed
//     Sum child of a Product represents a nested sub-expression).
//   - Leaf and Memory nodes never have outgoing edges.
//   - The root is always a Sum node.
//   - The graph is acyclic.
//
// An AC does not know about the enclosing Reactive Circuit; valuation reads
// Leaf values and edge memos through the ValueSource interface so that
// ac has no import-time dependency on package reactive, breaking what would
// otherwise be an import cycle.
//
// Node identifiers are dense, sequentially assigned integers local to one
// AC rather than UUIDs or pointers, keeping references stable and
// relocation-free across structural rewrites.
package ac
