// Package rwmc is a reactive weighted model counting engine: it keeps a
// live collection of weighted sum-of-products formulas ("targets") over a
// shared pool of leaf weights, and lets a caller cheaply re-derive every
// affected target's value after a single leaf's weight changes, rather
// than re-evaluating every formula from scratch.
//
// Two DAGs make this cheap. Each target compiles down to an Algebraic
// Circuit (package ac): a sum-product expression tree of Sum, Product,
// Leaf and Memory nodes. Several ACs can in turn be wired together into a
// Reactive Circuit (package reactive): an outer DAG of ACs connected by
// memoized edges, so a change can be confined to a small sub-circuit
// instead of forcing a full recompute of every target that happens to
// share a leaf. Moving a leaf between an AC and its neighbors (lift_leaf,
// drop_leaf) is how that confinement is tuned at runtime.
//
// Subpackages:
//
//	vector/   — the fixed-length real-valued Vector every leaf weight,
//	            edge memo and node value is
//	leaf/     — a Leaf: its value, timestamp, frequency and the set of ACs
//	            that currently depend on it directly
//	ac/       — the Algebraic Circuit: construction, editing, the
//	            split/factor_in/factor_out rewrites, and valuation
//	topo/     — a small topological sort generalized over any int-keyed
//	            DAG, used to schedule Reactive Circuit updates
//	reactive/ — the Reactive Circuit: leaves, formulas, targets, the
//	            lift/drop rewrites and the bottom-up update scheduler
//	rwmclog/  — the zerolog configuration shared by reactive's event
//	            logging
package rwmc
