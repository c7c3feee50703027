// Package topo computes a topological order over the Reactive Circuit's
// outer DAG of ACs using a 3-color DFS with context cancellation,
// generalized to any integer-indexed graph via the Graph interface, so
// package reactive does not need to expose its internal AC storage to
// satisfy it.
package topo
