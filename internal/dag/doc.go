// Package dag holds the job dependency graph of a pipeline and extracts
// subgraphs from it: the full graph, the ancestors or descendants of a job,
// or the union of both.
//
// Edges point from the producing job to the consuming job. Traversals are
// breadth-first and guard against revisiting nodes, so a cycle introduced by
// a malformed input file cannot make them loop forever.
package dag
