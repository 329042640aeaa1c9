// Package dag provides a small directed graph whose nodes are grouped into
// rows (layers).
//
// # Overview
//
// Narrator chain graphs are drawn top to bottom by generation: each row
// holds the narrators of one cohort and edges point from a narrator to the
// one who heard the report from them. This package stores that structure
// and nothing else. It knows nothing about narrators; nodes are identified
// by integer IDs and carry free-form [Metadata].
//
// # Basic Usage
//
//	g := dag.New(nil)
//	_ = g.AddNode(dag.Node{ID: 1, Row: 0})
//	_ = g.AddNode(dag.Node{ID: 2, Row: 1})
//	_ = g.AddEdge(dag.Edge{From: 1, To: 2})
//
// Unlike a general multigraph, a (From, To) pair is stored at most once.
// [DAG.AddEdge] returns [ErrDuplicateEdge] for a repeated pair, which lets
// callers merge overlapping paths without tracking edges themselves.
//
// # Ordering
//
// [DAG.Nodes], [DAG.NodesInRow], [DAG.Edges], [DAG.Sources] and
// [DAG.Sinks] all follow insertion order. Two graphs built from the same
// input therefore produce identical output.
//
// # Cycles
//
// Source data occasionally lists a narrator on both sides of another. Such
// graphs are not acyclic; [DAG.Validate] reports [ErrGraphHasCycle] and
// [DAG.BreakCycles] removes the back edges found by a depth-first search.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use.
package dag
