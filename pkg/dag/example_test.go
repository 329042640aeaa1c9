package dag_test

import (
	"fmt"

	"github.com/mki/isnad/pkg/dag"
)

func ExampleDAG_basic() {
	// witness -> student -> collector
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: 1, Row: 0})
	_ = g.AddNode(dag.Node{ID: 2, Row: 1})
	_ = g.AddNode(dag.Node{ID: 3, Row: 2})
	_ = g.AddEdge(dag.Edge{From: 1, To: 2})
	_ = g.AddEdge(dag.Edge{From: 2, To: 3})

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Rows:", g.RowCount())
	// Output:
	// Nodes: 3
	// Edges: 2
	// Rows: 3
}

func ExampleDAG_AddEdge_duplicate() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: 1, Row: 0})
	_ = g.AddNode(dag.Node{ID: 2, Row: 1})

	fmt.Println(g.AddEdge(dag.Edge{From: 1, To: 2}))
	fmt.Println(g.AddEdge(dag.Edge{From: 1, To: 2}))
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// <nil>
	// duplicate edge
	// Edges: 1
}

func ExampleDAG_traversal() {
	// One teacher with two students
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: 10, Row: 0})
	_ = g.AddNode(dag.Node{ID: 20, Row: 1})
	_ = g.AddNode(dag.Node{ID: 30, Row: 1})
	_ = g.AddEdge(dag.Edge{From: 10, To: 20})
	_ = g.AddEdge(dag.Edge{From: 10, To: 30})

	fmt.Println("Children of 10:", g.Children(10))
	fmt.Println("Parents of 20:", g.Parents(20))
	fmt.Println("Out-degree of 10:", g.OutDegree(10))
	// Output:
	// Children of 10: [20 30]
	// Parents of 20: [10]
	// Out-degree of 10: 2
}

func ExampleDAG_BreakCycles() {
	g := dag.New(nil)
	_ = g.AddNode(dag.Node{ID: 1, Row: 0})
	_ = g.AddNode(dag.Node{ID: 2, Row: 1})
	_ = g.AddNode(dag.Node{ID: 3, Row: 2})
	_ = g.AddEdge(dag.Edge{From: 1, To: 2})
	_ = g.AddEdge(dag.Edge{From: 2, To: 3})
	_ = g.AddEdge(dag.Edge{From: 3, To: 2})

	fmt.Println(g.Validate())
	fmt.Println("Removed:", g.BreakCycles())
	fmt.Println(g.Validate())
	// Output:
	// graph contains a cycle
	// Removed: [{3 2}]
	// <nil>
}
