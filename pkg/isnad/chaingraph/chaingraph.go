package chaingraph

import (
	"github.com/mki/isnad/pkg/dag"
	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/chain"
)

// Node is a narrator placed in a chain graph.
type Node struct {
	Narrator   isnad.Narrator
	Generation isnad.Generation
	Shape      string
	Style      string
}

// Pivot reports whether the node is the common link.
func (n Node) Pivot() bool { return n.Style == graph.StylePivot }

// Graph is the chain graph of one hadith. It references narrators by
// index and is discarded after rendering.
type Graph struct {
	HadithID string

	g          *dag.DAG
	nodes      map[int]*Node
	commonLink int
	hasLink    bool
	removed    []dag.Edge
}

// Build constructs the chain graph of h from its resolved chains. Empty
// chains contribute nothing.
func Build(h isnad.Hadith, chains []isnad.ResolvedChain) *Graph {
	out := &Graph{
		HadithID: h.ID,
		g:        dag.New(dag.Metadata{"hadith_id": h.ID}),
		nodes:    make(map[int]*Node),
	}

	for _, c := range chains {
		var prev *isnad.Narrator
		for i := len(c) - 1; i >= 0; i-- {
			n := c[i]
			out.add(n)
			if prev != nil {
				// duplicate pairs and self loops are no-ops
				_ = out.g.AddEdge(dag.Edge{From: prev.Index, To: n.Index})
			}
			prev = &c[i]
		}
	}

	if out.g.Validate() != nil {
		out.removed = out.g.BreakCycles()
	}

	if idx, ok := chain.FindCommonLink(chains); ok {
		if n, found := out.nodes[idx]; found {
			n.Style = graph.StylePivot
			out.commonLink, out.hasLink = idx, true
		}
	}
	return out
}

func (g *Graph) add(n isnad.Narrator) {
	if _, ok := g.nodes[n.Index]; ok {
		return
	}
	gen := isnad.Generations[n.Generation.Layer()]
	node := &Node{
		Narrator:   n,
		Generation: gen,
		Shape:      ShapeOf(n.Status),
		Style:      StyleOf(n.Status),
	}
	g.nodes[n.Index] = node
	_ = g.g.AddNode(dag.Node{ID: n.Index, Row: gen.Layer()})
}

// ShapeOf returns the shape hint for a narrator of status s.
func ShapeOf(s isnad.Status) string {
	switch s {
	case isnad.StatusProphet:
		return graph.ShapeTerminal
	case isnad.StatusCollector:
		return graph.ShapeHexagon
	default:
		return graph.ShapeRect
	}
}

// StyleOf returns the status style class. Empty statuses map to unknown.
func StyleOf(s isnad.Status) string {
	if st, ok := isnad.ParseStatus(string(s)); ok {
		return string(st)
	}
	return string(isnad.StatusUnknown)
}

// IsEmpty reports whether no narrator resolved in any chain.
func (g *Graph) IsEmpty() bool { return g.g.NodeCount() == 0 }

// CommonLink returns the index of the pivot narrator, if any.
func (g *Graph) CommonLink() (int, bool) { return g.commonLink, g.hasLink }

// RemovedEdges returns the edges dropped to break cycles caused by
// inconsistent source data. It is nil for well-formed input.
func (g *Graph) RemovedEdges() []dag.Edge { return g.removed }

// Nodes returns the nodes grouped by generation in layer order and,
// within a generation, in the order first met.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.nodes))
	for _, gen := range isnad.Generations {
		for _, dn := range g.g.NodesInRow(gen.Layer()) {
			out = append(out, *g.nodes[dn.ID])
		}
	}
	return out
}

// Edges returns the deduplicated edges, earliest narrator first.
func (g *Graph) Edges() []dag.Edge { return g.g.Edges() }

// DAG exposes the underlying layered graph. Callers must not modify it.
func (g *Graph) DAG() *dag.DAG { return g.g }
