package graph

import (
	"fmt"
	"slices"

	"github.com/mki/isnad/pkg/dag"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Shape kinds. They are rendering hints only.
const (
	ShapeTerminal = "terminal" // rounded node for the Prophet
	ShapeHexagon  = "hexagon"  // collector of the book
	ShapeRect     = "rect"     // every other narrator
)

// StylePivot is the style class of the common link. It replaces the
// narrator's status class.
const StylePivot = "pivot"

// Shapes lists the known shape kinds.
var Shapes = []string{ShapeTerminal, ShapeHexagon, ShapeRect}

// =============================================================================
// Diagram - Chain Graph Description
// =============================================================================

// Diagram is the serialization format of a narrator chain graph. It is what
// renderers, the HTTP API and the diagram cache consume.
//
// Nodes appear grouped by generation in GenerationOrder and, within a
// generation, in the order they were first met. Edges point from the
// earlier narrator to the later one.
type Diagram struct {
	HadithID        string   `json:"hadithId,omitempty" bson:"hadith_id,omitempty"`
	Locale          string   `json:"locale,omitempty" bson:"locale,omitempty"`
	Nodes           []Node   `json:"nodes" bson:"nodes"`
	Edges           []Edge   `json:"edges" bson:"edges"`
	GenerationOrder []string `json:"generationOrder" bson:"generation_order"`
	CommonLink      *int     `json:"commonLink,omitempty" bson:"common_link,omitempty"`
}

// Node is one narrator in a Diagram.
type Node struct {
	ID         int               `json:"id" bson:"id"`
	Label      string            `json:"label" bson:"label"`
	Labels     map[string]string `json:"labels,omitempty" bson:"labels,omitempty"`
	ShapeKind  string            `json:"shapeKind" bson:"shape_kind"`
	StyleClass string            `json:"styleClass" bson:"style_class"`
	Generation string            `json:"generation" bson:"generation"`
}

// IsPivot reports whether n is the common link.
func (n *Node) IsPivot() bool { return n.StyleClass == StylePivot }

// Edge is a directed edge between two node IDs.
type Edge struct {
	From int `json:"from" bson:"from"`
	To   int `json:"to" bson:"to"`
}

// IsEmpty reports whether d has no nodes. An empty diagram means no chain
// data resolved; it is a valid result, not an error.
func (d *Diagram) IsEmpty() bool { return len(d.Nodes) == 0 }

// Node returns the node with the given id.
func (d *Diagram) Node(id int) (*Node, bool) {
	for i := range d.Nodes {
		if d.Nodes[i].ID == id {
			return &d.Nodes[i], true
		}
	}
	return nil, false
}

// NodesIn returns the nodes of generation g in diagram order.
func (d *Diagram) NodesIn(g string) []Node {
	var out []Node
	for _, n := range d.Nodes {
		if n.Generation == g {
			out = append(out, n)
		}
	}
	return out
}

// Generations returns the entries of GenerationOrder that hold at least
// one node.
func (d *Diagram) Generations() []string {
	present := make(map[string]bool)
	for _, n := range d.Nodes {
		present[n.Generation] = true
	}
	var out []string
	for _, g := range d.GenerationOrder {
		if present[g] {
			out = append(out, g)
		}
	}
	return out
}

// StyleClasses returns the distinct style classes used by d, in first
// appearance order.
func (d *Diagram) StyleClasses() []string {
	var out []string
	for _, n := range d.Nodes {
		if !slices.Contains(out, n.StyleClass) {
			out = append(out, n.StyleClass)
		}
	}
	return out
}

// =============================================================================
// Diagram ↔ DAG Conversion
// =============================================================================

// ToDAG converts d into a DAG with one row per entry of GenerationOrder.
// It returns an error for duplicate nodes, dangling or repeated edges, and
// nodes whose generation is not listed.
func ToDAG(d Diagram) (*dag.DAG, error) {
	rows := make(map[string]int, len(d.GenerationOrder))
	for i, g := range d.GenerationOrder {
		rows[g] = i
	}

	g := dag.New(dag.Metadata{"hadith_id": d.HadithID, "locale": d.Locale})
	for _, n := range d.Nodes {
		row, ok := rows[n.Generation]
		if !ok {
			return nil, fmt.Errorf("node %d: generation %q not in generation order", n.ID, n.Generation)
		}
		meta := dag.Metadata{"label": n.Label, "shape": n.ShapeKind, "style": n.StyleClass}
		if err := g.AddNode(dag.Node{ID: n.ID, Row: row, Meta: meta}); err != nil {
			return nil, fmt.Errorf("add node %d: %w", n.ID, err)
		}
	}
	for _, e := range d.Edges {
		if err := g.AddEdge(dag.Edge{From: e.From, To: e.To}); err != nil {
			return nil, fmt.Errorf("add edge %d→%d: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

// Validate checks the structural consistency of d.
func (d *Diagram) Validate() error {
	if _, err := ToDAG(*d); err != nil {
		return err
	}
	if d.CommonLink != nil {
		n, ok := d.Node(*d.CommonLink)
		if !ok {
			return fmt.Errorf("common link %d is not a node", *d.CommonLink)
		}
		if !n.IsPivot() {
			return fmt.Errorf("common link %d has style %q, want %q", n.ID, n.StyleClass, StylePivot)
		}
	}
	return nil
}
