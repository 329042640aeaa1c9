package chaingraph

import (
	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
)

// DiagramOptions controls how a Graph is described for renderers.
type DiagramOptions struct {
	// Locale selects Node.Label. Defaults to isnad.DefaultLocale.
	Locale isnad.Locale
	// PivotMarker replaces the localized common-link marker when set.
	PivotMarker string
}

// Label returns the display label of n in locale l. The pivot carries the
// marker after its name.
func Label(n Node, l isnad.Locale, marker string) string {
	name := n.Narrator.Name(l)
	if !n.Pivot() {
		return name
	}
	if marker == "" {
		marker = isnad.PivotMarker(l)
	}
	return name + " " + marker
}

// Diagram converts g to the renderer-facing description.
func (g *Graph) Diagram(opts DiagramOptions) graph.Diagram {
	l := opts.Locale
	if l == "" {
		l = isnad.DefaultLocale
	}

	d := graph.Diagram{
		HadithID:        g.HadithID,
		Locale:          string(l),
		Nodes:           []graph.Node{},
		Edges:           []graph.Edge{},
		GenerationOrder: make([]string, len(isnad.Generations)),
	}
	for i, gen := range isnad.Generations {
		d.GenerationOrder[i] = string(gen)
	}

	for _, n := range g.Nodes() {
		labels := make(map[string]string, len(isnad.Locales))
		for _, loc := range isnad.Locales {
			labels[string(loc)] = Label(n, loc, opts.PivotMarker)
		}
		d.Nodes = append(d.Nodes, graph.Node{
			ID:         n.Narrator.Index,
			Label:      Label(n, l, opts.PivotMarker),
			Labels:     labels,
			ShapeKind:  n.Shape,
			StyleClass: n.Style,
			Generation: string(n.Generation),
		})
	}
	for _, e := range g.Edges() {
		d.Edges = append(d.Edges, graph.Edge{From: e.From, To: e.To})
	}
	if idx, ok := g.CommonLink(); ok {
		d.CommonLink = &idx
	}
	return d
}
