// Package mermaid renders chain diagrams as Mermaid flowchart text.
//
// The output is a "flowchart TB" with one subgraph per non-empty
// generation, a classDef per style class taken from render.Palette and
// node shapes following the diagram's shape hints:
//
//	flowchart TB
//	  subgraph gen_prophet["The Prophet"]
//	    n1(["Prophet Muhammad"])
//	  end
//	  n1 --> n2
//	  classDef prophet fill:#f6e7b4,stroke:#b08d2c,color:#3d2f05,font-weight:bold
//	  class n1 prophet
package mermaid

import (
	"fmt"
	"strings"

	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/render"
)

// Options configures Mermaid output.
type Options struct {
	// Direction overrides the flowchart direction ("TB", "LR"...).
	Direction string
}

var labelEscaper = strings.NewReplacer(
	`"`, "#quot;",
	"<", "#lt;",
	">", "#gt;",
	"\n", "<br/>",
)

// Escape makes s safe inside a quoted Mermaid label.
func Escape(s string) string { return labelEscaper.Replace(s) }

// Render returns the Mermaid source of d.
func Render(d graph.Diagram, opts Options) string {
	dir := opts.Direction
	if dir == "" {
		dir = "TB"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "flowchart %s\n", dir)

	locale := isnad.Locale(d.Locale)
	for _, gen := range d.Generations() {
		fmt.Fprintf(&b, "  subgraph gen_%s[\"%s\"]\n", gen, Escape(isnad.GenerationLabel(locale, isnad.Generation(gen))))
		for _, n := range d.NodesIn(gen) {
			fmt.Fprintf(&b, "    %s\n", node(n))
		}
		b.WriteString("  end\n")
	}

	for _, e := range d.Edges {
		fmt.Fprintf(&b, "  n%d --> n%d\n", e.From, e.To)
	}

	for _, class := range d.StyleClasses() {
		st := render.StyleFor(class)
		def := fmt.Sprintf("fill:%s,stroke:%s,color:%s", st.Fill, st.Stroke, st.Font)
		if st.Bold {
			def += ",font-weight:bold"
		}
		if class == graph.StylePivot {
			def += ",stroke-width:3px"
		}
		fmt.Fprintf(&b, "  classDef %s %s\n", class, def)

		var ids []string
		for _, n := range d.Nodes {
			if n.StyleClass == class {
				ids = append(ids, fmt.Sprintf("n%d", n.ID))
			}
		}
		fmt.Fprintf(&b, "  class %s %s\n", strings.Join(ids, ","), class)
	}
	return b.String()
}

func node(n graph.Node) string {
	label := Escape(n.Label)
	switch n.ShapeKind {
	case graph.ShapeTerminal:
		return fmt.Sprintf(`n%d(["%s"])`, n.ID, label)
	case graph.ShapeHexagon:
		return fmt.Sprintf(`n%d{{"%s"}}`, n.ID, label)
	default:
		return fmt.Sprintf(`n%d["%s"]`, n.ID, label)
	}
}
