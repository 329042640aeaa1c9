package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/render"
)

// Options configures node-link rendering.
type Options struct {
	// Detailed adds the narrator index and style class under each label.
	Detailed bool

	// NoClusters drops the generation boxes; nodes still keep their rank.
	NoClusters bool
}

// ToDOT converts a diagram to Graphviz DOT source.
func ToDOT(d graph.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  compound=true;\n")
	buf.WriteString("  node [shape=box, style=\"filled\", fontsize=18, fontname=\"Helvetica\", margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [color=\"#555555\", arrowsize=0.8];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.35;\n")

	locale := isnad.Locale(d.Locale)
	for _, gen := range d.Generations() {
		nodes := d.NodesIn(gen)
		buf.WriteString("\n")
		if opts.NoClusters {
			buf.WriteString("  {\n    rank=same;\n")
		} else {
			fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+gen)
			fmt.Fprintf(&buf, "    label=%q;\n", isnad.GenerationLabel(locale, isnad.Generation(gen)))
			buf.WriteString("    style=\"rounded,dashed\";\n    color=\"#bbbbbb\";\n    fontsize=14;\n    rank=same;\n")
		}
		for _, n := range nodes {
			fmt.Fprintf(&buf, "    %s [%s];\n", nodeID(n.ID), strings.Join(fmtAttrs(n, fmtLabel(n, opts.Detailed)), ", "))
		}
		buf.WriteString("  }\n")
	}

	if len(d.Edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range d.Edges {
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(e.From), nodeID(e.To))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(id int) string { return "n" + strconv.Itoa(id) }

func fmtLabel(n graph.Node, detailed bool) string {
	if !detailed {
		return n.Label
	}
	return fmt.Sprintf("%s\n#%d · %s", n.Label, n.ID, n.StyleClass)
}

func fmtAttrs(n graph.Node, label string) []string {
	st := render.StyleFor(n.StyleClass)
	attrs := []string{
		fmt.Sprintf("label=%q", label),
		fmt.Sprintf("fillcolor=%q", st.Fill),
		fmt.Sprintf("color=%q", st.Stroke),
		fmt.Sprintf("fontcolor=%q", st.Font),
	}

	style := "filled"
	switch n.ShapeKind {
	case graph.ShapeTerminal:
		style = "rounded,filled"
	case graph.ShapeHexagon:
		attrs = append(attrs, "shape=hexagon")
	}
	if st.Bold {
		style += ",bold"
	}
	attrs = append(attrs, fmt.Sprintf("style=%q", style))
	if n.IsPivot() {
		attrs = append(attrs, "penwidth=3")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the picture scales from
// the origin.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}

// RenderPDF renders DOT source as PDF via SVG.
func RenderPDF(dot string) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders DOT source as PNG via SVG.
func RenderPNG(dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
