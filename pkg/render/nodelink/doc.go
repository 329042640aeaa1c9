// Package nodelink renders chain diagrams as node-link pictures with
// Graphviz.
//
// # Layout
//
// [ToDOT] produces DOT source with one "cluster_<generation>" subgraph per
// non-empty generation, stacked top to bottom in the diagram's generation
// order, and every node of a cluster on the same rank. Edges run from the
// earlier narrator to the later one, so the Prophet sits at the top and
// the collectors at the bottom.
//
// Node shapes follow the diagram's shape hints (rounded box for the
// Prophet, hexagon for collectors, box otherwise) and fills follow the
// style class through [render.Palette]. The common link is drawn with a
// thicker outline.
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// For PDF or PNG output:
//
//	pdf, err := nodelink.RenderPDF(dot)
//	png, err := nodelink.RenderPNG(dot, 2.0)  // 2x scale
//
// # Dependencies
//
// SVG rendering runs in process through [github.com/goccy/go-graphviz].
// PDF and PNG conversion requires librsvg (rsvg-convert).
//
// [render.Palette]: github.com/mki/isnad/pkg/render#Palette
package nodelink
