// Package render turns chain diagram descriptions into pictures.
//
// Renderers take a [graph.Diagram] and never look at narrators, chains or
// repositories; everything they draw is already in the description.
//
//   - [nodelink] lays the diagram out with Graphviz, one cluster per
//     generation, and produces DOT or SVG
//   - [mermaid] produces Mermaid flowchart text for Markdown viewers
//
// This package holds what they share: the fill [Palette] keyed by style
// class, and [ToPDF] / [ToPNG] conversion of SVG output through the
// external rsvg-convert tool (from librsvg).
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := render.ToPNG(svg, 2.0)
//
// [graph.Diagram]: github.com/mki/isnad/pkg/graph#Diagram
// [nodelink]: github.com/mki/isnad/pkg/render/nodelink
// [mermaid]: github.com/mki/isnad/pkg/render/mermaid
package render
