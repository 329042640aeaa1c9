package pipeline

import (
	"fmt"

	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/render/mermaid"
	"github.com/mki/isnad/pkg/render/nodelink"
)

// Render produces every format in opts.Formats from d.
func Render(d graph.Diagram, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(d, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat produces one format from d.
func RenderFormat(d graph.Diagram, format string, opts Options) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	dot := func() string { return nodelink.ToDOT(d, nodelink.Options{Detailed: opts.Detailed}) }

	switch format {
	case FormatJSON:
		data, err = graph.MarshalDiagram(d)
	case FormatDOT:
		data = []byte(dot())
	case FormatSVG:
		data, err = nodelink.RenderSVG(dot())
	case FormatPNG:
		data, err = nodelink.RenderPNG(dot(), DefaultPNGScale)
	case FormatPDF:
		data, err = nodelink.RenderPDF(dot())
	case FormatMermaid:
		data = []byte(mermaid.Render(d, mermaid.Options{}))
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}
