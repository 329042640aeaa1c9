package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mki/isnad/pkg/pipeline"
)

// binaryFormats are never printed to a terminal.
var binaryFormats = []string{pipeline.FormatSVG, pipeline.FormatPNG, pipeline.FormatPDF}

// extensions maps formats to file extensions.
var extensions = map[string]string{
	pipeline.FormatJSON:    ".json",
	pipeline.FormatDOT:     ".dot",
	pipeline.FormatSVG:     ".svg",
	pipeline.FormatPNG:     ".png",
	pipeline.FormatPDF:     ".pdf",
	pipeline.FormatMermaid: ".mmd",
}

type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	name      string // used to derive file names
	output    string
	cacheHit  bool
	stats     pipeline.Stats
}

// writeArtifacts writes one file per format. A single text format without
// -o goes to stdout.
func writeArtifacts(stdout io.Writer, p artifactWriteParams) error {
	if len(p.formats) == 1 && p.output == "" && !slices.Contains(binaryFormats, p.formats[0]) {
		_, err := stdout.Write(p.artifacts[p.formats[0]])
		return err
	}

	base := basePath(p.output, p.name)
	for _, f := range p.formats {
		path := base + extensions[f]
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := os.WriteFile(path, p.artifacts[f], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	printStats(p.stats, p.cacheHit)
	return nil
}

// basePath strips a known format extension from output, or derives a safe
// file name from name when output is empty.
func basePath(output, name string) string {
	if output == "" {
		return strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(name)
	}
	ext := filepath.Ext(output)
	for _, e := range extensions {
		if ext == e {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
