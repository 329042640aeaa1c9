package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// Diagram Serialization API
// =============================================================================

// MarshalDiagram converts a Diagram to indented JSON bytes.
func MarshalDiagram(d Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDiagram(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDiagram decodes and validates JSON bytes.
func UnmarshalDiagram(data []byte) (Diagram, error) {
	return ReadDiagram(bytes.NewReader(data))
}

// WriteDiagramFile writes a Diagram to a JSON file.
// The file is created with 0644 permissions.
func WriteDiagramFile(d Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDiagram(d, f)
}

// WriteDiagram writes a Diagram as JSON to an io.Writer.
func WriteDiagram(d Diagram, w io.Writer) error {
	if d.Nodes == nil {
		d.Nodes = []Node{}
	}
	if d.Edges == nil {
		d.Edges = []Edge{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ReadDiagramFile reads a JSON file and returns the decoded Diagram.
func ReadDiagramFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		return Diagram{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDiagram(f)
}

// ReadDiagram decodes a JSON diagram from an io.Reader and validates it.
func ReadDiagram(r io.Reader) (Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Diagram{}, fmt.Errorf("decode: %w", err)
	}
	if err := d.Validate(); err != nil {
		return Diagram{}, fmt.Errorf("invalid diagram: %w", err)
	}
	return d, nil
}
