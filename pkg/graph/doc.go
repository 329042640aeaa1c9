// Package graph defines the diagram description of a narrator chain graph
// and its serialization.
//
// A [Diagram] is everything a renderer needs to draw a chain graph:
// nodes with a label, a shape hint, a style class and a generation, the
// deduplicated directed edges, and the generation order used to stack
// layers top to bottom. It carries no renderer syntax; DOT and Mermaid
// output live in the render packages.
//
// # Format
//
//	{
//	  "hadithId": "bukhari-1",
//	  "locale": "en",
//	  "nodes": [
//	    {"id": 1, "label": "Prophet Muhammad", "shapeKind": "terminal",
//	     "styleClass": "prophet", "generation": "prophet"},
//	    {"id": 6, "label": "Sulayman al-A'mash (common link)", "shapeKind": "rect",
//	     "styleClass": "pivot", "generation": "successorsOfSuccessors"}
//	  ],
//	  "edges": [{"from": 1, "to": 6}],
//	  "generationOrder": ["prophet", "companions", "successors",
//	                      "successorsOfSuccessors", "later"],
//	  "commonLink": 6
//	}
//
// Common operations:
//
//	d, _ := graph.ReadDiagramFile("chain.json")  // File → Diagram
//	graph.WriteDiagramFile(d, "output.json")     // Diagram → File
//	data, _ := graph.MarshalDiagram(d)           // Diagram → []byte
//	g, _ := graph.ToDAG(d)                       // Diagram → DAG
//
// Diagrams also carry BSON tags so they can be stored next to hadiths in
// MongoDB.
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
