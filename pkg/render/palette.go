package render

import "github.com/mki/isnad/pkg/graph"

// Style is the look of one style class.
type Style struct {
	Fill   string
	Stroke string
	Font   string
	Bold   bool
}

// Palette maps diagram style classes to their look. Classes not listed
// use [Fallback].
var Palette = map[string]Style{
	"prophet":        {Fill: "#f6e7b4", Stroke: "#b08d2c", Font: "#3d2f05", Bold: true},
	"companion":      {Fill: "#d7ecd9", Stroke: "#3f8a4a", Font: "#17361c"},
	"trustworthy":    {Fill: "#d6e4f5", Stroke: "#3a6ea5", Font: "#132a44"},
	"truthful":       {Fill: "#e6eef8", Stroke: "#7596bd", Font: "#1f3550"},
	"unknown":        {Fill: "#eeeeee", Stroke: "#9a9a9a", Font: "#333333"},
	"weak":           {Fill: "#f6d5d2", Stroke: "#b5473c", Font: "#4a1510"},
	"collector":      {Fill: "#e4dcf1", Stroke: "#6b52a3", Font: "#2a1d47", Bold: true},
	graph.StylePivot: {Fill: "#ffd08a", Stroke: "#d9730d", Font: "#3d1f00", Bold: true},
}

// Fallback is the style of classes missing from Palette.
var Fallback = Style{Fill: "#ffffff", Stroke: "#555555", Font: "#000000"}

// StyleFor returns the style of class.
func StyleFor(class string) Style {
	if s, ok := Palette[class]; ok {
		return s
	}
	return Fallback
}
