package chaingraph

import (
	"reflect"
	"strings"
	"testing"

	"github.com/mki/isnad/internal/fixtures"
	"github.com/mki/isnad/pkg/dag"
	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/chain"
)

func resolve(t *testing.T, chains ...[]int) (isnad.Hadith, []isnad.ResolvedChain) {
	t.Helper()
	h := isnad.Hadith{ID: "test"}
	for _, c := range chains {
		h.Chains = append(h.Chains, isnad.Chain{NarratorIndices: c})
	}
	resolved, _ := chain.ResolveAll(h, chain.LookupOf(fixtures.Narrators()))
	return h, resolved
}

func nodeIDs(nodes []Node) []int {
	ids := make([]int, len(nodes))
	for i, n := range nodes {
		ids[i] = n.Narrator.Index
	}
	return ids
}

func TestBuildConvergentScenario(t *testing.T) {
	h := isnad.Hadith{ID: fixtures.TwoChainID, Chains: fixtures.ConvergentChains()}
	resolved, _ := chain.ResolveAll(h, chain.LookupOf(fixtures.Narrators()))

	g := Build(h, resolved)

	idx, ok := g.CommonLink()
	if !ok || idx != fixtures.Amash {
		t.Fatalf("CommonLink() = (%d, %v), want al-A'mash", idx, ok)
	}

	var amash *Node
	for _, n := range g.Nodes() {
		if n.Narrator.Index == fixtures.Amash {
			n := n
			amash = &n
		}
	}
	if amash == nil {
		t.Fatal("al-A'mash missing from graph")
	}
	if amash.Generation != isnad.GenerationSuccessorsOfSuccessor {
		t.Errorf("generation = %s, want %s", amash.Generation, isnad.GenerationSuccessorsOfSuccessor)
	}
	if amash.Style != graph.StylePivot {
		t.Errorf("style = %s, want %s", amash.Style, graph.StylePivot)
	}

	// 10 distinct narrators; the two chains share no edge
	if got := len(g.Nodes()); got != 10 {
		t.Errorf("nodes = %d, want 10", got)
	}
	if got := len(g.Edges()); got != 11 {
		t.Errorf("edges = %d, want 11", got)
	}
	if len(g.RemovedEdges()) != 0 {
		t.Errorf("RemovedEdges() = %v, want none", g.RemovedEdges())
	}
}

func TestBuildEdgesRunWitnessToCollector(t *testing.T) {
	h, resolved := resolve(t, []int{fixtures.Bukhari, fixtures.Waki, fixtures.Amash, fixtures.IbnAbbas, fixtures.Prophet})

	g := Build(h, resolved)

	want := []dag.Edge{
		{From: fixtures.Prophet, To: fixtures.IbnAbbas},
		{From: fixtures.IbnAbbas, To: fixtures.Amash},
		{From: fixtures.Amash, To: fixtures.Waki},
		{From: fixtures.Waki, To: fixtures.Bukhari},
	}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
	if _, ok := g.CommonLink(); ok {
		t.Error("single chain should have no common link")
	}
}

func TestBuildDeduplicatesSharedSubPath(t *testing.T) {
	h, resolved := resolve(t,
		[]int{fixtures.Bukhari, fixtures.Waki, fixtures.Amash, fixtures.IbnAbbas, fixtures.Prophet},
		[]int{fixtures.Muslim, fixtures.SufyanUyayna, fixtures.Amash, fixtures.IbnAbbas, fixtures.Prophet},
	)

	g := Build(h, resolved)

	count := func(from, to int) int {
		n := 0
		for _, e := range g.Edges() {
			if e.From == from && e.To == to {
				n++
			}
		}
		return n
	}
	if n := count(fixtures.Amash, fixtures.IbnAbbas); n != 0 {
		t.Errorf("edge amash->ibn abbas present %d times, edges must point toward the collector", n)
	}
	if n := count(fixtures.IbnAbbas, fixtures.Amash); n != 1 {
		t.Errorf("edge ibn abbas->amash present %d times, want 1", n)
	}
	if n := count(fixtures.Prophet, fixtures.IbnAbbas); n != 1 {
		t.Errorf("edge prophet->ibn abbas present %d times, want 1", n)
	}
	if got := len(g.Edges()); got != 6 {
		t.Errorf("edges = %d, want 6", got)
	}
}

func TestBuildGroupsByGeneration(t *testing.T) {
	h := isnad.Hadith{ID: fixtures.TwoChainID, Chains: fixtures.ConvergentChains()}
	resolved, _ := chain.ResolveAll(h, chain.LookupOf(fixtures.Narrators()))

	g := Build(h, resolved)

	want := []int{
		fixtures.Prophet,
		fixtures.IbnMasud, fixtures.IbnAbbas,
		fixtures.Masruq, fixtures.IbrahimNakhai,
		fixtures.Amash, fixtures.SufyanUyayna,
		fixtures.Waki, fixtures.Bukhari, fixtures.Muslim,
	}
	if got := nodeIDs(g.Nodes()); !reflect.DeepEqual(got, want) {
		t.Errorf("node order = %v, want %v", got, want)
	}

	last := -1
	for _, n := range g.Nodes() {
		if l := n.Generation.Layer(); l < last {
			t.Fatalf("generation %s out of order", n.Generation)
		} else {
			last = l
		}
	}
}

func TestShapesAndStyles(t *testing.T) {
	h := isnad.Hadith{ID: fixtures.TwoChainID, Chains: fixtures.ConvergentChains()}
	resolved, _ := chain.ResolveAll(h, chain.LookupOf(fixtures.Narrators()))
	g := Build(h, resolved)

	byID := make(map[int]Node)
	for _, n := range g.Nodes() {
		byID[n.Narrator.Index] = n
	}

	tests := []struct {
		index int
		shape string
		style string
	}{
		{fixtures.Prophet, graph.ShapeTerminal, "prophet"},
		{fixtures.Bukhari, graph.ShapeHexagon, "collector"},
		{fixtures.Muslim, graph.ShapeHexagon, "collector"},
		{fixtures.IbnMasud, graph.ShapeRect, "companion"},
		{fixtures.Waki, graph.ShapeRect, "trustworthy"},
		{fixtures.Amash, graph.ShapeRect, graph.StylePivot},
	}
	for _, tt := range tests {
		n := byID[tt.index]
		if n.Shape != tt.shape || n.Style != tt.style {
			t.Errorf("narrator %d: shape=%s style=%s, want %s %s", tt.index, n.Shape, n.Style, tt.shape, tt.style)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	tests := []struct {
		name   string
		chains [][]int
	}{
		{"all indices missing", [][]int{{fixtures.Missing, fixtures.Missing + 1}}},
		{"no chains", nil},
		{"two empty chains", [][]int{{fixtures.Missing}, {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, resolved := resolve(t, tt.chains...)
			g := Build(h, resolved)

			if !g.IsEmpty() {
				t.Errorf("IsEmpty() = false, want true")
			}
			if len(g.Nodes()) != 0 || len(g.Edges()) != 0 {
				t.Errorf("got %d nodes, %d edges; want 0, 0", len(g.Nodes()), len(g.Edges()))
			}
			d := g.Diagram(DiagramOptions{})
			if !d.IsEmpty() || d.CommonLink != nil {
				t.Errorf("diagram = %+v, want empty", d)
			}
			if err := d.Validate(); err != nil {
				t.Errorf("empty diagram invalid: %v", err)
			}
		})
	}
}

func TestBuildSkipsEmptyChain(t *testing.T) {
	h, resolved := resolve(t,
		[]int{fixtures.Missing},
		[]int{fixtures.Muslim, fixtures.Amash, fixtures.Prophet},
	)
	g := Build(h, resolved)

	if got := len(g.Nodes()); got != 3 {
		t.Errorf("nodes = %d, want 3", got)
	}
	if got := len(g.Edges()); got != 2 {
		t.Errorf("edges = %d, want 2", got)
	}
}

func TestBuildCollapsesDuplicateNarrator(t *testing.T) {
	h, resolved := resolve(t, []int{fixtures.Bukhari, fixtures.Waki, fixtures.Waki, fixtures.Amash})

	if len(resolved[0]) != 4 {
		t.Fatalf("resolution must keep duplicates, got %v", resolved[0].Indices())
	}
	g := Build(h, resolved)
	if got := len(g.Nodes()); got != 3 {
		t.Errorf("nodes = %d, want 3", got)
	}
	if got := len(g.Edges()); got != 2 {
		t.Errorf("edges = %d, want 2 (self loop dropped)", got)
	}
}

func TestBuildBreaksCycles(t *testing.T) {
	h, resolved := resolve(t,
		[]int{fixtures.Bukhari, fixtures.Waki, fixtures.Amash, fixtures.Prophet},
		[]int{fixtures.Muslim, fixtures.Amash, fixtures.Waki, fixtures.Prophet},
	)
	g := Build(h, resolved)

	if len(g.RemovedEdges()) != 1 {
		t.Fatalf("RemovedEdges() = %v, want one edge", g.RemovedEdges())
	}
	if err := g.DAG().Validate(); err != nil {
		t.Errorf("graph still invalid: %v", err)
	}
}

func TestDiagram(t *testing.T) {
	h := isnad.Hadith{ID: fixtures.TwoChainID, Chains: fixtures.ConvergentChains()}
	resolved, _ := chain.ResolveAll(h, chain.LookupOf(fixtures.Narrators()))
	g := Build(h, resolved)

	d := g.Diagram(DiagramOptions{Locale: isnad.LocaleArabic})

	if err := d.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if d.HadithID != fixtures.TwoChainID || d.Locale != "ar" {
		t.Errorf("header = %s/%s", d.HadithID, d.Locale)
	}
	if want := []string{"prophet", "companions", "successors", "successorsOfSuccessors", "later"}; !reflect.DeepEqual(d.GenerationOrder, want) {
		t.Errorf("GenerationOrder = %v, want %v", d.GenerationOrder, want)
	}
	if d.CommonLink == nil || *d.CommonLink != fixtures.Amash {
		t.Fatalf("CommonLink = %v, want %d", d.CommonLink, fixtures.Amash)
	}

	pivot, _ := d.Node(fixtures.Amash)
	if pivot.Label != "سليمان الأعمش (المدار)" {
		t.Errorf("ar label = %q", pivot.Label)
	}
	if pivot.Labels["en"] != "Sulayman al-A'mash (common link)" {
		t.Errorf("en label = %q", pivot.Labels["en"])
	}
	// no French name: falls back to English, marker stays French
	if pivot.Labels["fr"] != "Sulayman al-A'mash (lien commun)" {
		t.Errorf("fr label = %q", pivot.Labels["fr"])
	}

	waki, _ := d.Node(fixtures.Waki)
	if strings.Contains(waki.Label, "(") {
		t.Errorf("non-pivot label %q should carry no marker", waki.Label)
	}
}

func TestDiagramPivotMarkerOverride(t *testing.T) {
	h := isnad.Hadith{ID: fixtures.TwoChainID, Chains: fixtures.ConvergentChains()}
	resolved, _ := chain.ResolveAll(h, chain.LookupOf(fixtures.Narrators()))

	d := Build(h, resolved).Diagram(DiagramOptions{PivotMarker: "★"})

	pivot, _ := d.Node(fixtures.Amash)
	if pivot.Label != "Sulayman al-A'mash ★" {
		t.Errorf("label = %q", pivot.Label)
	}
	if d.Locale != string(isnad.DefaultLocale) {
		t.Errorf("Locale = %q, want default", d.Locale)
	}
}

func TestStyleOfUnknownStatus(t *testing.T) {
	if got := StyleOf(""); got != "unknown" {
		t.Errorf("StyleOf(\"\") = %q, want unknown", got)
	}
	if got := ShapeOf(""); got != graph.ShapeRect {
		t.Errorf("ShapeOf(\"\") = %q, want rect", got)
	}
}
