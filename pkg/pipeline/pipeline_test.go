package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mki/isnad/internal/fixtures"
	"github.com/mki/isnad/pkg/cache"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/observability"
	"github.com/mki/isnad/pkg/repository"
	"github.com/mki/isnad/pkg/repository/memstore"
)

type testEnv struct {
	runner *Runner
	store  *memstore.Store
	logs   *bytes.Buffer
}

func newEnv(t *testing.T) testEnv {
	t.Helper()
	store := memstore.New(fixtures.Narrators(), fixtures.Hadiths())
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	var buf bytes.Buffer
	logger := log.New(&buf)
	r := NewRunner(repository.NewNarrators(store, logger), repository.NewHadiths(store, logger), c, nil, logger)
	t.Cleanup(func() { r.Close() })
	return testEnv{runner: r, store: store, logs: &buf}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"mermaid", false},
		{"table", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && errors.GetCode(err) != errors.ErrCodeInvalidFormat {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Locale != "en" || len(o.Formats) != 1 || o.Formats[0] != FormatJSON {
		t.Errorf("defaults = %+v", o)
	}

	bad := Options{Locale: "de"}
	if err := bad.ValidateAndSetDefaults(); errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("unsupported locale: got %v", err)
	}
	bad = Options{Formats: []string{"gif"}}
	if err := bad.ValidateAndSetDefaults(); errors.GetCode(err) != errors.ErrCodeInvalidFormat {
		t.Errorf("unsupported format: got %v", err)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Detailed: true}
	if got := o.ArtifactKeyOpts(FormatSVG).Format; got != "svg+detailed" {
		t.Errorf("detailed svg key = %q", got)
	}
	if got := o.ArtifactKeyOpts(FormatMermaid).Format; got != "mermaid" {
		t.Errorf("mermaid key = %q", got)
	}
}

func TestChainConvergent(t *testing.T) {
	env := newEnv(t)
	res, err := env.runner.Chain(context.Background(), fixtures.TwoChainID, Options{})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}

	if res.Empty {
		t.Error("Empty = true")
	}
	if res.Stats.NodeCount != 10 || res.Stats.EdgeCount != 11 {
		t.Errorf("got %d nodes, %d edges; want 10, 11", res.Stats.NodeCount, res.Stats.EdgeCount)
	}
	if res.CommonLink == nil || res.CommonLink.Index != fixtures.Amash {
		t.Errorf("CommonLink = %+v, want al-A'mash", res.CommonLink)
	}
	if d := res.Diagram; d.CommonLink == nil || *d.CommonLink != fixtures.Amash {
		t.Errorf("Diagram.CommonLink = %v", d.CommonLink)
	}
	if len(res.Gaps) != 0 {
		t.Errorf("Gaps = %+v", res.Gaps)
	}
	if env.store.Calls != 1 {
		t.Errorf("narrator store called %d times, want one batch", env.store.Calls)
	}
	if len(res.Chains) != 2 || res.Chains[0][0].Index != fixtures.Bukhari {
		t.Errorf("chains should keep collector-first order: %+v", res.Chains)
	}
}

func TestChainLocalizedLabels(t *testing.T) {
	env := newEnv(t)
	res, err := env.runner.Chain(context.Background(), fixtures.TwoChainID, Options{Locale: "ar"})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	n, ok := res.Diagram.Node(fixtures.Amash)
	if !ok {
		t.Fatal("pivot node missing")
	}
	if n.Label != "سليمان الأعمش (المدار)" {
		t.Errorf("pivot label = %q", n.Label)
	}
}

func TestChainGap(t *testing.T) {
	env := newEnv(t)

	var rec gapRecorder
	observability.SetPipelineHooks(&rec)
	t.Cleanup(observability.Reset)

	res, err := env.runner.Chain(context.Background(), fixtures.PartialID, Options{})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if len(res.Gaps) != 1 || res.Gaps[0].Index != fixtures.Missing {
		t.Fatalf("Gaps = %+v", res.Gaps)
	}
	if len(res.Chains[0]) != 5 {
		t.Errorf("resolved chain has %d narrators, want 5", len(res.Chains[0]))
	}
	if res.Stats.EdgeCount != 4 {
		t.Errorf("edges = %d, want 4", res.Stats.EdgeCount)
	}
	if !strings.Contains(env.logs.String(), "narrator not found") {
		t.Errorf("gap not logged:\n%s", env.logs.String())
	}
	if rec.gaps != 1 {
		t.Errorf("OnDataGap called %d times, want 1", rec.gaps)
	}
}

type gapRecorder struct {
	observability.NoopPipelineHooks
	mu   sync.Mutex
	gaps int
}

func (r *gapRecorder) OnDataGap(context.Context, string, int, int) {
	r.mu.Lock()
	r.gaps++
	r.mu.Unlock()
}

func TestChainEmpty(t *testing.T) {
	env := newEnv(t)
	res, err := env.runner.Chain(context.Background(), fixtures.EmptyID, Options{})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if !res.Empty || !res.Diagram.IsEmpty() {
		t.Error("want an empty result")
	}
	if res.CommonLink != nil {
		t.Error("empty graph has no common link")
	}
	if len(res.Gaps) != 2 {
		t.Errorf("Gaps = %+v, want 2", res.Gaps)
	}
}

func TestChainNotFound(t *testing.T) {
	env := newEnv(t)
	_, err := env.runner.Chain(context.Background(), "nope", Options{})
	if errors.GetCode(err) != errors.ErrCodeHadithNotFound {
		t.Errorf("got %v, want HADITH_NOT_FOUND", err)
	}
	_, err = env.runner.Chain(context.Background(), "../x", Options{})
	if errors.GetCode(err) != errors.ErrCodeInvalidHadithID {
		t.Errorf("got %v, want INVALID_HADITH_ID", err)
	}
}

func TestChainCache(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	first, err := env.runner.Chain(ctx, fixtures.TwoChainID, Options{})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if first.CacheInfo.DiagramHit {
		t.Error("first run should miss")
	}

	env.runner.Narrators.ClearCache()
	second, err := env.runner.Chain(ctx, fixtures.TwoChainID, Options{})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if !second.CacheInfo.DiagramHit {
		t.Error("second run should hit")
	}
	if env.store.Calls != 1 {
		t.Errorf("cached run fetched narrators (%d calls)", env.store.Calls)
	}
	if second.DiagramHash != first.DiagramHash {
		t.Error("cached diagram differs")
	}
	if second.CommonLink == nil || second.CommonLink.Index != fixtures.Amash {
		t.Error("cached result lost the common link")
	}

	other, err := env.runner.Chain(ctx, fixtures.TwoChainID, Options{Locale: "fr"})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if other.CacheInfo.DiagramHit {
		t.Error("a different locale must not hit")
	}

	refreshed, err := env.runner.Chain(ctx, fixtures.TwoChainID, Options{Refresh: true})
	if err != nil {
		t.Fatalf("Chain: %v", err)
	}
	if refreshed.CacheInfo.DiagramHit {
		t.Error("Refresh should bypass the cache")
	}
}

func TestExecuteRendersAndCaches(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()
	opts := Options{Formats: []string{FormatJSON, FormatDOT, FormatMermaid}}

	res, err := env.runner.Execute(ctx, fixtures.TwoChainID, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheInfo.RenderHit {
		t.Error("first render should miss")
	}
	if len(res.Artifacts) != 3 {
		t.Fatalf("got %d artifacts", len(res.Artifacts))
	}
	d, err := graph.UnmarshalDiagram(res.Artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if len(d.Nodes) != 10 {
		t.Errorf("json artifact has %d nodes", len(d.Nodes))
	}
	if !strings.Contains(string(res.Artifacts[FormatDOT]), "cluster_successorsOfSuccessors") {
		t.Error("dot artifact missing generation cluster")
	}
	if !strings.HasPrefix(string(res.Artifacts[FormatMermaid]), "flowchart TB") {
		t.Error("mermaid artifact malformed")
	}

	again, err := env.runner.Execute(ctx, fixtures.TwoChainID, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !again.CacheInfo.RenderHit {
		t.Error("second render should come from cache")
	}
}

func TestChainMany(t *testing.T) {
	env := newEnv(t)
	ids := []string{fixtures.TwoChainID, "missing-hadith", fixtures.SingleChainID, fixtures.EmptyID}

	results, err := env.runner.ChainMany(context.Background(), ids, Options{}, 2)
	if err != nil {
		t.Fatalf("ChainMany: %v", err)
	}
	if len(results) != len(ids) {
		t.Fatalf("got %d results", len(results))
	}
	if results[1] != nil {
		t.Error("missing hadith should leave a nil entry")
	}
	for i, id := range []string{fixtures.TwoChainID, "", fixtures.SingleChainID, fixtures.EmptyID} {
		if id == "" {
			continue
		}
		if results[i] == nil || results[i].Hadith.ID != id {
			t.Errorf("result %d = %+v, want %s", i, results[i], id)
		}
	}
	if results[2].CommonLink != nil {
		t.Error("a single chain has no common link")
	}

	if _, err := env.runner.ChainMany(context.Background(), []string{"a/b"}, Options{}, 0); err == nil {
		t.Error("invalid id should abort ChainMany")
	}
}
