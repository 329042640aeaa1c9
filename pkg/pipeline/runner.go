package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/mki/isnad/pkg/cache"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/graph"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/chain"
	"github.com/mki/isnad/pkg/isnad/chaingraph"
	"github.com/mki/isnad/pkg/observability"
	"github.com/mki/isnad/pkg/repository"
)

// Runner executes the pipeline with caching. It holds no per-run state;
// one Runner may serve concurrent requests.
type Runner struct {
	Narrators *repository.Narrators
	Hadiths   *repository.Hadiths
	Cache     cache.Cache
	Keyer     cache.Keyer
	Logger    *log.Logger

	// Store names the backend in diagram cache keys so that switching
	// stores does not serve stale diagrams.
	Store string

	DiagramTTL  time.Duration
	ArtifactTTL time.Duration
}

// NewRunner creates a runner. A nil cache disables caching; a nil keyer
// uses cache.NewDefaultKeyer().
func NewRunner(narrators *repository.Narrators, hadiths *repository.Hadiths, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Narrators:   narrators,
		Hadiths:     hadiths,
		Cache:       c,
		Keyer:       keyer,
		Logger:      logger,
		DiagramTTL:  DefaultDiagramTTL,
		ArtifactTTL: DefaultArtifactTTL,
	}
}

// snapshot is the cached form of a built diagram.
type snapshot struct {
	Chains       []isnad.ResolvedChain `json:"chains"`
	Gaps         []chain.Gap           `json:"gaps,omitempty"`
	Diagram      graph.Diagram         `json:"diagram"`
	RemovedEdges []graph.Edge          `json:"removed_edges,omitempty"`
}

// Execute runs Chain followed by Render.
func (r *Runner) Execute(ctx context.Context, hadithID string, opts Options) (*Result, error) {
	res, err := r.Chain(ctx, hadithID, opts)
	if err != nil {
		return nil, err
	}
	if err := r.Render(ctx, res, opts); err != nil {
		return nil, err
	}
	return res, nil
}

// Chain fetches, resolves and builds the chain diagram of one hadith.
func (r *Runner) Chain(ctx context.Context, hadithID string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)

	h, err := r.Hadiths.GetByID(ctx, hadithID)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.New(errors.ErrCodeHadithNotFound, "hadith %q not found", hadithID)
	}

	res := &Result{Hadith: *h}
	key := r.Keyer.DiagramKey(h.ID, opts.DiagramKeyOpts(r.Store))

	if !opts.Refresh {
		if snap, ok := r.cachedSnapshot(ctx, key); ok {
			res.CacheInfo.DiagramHit = true
			r.fill(res, snap)
			logger.Debug("diagram from cache", "hadith", h.ID)
			return res, nil
		}
	}

	snap, err := r.build(ctx, *h, opts, res)
	if err != nil {
		return nil, err
	}
	r.fill(res, snap)

	if data, err := json.Marshal(snap); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.DiagramTTL); err != nil {
			logger.Warn("cache diagram", "hadith", h.ID, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "diagram", len(data))
		}
	}
	return res, nil
}

func (r *Runner) cachedSnapshot(ctx context.Context, key string) (snapshot, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "diagram")
		return snapshot{}, false
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil || snap.Diagram.Validate() != nil {
		observability.Cache().OnCacheMiss(ctx, "diagram")
		return snapshot{}, false
	}
	observability.Cache().OnCacheHit(ctx, "diagram")
	return snap, true
}

func (r *Runner) build(ctx context.Context, h isnad.Hadith, opts Options, res *Result) (snapshot, error) {
	logger := r.logger(opts)
	hooks := observability.Pipeline()

	start := time.Now()
	hooks.OnResolveStart(ctx, h.ID, len(h.Chains))
	chains, gaps, err := chain.ResolveHadith(ctx, r.Narrators, h)
	res.Stats.ResolveTime = time.Since(start)
	hooks.OnResolveComplete(ctx, h.ID, countNarrators(chains), len(gaps), res.Stats.ResolveTime, err)
	if err != nil {
		return snapshot{}, err
	}

	for _, g := range gaps {
		logger.Warn("narrator not found", "hadith", h.ID, "chain", g.Chain, "index", g.Index)
		hooks.OnDataGap(ctx, h.ID, g.Chain, g.Index)
	}

	start = time.Now()
	cg := chaingraph.Build(h, chains)
	d := cg.Diagram(chaingraph.DiagramOptions{Locale: isnad.Locale(opts.Locale), PivotMarker: opts.PivotMarker})
	res.Stats.BuildTime = time.Since(start)

	var removed []graph.Edge
	for _, e := range cg.RemovedEdges() {
		removed = append(removed, graph.Edge{From: e.From, To: e.To})
	}
	if len(removed) > 0 {
		logger.Warn("chain data contains a cycle; edges dropped", "hadith", h.ID, "edges", len(removed))
	}

	_, hasLink := cg.CommonLink()
	hooks.OnBuildComplete(ctx, h.ID, len(d.Nodes), len(d.Edges), hasLink, res.Stats.BuildTime)
	logger.Info("built chain graph", "hadith", h.ID,
		"chains", len(chains), "nodes", len(d.Nodes), "edges", len(d.Edges),
		"gaps", len(gaps), "common_link", hasLink)

	return snapshot{Chains: chains, Gaps: gaps, Diagram: d, RemovedEdges: removed}, nil
}

func (r *Runner) fill(res *Result, snap snapshot) {
	res.Chains = snap.Chains
	res.Gaps = snap.Gaps
	res.Diagram = snap.Diagram
	res.RemovedEdges = snap.RemovedEdges
	res.Empty = snap.Diagram.IsEmpty()
	res.Stats.NodeCount = len(snap.Diagram.Nodes)
	res.Stats.EdgeCount = len(snap.Diagram.Edges)
	res.Stats.GapCount = len(snap.Gaps)
	if data, err := graph.MarshalDiagram(snap.Diagram); err == nil {
		res.DiagramHash = cache.Hash(data)
	}
	if snap.Diagram.CommonLink != nil {
		res.CommonLink = findNarrator(snap.Chains, *snap.Diagram.CommonLink)
	}
}

// Render fills res.Artifacts with opts.Formats, using cached artifacts
// where possible.
func (r *Runner) Render(ctx context.Context, res *Result, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	start := time.Now()
	if res.Artifacts == nil {
		res.Artifacts = make(map[string][]byte, len(opts.Formats))
	}

	allCached := true
	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(res.DiagramHash, opts.ArtifactKeyOpts(format))
		if !opts.Refresh && res.DiagramHash != "" {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				res.Artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}

		allCached = false
		data, err := RenderFormat(res.Diagram, format, opts)
		if err != nil {
			return err
		}
		res.Artifacts[format] = data
		if res.DiagramHash != "" && r.Cache.Set(ctx, key, data, r.ArtifactTTL) == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	res.CacheInfo.RenderHit = allCached
	res.Stats.RenderTime = time.Since(start)
	return nil
}

// ChainMany runs Chain for every id with at most parallelism concurrent
// runs (DefaultParallelism when zero or less). Results follow the order of
// ids; a hadith that does not exist leaves a nil entry. Any other error
// cancels the remaining runs and is returned.
func (r *Runner) ChainMany(ctx context.Context, ids []string, opts Options, parallelism int) ([]*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if parallelism <= 0 {
		parallelism = DefaultParallelism
	}

	results := make([]*Result, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, id := range ids {
		g.Go(func() error {
			res, err := r.Chain(ctx, id, opts)
			if errors.Is(err, errors.ErrCodeHadithNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

func countNarrators(chains []isnad.ResolvedChain) int {
	n := 0
	for _, c := range chains {
		n += len(c)
	}
	return n
}

func findNarrator(chains []isnad.ResolvedChain, index int) *isnad.Narrator {
	for _, c := range chains {
		for i := range c {
			if c[i].Index == index {
				n := c[i]
				return &n
			}
		}
	}
	return nil
}
