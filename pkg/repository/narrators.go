package repository

import (
	"context"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/observability"
)

// Narrators is the narrator repository adapter. It is safe for concurrent
// use.
type Narrators struct {
	store   NarratorStore
	backend string
	logger  *log.Logger

	mu      sync.RWMutex
	known   map[int]isnad.Narrator
	missing map[int]struct{}
	group   singleflight.Group
}

// NewNarrators wraps store. A nil logger uses log.Default().
func NewNarrators(store NarratorStore, logger *log.Logger) *Narrators {
	if logger == nil {
		logger = log.Default()
	}
	return &Narrators{
		store:   store,
		backend: BackendName(store),
		logger:  logger,
		known:   make(map[int]isnad.Narrator),
		missing: make(map[int]struct{}),
	}
}

// GetByIndex returns the narrator with the given index, or nil when the
// store does not know it.
func (r *Narrators) GetByIndex(ctx context.Context, index int) (*isnad.Narrator, error) {
	ns, err := r.GetByIndices(ctx, []int{index})
	if err != nil || len(ns) == 0 {
		return nil, err
	}
	return &ns[0], nil
}

// GetByIndices returns the narrators for indices in one store call at
// most. Unknown indices are omitted. Results follow the first appearance
// of each index in indices, but callers that need chain order must
// re-order them themselves.
func (r *Narrators) GetByIndices(ctx context.Context, indices []int) ([]isnad.Narrator, error) {
	wanted := dedupe(indices)
	if misses := r.misses(wanted); len(misses) > 0 {
		if err := r.load(ctx, misses); err != nil {
			return nil, err
		}
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]isnad.Narrator, 0, len(wanted))
	for _, idx := range wanted {
		if n, ok := r.known[idx]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// Search returns up to limit narrators matching query, ordered by index.
func (r *Narrators) Search(ctx context.Context, query string, limit int) ([]isnad.Narrator, error) {
	if err := errors.ValidateQuery(query); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	limit = ClampLimit(limit)

	start := time.Now()
	found, err := r.store.SearchNarrators(ctx, query, limit)
	observability.Repository().OnFetch(ctx, r.backend, "search", len(found), time.Since(start), err)
	if err != nil {
		return nil, repositoryError(err, "search narrators %q", query)
	}

	out := make([]isnad.Narrator, len(found))
	for i, n := range found {
		out[i] = NormalizeNarrator(n)
	}
	SortByIndex(out)
	if len(out) > limit {
		out = out[:limit]
	}
	r.remember(out, nil)
	return out, nil
}

// ClearCache drops every cached narrator and every remembered miss.
func (r *Narrators) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.known = make(map[int]isnad.Narrator)
	r.missing = make(map[int]struct{})
}

// CacheSize returns the number of cached narrators.
func (r *Narrators) CacheSize() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.known)
}

func (r *Narrators) misses(indices []int) []int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []int
	for _, idx := range indices {
		if _, ok := r.known[idx]; ok {
			continue
		}
		if _, ok := r.missing[idx]; ok {
			continue
		}
		out = append(out, idx)
	}
	return out
}

func (r *Narrators) load(ctx context.Context, indices []int) error {
	sorted := slices.Sorted(slices.Values(indices))
	_, err := shared(ctx, &r.group, batchKey(sorted), func(ctx context.Context) (any, error) {
		if misses := r.misses(sorted); len(misses) == 0 {
			return nil, nil
		}

		start := time.Now()
		fetched, err := r.store.FetchNarrators(ctx, sorted)
		observability.Repository().OnFetch(ctx, r.backend, "narrators", len(fetched), time.Since(start), err)
		if err != nil {
			return nil, repositoryError(err, "fetch %d narrators", len(sorted))
		}

		normalized := make([]isnad.Narrator, 0, len(fetched))
		for _, n := range fetched {
			normalized = append(normalized, NormalizeNarrator(n))
		}
		r.remember(normalized, sorted)
		r.logger.Debug("fetched narrators", "backend", r.backend, "requested", len(sorted), "found", len(normalized))
		return nil, nil
	})
	return err
}

// remember caches ns. Any index in requested that ns lacks is recorded as
// missing. Existing entries are never overwritten.
func (r *Narrators) remember(ns []isnad.Narrator, requested []int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range ns {
		if _, ok := r.known[n.Index]; !ok {
			r.known[n.Index] = n
		}
		delete(r.missing, n.Index)
	}
	for _, idx := range requested {
		if _, ok := r.known[idx]; !ok {
			r.missing[idx] = struct{}{}
		}
	}
}

func dedupe(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, idx := range indices {
		if _, ok := seen[idx]; ok {
			continue
		}
		seen[idx] = struct{}{}
		out = append(out, idx)
	}
	return out
}

func batchKey(sorted []int) string {
	var b strings.Builder
	for i, idx := range sorted {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(idx))
	}
	return b.String()
}
