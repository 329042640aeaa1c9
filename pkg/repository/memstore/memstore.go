// Package memstore is an in-memory narrator and hadith store.
//
// It backs tests and the demo data set, and is the store the CSV backend
// loads into.
package memstore

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/repository"
)

// Store holds narrators and hadiths in maps. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	narrators map[int]isnad.Narrator
	hadiths   map[string]isnad.Hadith
	order     []string // hadith ids sorted by source, then number

	// Calls counts FetchNarrators invocations.
	Calls int
}

var _ repository.Store = (*Store)(nil)

// New returns a store holding ns and hs. Later records with a repeated key
// replace earlier ones.
func New(ns []isnad.Narrator, hs []isnad.Hadith) *Store {
	s := &Store{
		narrators: make(map[int]isnad.Narrator, len(ns)),
		hadiths:   make(map[string]isnad.Hadith, len(hs)),
	}
	s.Put(ns, hs)
	return s
}

// Name implements repository.Named.
func (s *Store) Name() string { return "memory" }

// Put adds or replaces records.
func (s *Store) Put(ns []isnad.Narrator, hs []isnad.Hadith) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range ns {
		s.narrators[n.Index] = n
	}
	for _, h := range hs {
		s.hadiths[h.ID] = h
	}
	s.reindex()
}

func (s *Store) reindex() {
	s.order = s.order[:0]
	for id := range s.hadiths {
		s.order = append(s.order, id)
	}
	slices.SortFunc(s.order, func(a, b string) int {
		ha, hb := s.hadiths[a], s.hadiths[b]
		return cmp.Or(
			cmp.Compare(ha.Source, hb.Source),
			cmp.Compare(ha.Number, hb.Number),
			cmp.Compare(a, b),
		)
	})
}

// Len returns the number of narrators and hadiths held.
func (s *Store) Len() (narrators, hadiths int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.narrators), len(s.hadiths)
}

// All returns every narrator ordered by index and every hadith in list
// order.
func (s *Store) All() ([]isnad.Narrator, []isnad.Hadith) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ns := make([]isnad.Narrator, 0, len(s.narrators))
	for _, n := range s.narrators {
		ns = append(ns, n)
	}
	repository.SortByIndex(ns)
	hs := make([]isnad.Hadith, 0, len(s.order))
	for _, id := range s.order {
		hs = append(hs, s.hadiths[id])
	}
	return ns, hs
}

func (s *Store) FetchNarrators(ctx context.Context, indices []int) ([]isnad.Narrator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.Calls++
	s.mu.Unlock()

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []isnad.Narrator
	for _, idx := range indices {
		if n, ok := s.narrators[idx]; ok {
			out = append(out, n)
		}
	}
	return out, nil
}

func (s *Store) SearchNarrators(ctx context.Context, query string, limit int) ([]isnad.Narrator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []isnad.Narrator
	for _, n := range s.narrators {
		if repository.Matches(n, query) {
			out = append(out, n)
		}
	}
	repository.SortByIndex(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) FetchHadith(ctx context.Context, id string) (*isnad.Hadith, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.hadiths[id]
	if !ok {
		return nil, nil
	}
	return &h, nil
}

func (s *Store) ListHadiths(ctx context.Context, offset, limit int, source string) ([]isnad.Hadith, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var matched []isnad.Hadith
	for _, id := range s.order {
		if h := s.hadiths[id]; source == "" || h.Source == source {
			matched = append(matched, h)
		}
	}
	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := min(offset+limit, total)
	return matched[offset:end], total, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
