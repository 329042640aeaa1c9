package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/observability"
)

// DefaultPageSize is used when a caller asks for a page size of zero.
const DefaultPageSize = 20

// Page is one page of hadiths.
type Page struct {
	Items     []isnad.Hadith `json:"items"`
	Total     int            `json:"total"`
	PageCount int            `json:"pageCount"`
	Page      int            `json:"page"`
	PageSize  int            `json:"pageSize"`
}

// Hadiths is the hadith repository adapter. It is safe for concurrent use.
type Hadiths struct {
	store   HadithStore
	backend string
	logger  *log.Logger

	mu    sync.RWMutex
	byID  map[string]*isnad.Hadith // nil value: known to be absent
	group singleflight.Group
}

// NewHadiths wraps store. A nil logger uses log.Default().
func NewHadiths(store HadithStore, logger *log.Logger) *Hadiths {
	if logger == nil {
		logger = log.Default()
	}
	return &Hadiths{
		store:   store,
		backend: BackendName(store),
		logger:  logger,
		byID:    make(map[string]*isnad.Hadith),
	}
}

// GetByID returns the hadith with the given id, or nil when the store has
// none.
func (r *Hadiths) GetByID(ctx context.Context, id string) (*isnad.Hadith, error) {
	id = strings.TrimSpace(id)
	if err := errors.ValidateHadithID(id); err != nil {
		return nil, err
	}

	r.mu.RLock()
	h, ok := r.byID[id]
	r.mu.RUnlock()
	if ok {
		return h, nil
	}

	v, err := shared(ctx, &r.group, id, func(ctx context.Context) (any, error) {
		start := time.Now()
		h, err := r.store.FetchHadith(ctx, id)
		observability.Repository().OnFetch(ctx, r.backend, "hadith", count(h), time.Since(start), err)
		if err != nil {
			return nil, repositoryError(err, "fetch hadith %s", id)
		}
		if h != nil {
			n := NormalizeHadith(*h)
			h = &n
		}

		r.mu.Lock()
		if cached, ok := r.byID[id]; ok {
			h = cached
		} else {
			r.byID[id] = h
		}
		r.mu.Unlock()
		return h, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*isnad.Hadith), nil
}

// GetPaginated returns page (1-based) of hadiths filtered by source. A
// pageSize of zero selects DefaultPageSize. A page past the end has no
// items but correct totals.
func (r *Hadiths) GetPaginated(ctx context.Context, page, pageSize int, source string) (Page, error) {
	if err := errors.ValidatePage(page, pageSize); err != nil {
		return Page{}, err
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	source = strings.TrimSpace(source)

	start := time.Now()
	items, total, err := r.store.ListHadiths(ctx, (page-1)*pageSize, pageSize, source)
	observability.Repository().OnFetch(ctx, r.backend, "list", len(items), time.Since(start), err)
	if err != nil {
		return Page{}, repositoryError(err, "list hadiths page %d", page)
	}

	out := make([]isnad.Hadith, len(items))
	for i, h := range items {
		out[i] = NormalizeHadith(h)
	}
	return Page{
		Items:     out,
		Total:     total,
		PageCount: (total + pageSize - 1) / pageSize,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}

// ClearCache drops every cached hadith.
func (r *Hadiths) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID = make(map[string]*isnad.Hadith)
}

func count(h *isnad.Hadith) int {
	if h == nil {
		return 0
	}
	return 1
}
