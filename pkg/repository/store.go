package repository

import (
	"context"
	stderrors "errors"

	"golang.org/x/sync/singleflight"

	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/isnad"
)

// NarratorStore is a backing store of narrator records.
type NarratorStore interface {
	// FetchNarrators returns the narrators whose index is in indices.
	// Unknown indices are omitted; order is unspecified.
	FetchNarrators(ctx context.Context, indices []int) ([]isnad.Narrator, error)

	// SearchNarrators returns up to limit narrators whose localized names
	// or raw grade contain query, ignoring case and Arabic diacritics.
	SearchNarrators(ctx context.Context, query string, limit int) ([]isnad.Narrator, error)
}

// HadithStore is a backing store of hadiths.
type HadithStore interface {
	// FetchHadith returns the hadith with the given id, or nil and no
	// error when there is none.
	FetchHadith(ctx context.Context, id string) (*isnad.Hadith, error)

	// ListHadiths returns up to limit hadiths starting at offset, ordered
	// by source then number, and the total count matching source. An
	// empty source matches every hadith.
	ListHadiths(ctx context.Context, offset, limit int, source string) ([]isnad.Hadith, int, error)
}

// Store is a backend serving both narrators and hadiths.
type Store interface {
	NarratorStore
	HadithStore
	Close() error
}

// Named is implemented by stores that report a backend name for logs and
// metrics.
type Named interface {
	Name() string
}

// BackendName returns the name s reports via Named, or "store".
func BackendName(s any) string {
	if n, ok := s.(Named); ok {
		return n.Name()
	}
	return "store"
}

// IsRepositoryError reports whether err is a storage failure.
func IsRepositoryError(err error) bool {
	return errors.Is(err, errors.ErrCodeRepository)
}

// repositoryError wraps a store failure. Context cancellation and
// deadlines pass through unwrapped: they belong to the caller, not the
// store.
func repositoryError(err error, format string, args ...any) error {
	if errors.GetCode(err) == errors.ErrCodeRepository ||
		stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errors.Wrap(errors.ErrCodeRepository, err, format, args...)
}

// shared runs fn once for all concurrent callers of key. fn gets a context
// that keeps ctx's values but not its cancellation, so one caller giving
// up does not fail the others; each caller still returns as soon as its
// own ctx ends.
func shared(ctx context.Context, g *singleflight.Group, key string, fn func(context.Context) (any, error)) (any, error) {
	ch := g.DoChan(key, func() (any, error) {
		return fn(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}
