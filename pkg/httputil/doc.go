// Package httputil fetches remote narrator and hadith exports.
//
// [Client] wraps net/http with two things the CSV-over-HTTP store needs:
// retry with exponential backoff for transient failures (network errors,
// 429 and 5xx responses) and a response cache backed by [cache.Cache].
//
//	c := httputil.NewClient(fileCache, 24*time.Hour)
//	body, err := c.Get(ctx, "narrators", "https://example.org/all_rawis.csv")
//
// Errors carry codes from pkg/errors: NOT_FOUND for a 404, NETWORK_ERROR
// once retries are exhausted.
//
// [cache.Cache]: github.com/mki/isnad/pkg/cache
package httputil
