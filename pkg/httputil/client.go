package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mki/isnad/pkg/cache"
	"github.com/mki/isnad/pkg/errors"
	"github.com/mki/isnad/pkg/observability"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultAttempts = 3
	defaultDelay    = time.Second
	maxBodySize     = 256 << 20
)

// Client downloads small static files (CSV exports, JSON dumps) with retry
// and an optional response cache.
type Client struct {
	HTTP      *http.Client
	Cache     cache.Cache   // nil disables caching
	Keyer     cache.Keyer   // defaults to cache.NewDefaultKeyer()
	TTL       time.Duration // cache TTL, 0 never expires
	Attempts  int
	Delay     time.Duration
	UserAgent string
	MaxBody   int64 // response size limit, defaults to 256 MiB
}

// NewClient returns a Client with default timeouts that caches responses
// in c for ttl.
func NewClient(c cache.Cache, ttl time.Duration) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: defaultTimeout},
		Cache:     c,
		Keyer:     cache.NewDefaultKeyer(),
		TTL:       ttl,
		Attempts:  defaultAttempts,
		Delay:     defaultDelay,
		UserAgent: "isnad",
	}
}

// Get fetches rawURL and returns the body. Cached bodies are returned
// without a request; namespace scopes the cache key.
//
// Network failures, 429 and 5xx responses are retried. A 404 yields an
// error with code NOT_FOUND; exhausted retries yield NETWORK_ERROR.
func (c *Client) Get(ctx context.Context, namespace, rawURL string) ([]byte, error) {
	key := c.keyer().HTTPKey(namespace, rawURL)
	if c.Cache != nil {
		if data, ok, err := c.Cache.Get(ctx, key); err == nil && ok {
			observability.Cache().OnCacheHit(ctx, "http")
			return data, nil
		}
		observability.Cache().OnCacheMiss(ctx, "http")
	}

	var body []byte
	err := Retry(ctx, max(c.Attempts, 1), c.delay(), func() error {
		var err error
		body, err = c.fetch(ctx, rawURL)
		return err
	})
	if err != nil {
		if errors.GetCode(err) != "" {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "fetch %s", rawURL)
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, key, body, c.TTL); err == nil {
			observability.Cache().OnCacheSet(ctx, "http", len(body))
		}
	}
	return body, nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "invalid URL %q", rawURL)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, u.Host, u.Path)
	start := time.Now()

	resp, err := c.client().Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, u.Host, u.Path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &Transient{Err: err}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, u.Host, u.Path, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "%s not found", rawURL)
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= 500:
		return nil, &Transient{
			Err:   fmt.Errorf("GET %s: %s", rawURL, resp.Status),
			After: retryAfter(resp.Header),
		}
	case resp.StatusCode >= 300:
		return nil, errors.New(errors.ErrCodeNetwork, "GET %s: %s", rawURL, resp.Status)
	}

	limit := c.maxBody()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, &Transient{Err: err}
	}
	if int64(len(body)) > limit {
		return nil, errors.New(errors.ErrCodeNetwork, "GET %s: response exceeds %d bytes", rawURL, limit)
	}
	return body, nil
}

func (c *Client) maxBody() int64 {
	if c.MaxBody > 0 {
		return c.MaxBody
	}
	return maxBodySize
}

func (c *Client) client() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) keyer() cache.Keyer {
	if c.Keyer != nil {
		return c.Keyer
	}
	return cache.NewDefaultKeyer()
}

func (c *Client) delay() time.Duration {
	if c.Delay > 0 {
		return c.Delay
	}
	return defaultDelay
}
