package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mki/isnad/pkg/cache"
	"github.com/mki/isnad/pkg/errors"
)

func testClient(c cache.Cache) *Client {
	cl := NewClient(c, time.Hour)
	cl.Delay = time.Millisecond
	return cl
}

func TestClientGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "isnad" {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte("scholar_indx,name\n1,x\n"))
	}))
	defer srv.Close()

	body, err := testClient(nil).Get(context.Background(), "narrators", srv.URL+"/all_rawis.csv")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "scholar_indx,name\n1,x\n" {
		t.Errorf("body = %q", body)
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	body, err := testClient(nil).Get(context.Background(), "ns", srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(body) != "ok" || calls.Load() != 3 {
		t.Errorf("body = %q after %d calls, want ok after 3", body, calls.Load())
	}
}

func TestClientErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   errors.Code
		calls  int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeNotFound, 1},
		{"forbidden", http.StatusForbidden, errors.ErrCodeNetwork, 1},
		{"always failing", http.StatusBadGateway, errors.ErrCodeNetwork, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := testClient(nil).Get(context.Background(), "ns", srv.URL)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
			if calls.Load() != tt.calls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.calls)
			}
		})
	}
}

func TestClientRejectsOversizedBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("0123456789"))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cl := testClient(fc)

	cl.MaxBody = 10
	body, err := cl.Get(context.Background(), "ns", srv.URL+"/exact")
	if err != nil || string(body) != "0123456789" {
		t.Fatalf("Get at limit = %q, %v", body, err)
	}

	cl.MaxBody = 9
	body, err = cl.Get(context.Background(), "ns", srv.URL+"/over")
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Fatalf("err = %v, want code %s", err, errors.ErrCodeNetwork)
	}
	if body != nil {
		t.Errorf("body = %q, want nil on oversized response", body)
	}
	// Not transient: one request, nothing cached.
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
	if _, ok, _ := fc.Get(context.Background(), cl.keyer().HTTPKey("ns", srv.URL+"/over")); ok {
		t.Error("oversized body was cached")
	}
}

func TestClientRejectsBadURL(t *testing.T) {
	_, err := testClient(nil).Get(context.Background(), "ns", "ftp://example.org/file.csv")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestClientUsesCache(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	cl := testClient(fc)
	ctx := context.Background()

	for range 3 {
		body, err := cl.Get(ctx, "ns", srv.URL)
		if err != nil || string(body) != "payload" {
			t.Fatalf("Get = %q, %v", body, err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("server calls = %d, want 1", calls.Load())
	}

	// different namespace, different key
	if _, err := cl.Get(ctx, "other", srv.URL); err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 2 {
		t.Errorf("server calls = %d, want 2", calls.Load())
	}
}

func TestRetryAfter(t *testing.T) {
	tests := []struct {
		header string
		want   time.Duration
	}{
		{"", 0},
		{"2", 2 * time.Second},
		{"-1", 0},
		{"Wed, 21 Oct 2026 07:28:00 GMT", 0},
	}
	for _, tt := range tests {
		h := http.Header{}
		if tt.header != "" {
			h.Set("Retry-After", tt.header)
		}
		if got := retryAfter(h); got != tt.want {
			t.Errorf("retryAfter(%q) = %v, want %v", tt.header, got, tt.want)
		}
	}
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, time.Hour, func() error {
		calls++
		cancel()
		return &Transient{Err: context.DeadlineExceeded}
	})
	if err != context.Canceled || calls != 1 {
		t.Errorf("Retry = %v after %d calls, want context.Canceled after 1", err, calls)
	}
}
