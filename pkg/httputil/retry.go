package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"
)

// maxDelay caps both the doubled backoff and a server's Retry-After.
const maxDelay = 30 * time.Second

// Transient marks a failure worth another attempt: a dropped connection,
// a 429 or a 5xx. After, when positive, replaces the backoff delay before
// the next attempt.
type Transient struct {
	Err   error
	After time.Duration
}

func (e *Transient) Error() string { return e.Err.Error() }
func (e *Transient) Unwrap() error { return e.Err }

// Retry calls fn until it succeeds, returns a non-[Transient] error, or
// has been called attempts times. The wait starts at delay and doubles,
// up to 30s. It returns ctx.Err() when ctx ends during a wait.
func Retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := range max(attempts, 1) {
		if err = fn(); err == nil {
			return nil
		}
		var t *Transient
		if !errors.As(err, &t) {
			return err
		}
		if i == max(attempts, 1)-1 {
			break
		}

		wait := delay
		if t.After > 0 {
			wait = t.After
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(min(wait, maxDelay)):
		}
		delay = min(delay*2, maxDelay)
	}
	return err
}

// retryAfter reads a Retry-After header given in seconds. HTTP dates are
// ignored.
func retryAfter(h http.Header) time.Duration {
	s, err := strconv.Atoi(h.Get("Retry-After"))
	if err != nil || s <= 0 {
		return 0
	}
	return time.Duration(s) * time.Second
}
