package cli

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func animated(ctx context.Context, message string) (*Spinner, *syncBuffer) {
	var out syncBuffer
	s := newSpinnerWithContext(ctx, message)
	s.out, s.animate = &out, true
	return s, &out
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	s, out := animated(context.Background(), "Resolving bukhari-1...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.SetMessage("Rendering svg...")
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	for _, want := range []string{"Resolving bukhari-1...", "Rendering svg...", spinnerFrames[0]} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%q", want, got)
		}
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("line should be cleared on stop, got %q", got)
	}
	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s, _ := animated(context.Background(), "x")
	s.Stop() // before Start
	s.Start()
	s.Stop()
}

func TestSpinnerParentCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s, _ := animated(ctx, "x")
	s.Start()
	cancel()

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop blocked after the parent context ended")
	}
	if !s.Cancelled() {
		t.Error("Cancelled() = false after parent cancel")
	}
}

func TestSpinnerSilentWithoutTerminal(t *testing.T) {
	var out bytes.Buffer
	prev := statusOut
	statusOut = &out
	t.Cleanup(func() { statusOut = prev })

	s := newSpinner("quiet")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	if out.Len() != 0 {
		t.Errorf("spinner wrote %q to a non-terminal", out.String())
	}
}
