package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"
)

// syncBuffer guards a buffer shared with the spinner goroutine.
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

func TestSpinner(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Ordering...")
	s.start()
	time.Sleep(200 * time.Millisecond)
	s.stop()
	s.stop()

	if s.cancelled() {
		t.Error("spinner stopped normally should not report cancellation")
	}
	if !bytes.Contains([]byte(out.String()), []byte("Ordering...")) {
		t.Errorf("spinner output %q lacks the message", out.String())
	}
}

func TestSpinnerCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "Ordering...")
	s.start()

	cancel()
	time.Sleep(50 * time.Millisecond)

	if !s.cancelled() {
		t.Error("spinner should report cancellation of its context")
	}
	s.stop()
}
