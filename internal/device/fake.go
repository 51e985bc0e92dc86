package device

import (
	"context"
	"sync"
)

// FakeTransport is an in-memory pad link for tests and feature work
// without a physical pad attached. Replies are fed through a channel so a
// test controls exactly when a "pad" answers; everything the server sends
// is recorded.
type FakeTransport struct {
	Replies chan string

	mu     sync.Mutex
	sent   []string
	closed bool
}

// NewFakeTransport returns a fake link with a buffered reply queue.
func NewFakeTransport() *FakeTransport {
	return &FakeTransport{
		Replies: make(chan string, 16),
	}
}

// ReadLine pops the next scripted reply, or fails when the context
// deadline passes first.
func (t *FakeTransport) ReadLine(ctx context.Context) (string, error) {
	select {
	case line := <-t.Replies:
		return line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// WriteLine records the frame the server sent.
func (t *FakeTransport) WriteLine(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, line)
	return nil
}

// Sent returns a copy of every frame written so far.
func (t *FakeTransport) Sent() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.sent))
	copy(out, t.sent)
	return out
}

// Close marks the link closed.
func (t *FakeTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}

// Closed reports whether Close was called.
func (t *FakeTransport) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}
