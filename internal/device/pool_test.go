package device

import (
	"fmt"
	"testing"

	"go.uber.org/zap"
)

func newTestPad(index int) *Client {
	return NewClient(fmt.Sprintf("pad-%d", index), index, NewFakeTransport(), zap.NewNop())
}

func TestPoolAcquireRelease(t *testing.T) {
	pool := NewPool()
	for i := 0; i < 3; i++ {
		pool.Add(newTestPad(i))
	}
	if pool.Size() != 3 || pool.Available() != 3 {
		t.Fatalf("after adds: size %d available %d, want 3 and 3", pool.Size(), pool.Available())
	}

	acquired, ok := pool.Acquire(2)
	if !ok || len(acquired) != 2 {
		t.Fatalf("Acquire(2) = %d pads, ok %v", len(acquired), ok)
	}
	if pool.Available() != 1 {
		t.Fatalf("after acquire: available %d, want 1", pool.Available())
	}

	// A failed acquire must leave the remaining pad untouched.
	if _, ok := pool.Acquire(2); ok {
		t.Fatal("Acquire(2) succeeded with only one pad available")
	}
	if pool.Available() != 1 {
		t.Fatalf("after failed acquire: available %d, want 1", pool.Available())
	}

	pool.Release(acquired...)
	if pool.Available() != 3 {
		t.Fatalf("after release: available %d, want 3", pool.Available())
	}
}

func TestPoolRemove(t *testing.T) {
	pool := NewPool()
	a := newTestPad(0)
	b := newTestPad(1)
	pool.Add(a)
	pool.Add(b)

	acquired, ok := pool.Acquire(2)
	if !ok {
		t.Fatal("Acquire(2) failed with two pads connected")
	}

	pool.Remove(a)
	if pool.Size() != 1 {
		t.Fatalf("after remove: size %d, want 1", pool.Size())
	}

	pool.Release(acquired...)
	if pool.Available() != 1 {
		t.Fatalf("after release of a removed pad: available %d, want 1", pool.Available())
	}
}
