package blackboard

import (
	"context"

	"github.com/google/uuid"
)

// waiter is one suspended WaitUntil/WaitTransition call. Exactly one of pred
// and trans is set. The channel is buffered so the setter never blocks on
// delivery; a waiter is removed from the registry at the moment of send,
// which makes resolution exactly-once.
type waiter[T any] struct {
	id    uuid.UUID
	pred  func(T) bool
	trans func(from, to T) bool
	ch    chan T
}

func (c *cell[T]) WaitUntil(ctx context.Context, pred func(T) bool) (T, error) {
	var zero T
	if pred == nil {
		return zero, newUsageError("wait", c.name, "nil predicate")
	}

	c.b.mu.Lock()
	if pred(c.value) {
		// Already satisfied: resolve without suspending, so a wakeup cannot
		// be missed between the check and the registration.
		v := c.value
		c.b.mu.Unlock()
		return v, nil
	}
	w := &waiter[T]{id: uuid.New(), pred: pred, ch: make(chan T, 1)}
	c.waiters = append(c.waiters, w)
	c.b.mu.Unlock()

	return c.await(ctx, w)
}

func (c *cell[T]) WaitTransition(ctx context.Context, pred func(from, to T) bool) (T, error) {
	var zero T
	if pred == nil {
		return zero, newUsageError("wait", c.name, "nil predicate")
	}

	c.b.mu.Lock()
	w := &waiter[T]{id: uuid.New(), trans: pred, ch: make(chan T, 1)}
	c.waiters = append(c.waiters, w)
	c.b.mu.Unlock()

	return c.await(ctx, w)
}

// await blocks until the waiter is resolved or ctx is cancelled. On
// cancellation the waiter is deregistered; if a satisfying pass got there
// first the delivered value wins and no cancellation is reported.
func (c *cell[T]) await(ctx context.Context, w *waiter[T]) (T, error) {
	select {
	case v := <-w.ch:
		return v, nil
	case <-ctx.Done():
		c.b.mu.Lock()
		removed := c.removeWaiterLocked(w.id)
		c.b.mu.Unlock()
		if !removed {
			// The wake was already committed; the value is sitting in the
			// buffered channel.
			return <-w.ch, nil
		}
		var zero T
		return zero, ctx.Err()
	}
}

func (c *cell[T]) removeWaiterLocked(id uuid.UUID) bool {
	for i, w := range c.waiters {
		if w.id == id {
			c.waiters = append(c.waiters[:i], c.waiters[i+1:]...)
			return true
		}
	}
	return false
}

// wakeLocked evaluates the registry against the value of the pass that just
// completed. Waiters are checked in registration order and each satisfied
// waiter is resolved and removed independently of the others.
func (c *cell[T]) wakeLocked() {
	if len(c.waiters) == 0 {
		return
	}
	kept := c.waiters[:0]
	for _, w := range c.waiters {
		satisfied := false
		if w.pred != nil {
			satisfied = w.pred(c.value)
		} else {
			satisfied = w.trans(c.prev, c.value)
		}
		if satisfied {
			w.ch <- c.value
		} else {
			kept = append(kept, w)
		}
	}
	c.waiters = kept
}

// waiterCount reports the number of registered waiters; used by tests to
// verify cancellation deregisters.
func (c *cell[T]) waiterCount() int {
	c.b.mu.RLock()
	defer c.b.mu.RUnlock()
	return len(c.waiters)
}
