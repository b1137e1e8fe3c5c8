package coalesce

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// call tracks how many callers have attached to one in-flight
// execution. It exists only while the execution is pending; the result
// is never retained here, the TTL caches own result reuse.
type call struct {
	waiters int
}

// Group collapses concurrent identical requests: for N callers sharing
// a key, the handler runs exactly once, the first caller runs it, and
// the other N-1 attach as waiters and receive the identical outcome.
//
// Execution dedup is singleflight's; the pending table alongside it
// decides who leads, so the coalesced flag is per-caller rather than
// singleflight's shared-by-everyone Shared bit.
type Group[V any] struct {
	mu      sync.Mutex
	flight  singleflight.Group
	pending map[string]*call
}

// NewGroup creates an empty coalescing group.
func NewGroup[V any]() *Group[V] {
	return &Group[V]{pending: make(map[string]*call)}
}

// Do executes fn under key, coalescing with any identical in-flight
// execution. The boolean reports whether this caller attached to
// another caller's execution (true for exactly N-1 of N concurrent
// callers).
//
// fn runs detached from the leader's context: a caller that abandons
// its request stops waiting, but the shared execution keeps running for
// every other still-interested waiter. Cancellation of one waiter never
// cancels the underlying work.
func (g *Group[V]) Do(ctx context.Context, key string, fn func(context.Context) (V, error)) (V, bool, error) {
	// Registration and flight attachment happen under one lock so the
	// pending table and singleflight agree on who leads.
	g.mu.Lock()
	c, attached := g.pending[key]
	if attached {
		c.waiters++
	} else {
		g.pending[key] = &call{}
	}
	ch := g.flight.DoChan(key, func() (any, error) {
		v, err := fn(context.WithoutCancel(ctx))
		g.mu.Lock()
		delete(g.pending, key)
		// Forget before the result is delivered, so a caller arriving
		// after cleanup starts a fresh execution instead of receiving
		// this stale one.
		g.flight.Forget(key)
		g.mu.Unlock()
		return v, err
	})
	g.mu.Unlock()

	if attached {
		select {
		case res := <-ch:
			v, _ := res.Val.(V)
			return v, true, res.Err
		case <-ctx.Done():
			var zero V
			return zero, true, ctx.Err()
		}
	}

	// The leader waits for its own execution unconditionally; fn is
	// already detached from ctx.
	res := <-ch
	v, _ := res.Val.(V)
	return v, false, res.Err
}

// PendingCount reports how many executions are currently in flight.
func (g *Group[V]) PendingCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pending)
}

// Waiters reports how many callers have attached to the in-flight
// execution for key, not counting the caller that is running it.
// Returns 0 when nothing is pending under key.
func (g *Group[V]) Waiters(key string) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	if c, ok := g.pending[key]; ok {
		return c.waiters
	}
	return 0
}
