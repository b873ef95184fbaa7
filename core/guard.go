package core

import "sync"

// guard is a runtime stand-in for a checked-borrow discipline enforced at
// compile time in languages with a borrow checker. Go has none, so reentrant
// access to a Host's shared fields (objects, storage, frames, events, auth,
// prng) is caught here instead, as an InternalError rather than a silent
// data race.
type guard struct {
	mu   sync.Mutex
	held bool
}

// borrow runs f while holding the guard exclusively. A reentrant call from
// within f (or from another goroutine, though the host is single-threaded by
// contract) fails fast instead of deadlocking or racing.
func (g *guard) borrow(what string, f func() error) error {
	g.mu.Lock()
	if g.held {
		g.mu.Unlock()
		return NewHostError(ErrContext, ErrCodeInternalError, "reentrant borrow of "+what)
	}
	g.held = true
	g.mu.Unlock()

	err := f()

	g.mu.Lock()
	g.held = false
	g.mu.Unlock()
	return err
}
