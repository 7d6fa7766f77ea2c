// Package cancel provides the single shared cancellation primitive used by
// every interruptible entry point in prism: a relaxed atomic flag set by the
// caller and polled by workers at chunk boundaries.
package cancel

import "sync/atomic"

// Token is a single cancellation flag shared between a caller and the
// workers it launches. The zero value is ready to use and starts
// uncancelled.
type Token struct {
	flag atomic.Bool
}

// New returns a fresh, uncancelled Token.
func New() *Token {
	return &Token{}
}

// Cancel requests early termination. Safe to call from any goroutine, any
// number of times.
func (t *Token) Cancel() {
	if t == nil {
		return
	}
	t.flag.Store(true)
}

// Cancelled reports whether Cancel has been observed. A nil Token is never
// cancelled, so callers can pass a nil Token to mean "no cancellation".
func (t *Token) Cancelled() bool {
	if t == nil {
		return false
	}
	return t.flag.Load()
}
