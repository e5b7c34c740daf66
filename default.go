package injective

import "sync/atomic"

var defaultContext atomic.Pointer[Context]

// Default returns process-wide Context.
// Empty Context is created on first call if none was set.
func Default() *Context {
	if c := defaultContext.Load(); c != nil {
		return c
	}

	defaultContext.CompareAndSwap(nil, New())

	return defaultContext.Load()
}

// SetDefault replaces process-wide Context.
// Meant to be called once on startup, before any resolution.
func SetDefault(c *Context) {
	defaultContext.Store(c)
}
