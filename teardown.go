package injective

import (
	"errors"
	"fmt"
	"io"
)

// Teardown drops every singleton instance constructed by Context.
// Those implementing io.Closer are closed in reverse order of construction.
// Adopted instances are kept.
// Registrations are kept, so singletons are constructed again on next request.
func (c *Context) Teardown() error {
	c.recordsRWM.RLock()
	for _, r := range c.records {
		if r.adopted {
			continue
		}

		r.mu.Lock()
		r.instance.Store(nil)
		r.mu.Unlock()
	}
	c.recordsRWM.RUnlock()

	c.builtMu.Lock()
	built := c.built
	c.built = nil
	c.builtMu.Unlock()

	var errs []error
	for i := len(built) - 1; i >= 0; i-- {
		closer, ok := built[i].(io.Closer)
		if !ok {
			continue
		}

		if err := closeWithRecovery(closer); err != nil {
			c.log().Warn("singleton teardown failed", "type", fmt.Sprintf("%T", closer), "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func closeWithRecovery(closer io.Closer) (err error) {
	defer func() {
		if rp := recover(); rp != nil {
			err = fmt.Errorf("%T: recovered from panic: %v", closer, rp)
		}
	}()

	if err := closer.Close(); err != nil {
		return fmt.Errorf("%T: %w", closer, err)
	}

	return nil
}
