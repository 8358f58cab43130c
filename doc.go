// Package defers runs cleanup actions when a unit of work ends.
//
// A Scope collects actions and runs them in reverse order of registration,
// like a function's deferred calls, but the collected failures are reported
// instead of lost:
//
//	err := defers.Do(func(s *defers.Scope) error {
//		f, err := os.Create(path)
//		if err != nil {
//			return err
//		}
//		s.DeferClose(f)
//		s.Defer(func() { os.Remove(path) })
//		return write(f)
//	})
//
// Every action runs exactly once, even when the block returns an error or
// panics, and even when an earlier action fails. When actions fail, Do and
// Scope.Run return an *Error listing all of them alongside the block's own
// error. A panic in the block resumes after the drain.
//
// A Scope that outlives a single function can be drained with Run, or on an
// interrupt with Notify.
package defers
