package defers

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Scope collects deferred actions and runs them last-in, first-out.
// The zero value is not usable; create one with Open or Do.
type Scope struct {
	drainMu sync.Mutex // held for a whole drain
	mu      sync.Mutex // guards fns
	fns     []func() error
	id      uuid.UUID
	logger  *log.Logger
}

// Option configures a Scope.
type Option func(*Scope)

// WithLogger sets the logger a Scope reports failures to.
func WithLogger(l *log.Logger) Option {
	return func(s *Scope) {
		s.logger = l
	}
}

// Open begins a new, empty scope.
func Open(opts ...Option) *Scope {
	s := &Scope{id: uuid.New()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	s.logger = s.logger.With("scope", s.id.String())
	return s
}

// Do opens a scope, calls f with it, and drains the scope however f exits.
//
// If no deferred action fails, the error returned by f is returned as is.
// Otherwise the result is an *Error holding f's error and every action
// failure. If f panics, the scope is drained and the panic resumes with its
// original value.
func Do(f func(*Scope) error, opts ...Option) (err error) {
	s := Open(opts...)
	defer func() {
		if r := recover(); r != nil {
			if derr := s.Run(); derr != nil {
				s.logger.Error("deferred actions failed during panic", "err", derr)
			}
			panic(r)
		}
		err = s.finish(err)
	}()
	return f(s)
}

// ID identifies the scope in log output.
func (s *Scope) ID() uuid.UUID {
	return s.id
}

// Defer registers f to run when the scope is drained.
func (s *Scope) Defer(f func()) {
	s.DeferErr(func() error {
		f()
		return nil
	})
}

// DeferErr registers f to run when the scope is drained.
// An error returned by f is reported by the drain.
func (s *Scope) DeferErr(f func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fns = append(s.fns, f)
}

// DeferClose registers c.Close.
func (s *Scope) DeferClose(c io.Closer) {
	s.DeferErr(c.Close)
}

// Len returns the number of actions waiting to run.
func (s *Scope) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.fns)
}

// Run drains the scope: every pending action is called exactly once, most
// recently registered first. A failing or panicking action does not stop
// the drain. Run returns nil if every action succeeded and an *Error
// otherwise. Calling Run on a drained scope does nothing.
//
// Concurrent calls are serialized: the second returns once the first has
// finished draining. An action must not call Run on its own scope.
func (s *Scope) Run() error {
	return s.finish(nil)
}

func (s *Scope) finish(primary error) error {
	failures := s.drain()
	if len(failures) == 0 {
		return primary
	}
	return &Error{Primary: primary, Actions: failures}
}

func (s *Scope) drain() (failures []*ActionError) {
	s.drainMu.Lock()
	defer s.drainMu.Unlock()
	for {
		f, idx, ok := s.pop()
		if !ok {
			return
		}
		if aerr := call(f, idx); aerr != nil {
			s.logger.Debug("deferred action failed", "index", idx, "err", aerr.Err)
			failures = append(failures, aerr)
		}
	}
}

// pop removes the most recent action. The lock is not held while the
// action runs, so actions may register more actions.
func (s *Scope) pop() (f func() error, idx int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.fns) == 0 {
		return nil, 0, false
	}
	idx = len(s.fns) - 1
	f = s.fns[idx]
	s.fns[idx] = nil
	s.fns = s.fns[:idx]
	return f, idx, true
}

func call(f func() error, idx int) (aerr *ActionError) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		aerr = &ActionError{Index: idx, Panicked: true, Value: r}
		if err, ok := r.(error); ok {
			aerr.Err = fmt.Errorf("%w: %w", ErrActionPanic, err)
		} else {
			aerr.Err = fmt.Errorf("%w: %v", ErrActionPanic, r)
		}
	}()
	if err := f(); err != nil {
		return &ActionError{Index: idx, Err: err}
	}
	return nil
}
