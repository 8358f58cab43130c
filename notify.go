package defers

import (
	"os"
	"os/signal"
	"sync"
)

// Notify drains s when the process receives one of sig (os.Interrupt if
// none are given), then calls exit with the signal if exit is not nil.
//
// The returned stop function unregisters the handler. It is safe to call
// more than once.
func (s *Scope) Notify(exit func(os.Signal), sig ...os.Signal) (stop func()) {
	if len(sig) == 0 {
		sig = []os.Signal{os.Interrupt}
	}
	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, sig...)
	go func() {
		select {
		case v := <-ch:
			s.logger.Debug("received signal, draining", "signal", v)
			if err := s.Run(); err != nil {
				s.logger.Error("deferred actions failed", "err", err)
			}
			if exit != nil {
				exit(v)
			}
		case <-done:
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() {
			signal.Stop(ch)
			close(done)
		})
	}
}
