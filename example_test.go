package defers_test

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"lesiw.io/defers"
)

func ExampleDo() {
	err := defers.Do(func(s *defers.Scope) error {
		fmt.Println("acquire a")
		s.Defer(func() { fmt.Println("release a") })
		fmt.Println("acquire b")
		s.DeferErr(func() error {
			fmt.Println("release b")
			return errors.New("b is busy")
		})
		return errors.New("work failed")
	}, defers.WithLogger(log.New(io.Discard)))
	fmt.Println(err)
	// Output:
	// acquire a
	// acquire b
	// release b
	// release a
	// work failed; deferred action 1 failed: b is busy
}
