//go:build unix

package defers

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyDrainsOnSignal(t *testing.T) {
	s := Open(quiet())
	var order []string
	s.Defer(func() { order = append(order, "first") })
	s.Defer(func() { order = append(order, "second") })

	exited := make(chan os.Signal, 1)
	stop := s.Notify(func(sig os.Signal) { exited <- sig }, syscall.SIGUSR1)
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGUSR1))

	select {
	case sig := <-exited:
		assert.Equal(t, syscall.SIGUSR1, sig)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for signal drain")
	}
	assert.Equal(t, []string{"second", "first"}, order)
	assert.Zero(t, s.Len())
}

func TestNotifyStop(t *testing.T) {
	s := Open(quiet())
	ran := false
	s.Defer(func() { ran = true })

	stop := s.Notify(nil, syscall.SIGUSR2)
	stop()
	stop()

	assert.False(t, ran)
	assert.Equal(t, 1, s.Len())
	require.NoError(t, s.Run())
	assert.True(t, ran)
}
