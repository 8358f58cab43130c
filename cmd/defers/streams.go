package main

import (
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/term"
)

const (
	tintReset = "\033[0m"
	tintRed   = "\033[31m"
)

// streamLogger holds a cleanup's combined output until it is known
// whether the cleanup failed. os/exec copies stdout and stderr on separate
// goroutines, so every write goes through mu.
type streamLogger struct {
	mu     sync.Mutex
	buf    strings.Builder
	tinted bool
}

// tintWriter is one stream of a streamLogger. Each chunk is recorded with
// its stream's color so interleaved output stays readable.
type tintWriter struct {
	tint string
	out  *streamLogger
}

func captureCmdUnlessVerbose(out *streamLogger) *exec.Cmd {
	if *verbose {
		return &exec.Cmd{Stdout: os.Stdout, Stderr: os.Stderr}
	}
	return logCmd(out, term.IsTerminal(int(os.Stdout.Fd())))
}

func logCmd(out *streamLogger, tty bool) *exec.Cmd {
	out.reset(tty)
	if !tty {
		return &exec.Cmd{Stdout: out, Stderr: out}
	}
	return &exec.Cmd{
		Stdout: &tintWriter{tint: tintReset, out: out},
		Stderr: &tintWriter{tint: tintRed, out: out},
	}
}

func (w *tintWriter) Write(b []byte) (int, error) {
	w.out.mu.Lock()
	defer w.out.mu.Unlock()
	w.out.buf.WriteString(w.tint)
	return w.out.buf.Write(b)
}

func (s *streamLogger) Write(b []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(b)
}

func (s *streamLogger) reset(tinted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Reset()
	s.tinted = tinted
}

func (s *streamLogger) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Len()
}

func (s *streamLogger) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tinted {
		return s.buf.String() + tintReset
	}
	return s.buf.String()
}
