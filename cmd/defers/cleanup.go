package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/google/shlex"
)

var errEmptyCleanup = errors.New("empty cleanup command")

type cleanup struct {
	line string
	path string
	args []string
	env  []string
}

// newCleanup parses line with shell quoting rules and resolves its program
// up front, so a typo fails before COMMAND runs rather than after.
func newCleanup(e *runEnv, line string) (*cleanup, error) {
	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cleanup '%s': %w", line, err)
	}
	if len(argv) < 1 {
		return nil, errEmptyCleanup
	}
	path, err := e.look(argv[0])
	if err != nil {
		return nil, fmt.Errorf("bad cleanup command '%s': %w", argv[0], err)
	}
	return &cleanup{
		line: line,
		path: path,
		args: argv[1:],
		env:  e.environ(),
	}, nil
}

func (c *cleanup) run() error {
	var out streamLogger
	cmd := captureCmdUnlessVerbose(&out)
	cmd.Path = c.path
	cmd.Args = append([]string{c.path}, c.args...)
	cmd.Env = c.env
	if err := cmd.Run(); err != nil {
		if out.Len() > 0 {
			fmt.Fprint(os.Stderr, out.String())
		}
		return fmt.Errorf("cleanup '%s' failed: %w", c.line, err)
	}
	logger.Debug("cleanup done", "cmd", c.line)
	return nil
}
