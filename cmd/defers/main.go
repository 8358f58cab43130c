package main

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"strings"

	"github.com/charmbracelet/log"
	"lesiw.io/defers"
	"lesiw.io/flag"
)

var (
	errParse       = errors.New("parse error")
	errInterrupted = errors.New("interrupted")

	flags = flag.NewSet(os.Stderr,
		"defers [-d CMD]... [-r CONTAINER]... [--] [COMMAND [ARGS...]]")
	cleanups = flags.Strings("d,defer",
		"run `command` after COMMAND exits; later flags run first")
	removals = flags.Strings("r,rm",
		"force-remove `container` after COMMAND exits")
	verbose  = flags.Bool("v", "verbose")
	printver = flags.Bool("V,version", "print version")

	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "defers"})

	//go:embed version.txt
	versionfile string
	version     string
)

func main() {
	if err := run(); err != nil {
		if !errors.Is(err, errParse) {
			logger.Error(err)
		}
		os.Exit(exitCode(err))
	}
}

func run() error {
	version = strings.TrimSpace(versionfile)
	if err := flags.Parse(os.Args[1:]...); err != nil {
		return errParse
	}
	if *printver {
		fmt.Println(version)
		return nil
	}
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return execute(newRunEnv(flags.Args), initFile)
}

// execute registers the cleanups and runs COMMAND in one scope.
//
// SIGINT is only recorded here. The terminal delivers it to COMMAND as well,
// and the cleanups wait until COMMAND has exited, whether it honors the
// signal or not.
func execute(e *runEnv, script string) error {
	intr := make(chan os.Signal, 1)
	signal.Notify(intr, os.Interrupt)
	defer signal.Stop(intr)

	err := defers.Do(func(s *defers.Scope) error {
		if err := register(s, e, script); err != nil {
			return err
		}
		return execCommand(e)
	}, defers.WithLogger(logger))

	select {
	case <-intr:
		return errors.Join(errInterrupted, err)
	default:
		return err
	}
}

// register adds cleanups in the order they should be declared: the init
// script first, then -d flags, then -r flags. They run in reverse.
func register(s *defers.Scope, e *runEnv, script string) error {
	lines, err := runInit(e, script)
	if err != nil {
		return err
	}
	lines = append(lines, *cleanups...)
	for _, line := range lines {
		c, err := newCleanup(e, line)
		if err != nil {
			return err
		}
		logger.Debug("registered cleanup", "cmd", line)
		s.DeferErr(c.run)
	}
	if len(*removals) > 0 {
		if err := ctrctlSetup(); err != nil {
			return err
		}
	}
	for _, ctr := range *removals {
		logger.Debug("registered container removal", "container", ctr)
		s.DeferErr(containerRemover(ctr))
	}
	return nil
}

func execCommand(e *runEnv) error {
	if len(e.argv) < 1 {
		return nil
	}
	cmdpath, err := e.look(e.argv[0])
	if err != nil {
		return fmt.Errorf("bad command '%s': %w", e.argv[0], err)
	}
	cmd := exec.Command(cmdpath, e.argv[1:]...)
	cmd.Env = e.environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err = cmd.Run(); err != nil {
		return fmt.Errorf("error running command: %w", err)
	}
	return nil
}

func exitCode(err error) int {
	if errors.Is(err, errInterrupted) {
		return 130
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) && ee.ExitCode() > 0 {
		return ee.ExitCode()
	}
	return 1
}
