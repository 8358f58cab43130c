package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/shlex"
	"lesiw.io/ctrctl"
)

var ctrctlclis = [][]string{
	{"docker"},
	{"podman"},
	{"nerdctl"},
	{"lima", "nerdctl"},
}

func containerRemover(ctr string) func() error {
	return func() error {
		if _, err := ctrctl.ContainerRm(
			&ctrctl.ContainerRmOpts{Force: true},
			ctr,
		); err != nil {
			return fmt.Errorf("failed to remove container '%s': %w", ctr, err)
		}
		logger.Debug("removed container", "container", ctr)
		return nil
	}
}

func ctrctlSetup() error {
	ctrctl.Verbose = *verbose
	if os.Getenv("DEFERS_CTRCTL") != "" {
		cli, err := shlex.Split(os.Getenv("DEFERS_CTRCTL"))
		if err != nil {
			return fmt.Errorf("failed to parse DEFERS_CTRCTL: %w", err)
		}
		ctrctl.Cli = cli
		return nil
	}
	var progs []string
	for _, cli := range ctrctlclis {
		progs = append(progs, cli[0])
		path, err := exec.LookPath(cli[0])
		if err != nil {
			continue
		}
		ctrctl.Cli = append([]string{path}, cli[1:]...)
		return nil
	}
	return fmt.Errorf("no container cli found. "+
		"install one of these clis: %s. "+
		"or set DEFERS_CTRCTL to another cli.", strings.Join(progs, ", "))
}
