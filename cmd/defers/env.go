package main

import (
	"os"
	"slices"
	"strings"

	"v.io/x/lib/lookpath"
)

type runEnv struct {
	env  map[string]string
	argv []string
}

// newRunEnv starts from the process environment. The init script may
// rewrite env before anything is run.
func newRunEnv(argv []string) *runEnv {
	e := &runEnv{env: make(map[string]string), argv: argv}
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			e.env[k] = v
		}
	}
	return e
}

// look resolves name against the PATH in e.env rather than the process's.
func (e *runEnv) look(name string) (string, error) {
	return lookpath.Look(e.env, name)
}

// environ returns e.env in os/exec's KEY=VALUE form.
func (e *runEnv) environ() []string {
	env := make([]string, 0, len(e.env))
	for k, v := range e.env {
		env = append(env, k+"="+v)
	}
	slices.Sort(env)
	return env
}
