package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), initFile)
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestRunInit(t *testing.T) {
	path := writeScript(t, `
defers.add("echo one")
defers.add('sh -c "echo two"')
defers.env.GREETING = "hello " .. defers.env.NAME
defers.env.DROPPED = nil
`)
	e := &runEnv{env: map[string]string{
		"NAME":    "world",
		"DROPPED": "x",
	}}

	cmds, err := runInit(e, path)
	require.NoError(t, err)
	assert.Equal(t, []string{"echo one", `sh -c "echo two"`}, cmds)
	assert.Equal(t, map[string]string{
		"NAME":     "world",
		"GREETING": "hello world",
	}, e.env)
}

func TestRunInitMissing(t *testing.T) {
	e := &runEnv{env: map[string]string{"A": "b"}}
	cmds, err := runInit(e, filepath.Join(t.TempDir(), initFile))
	require.NoError(t, err)
	assert.Empty(t, cmds)
	assert.Equal(t, map[string]string{"A": "b"}, e.env)
}

func TestRunInitErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "syntax error", body: "defers.add("},
		{name: "add needs a string", body: "defers.add({})"},
		{name: "env replaced", body: `defers.env = "nope"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &runEnv{env: map[string]string{}}
			_, err := runInit(e, writeScript(t, tt.body))
			assert.Error(t, err)
		})
	}
}
